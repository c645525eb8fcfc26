package employee

import (
	"context"

	"github.com/cmlabs-hris/company-directory-go/internal/pkg/pagination"
)

type EmployeeRepository interface {
	List(ctx context.Context, q pagination.ListQuery) ([]Employee, int64, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, id int64) error
	// Count returns the number of stored rows, the same figure List reports as its total.
	Count(ctx context.Context) (int64, error)
}
