package company

import (
	"context"

	"github.com/cmlabs-hris/company-directory-go/internal/pkg/pagination"
)

type CompanyService interface {
	List(ctx context.Context, q pagination.ListQuery) ([]Company, int64, error)
	Create(ctx context.Context, req CreateCompanyRequest) (Company, error)
	GetByID(ctx context.Context, id int64) (Company, error)
	Update(ctx context.Context, id int64, req UpdateCompanyRequest) (Company, error)
	Delete(ctx context.Context, id int64) error
}

// CreatedNotifier is told about every company that was created successfully.
// Implementations must not fail the caller: delivery problems are theirs.
type CreatedNotifier interface {
	CompanyCreated(ctx context.Context, c Company)
}
