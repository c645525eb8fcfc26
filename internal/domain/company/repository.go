package company

import (
	"context"

	"github.com/cmlabs-hris/company-directory-go/internal/pkg/pagination"
)

type CompanyRepository interface {
	List(ctx context.Context, q pagination.ListQuery) ([]Company, int64, error)
	GetByID(ctx context.Context, id int64) (Company, error)
	// GetByIDs returns the companies found among ids, keyed by ID.
	GetByIDs(ctx context.Context, ids []int64) (map[int64]Company, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, newCompany Company) (Company, error)
	Update(ctx context.Context, c Company) (Company, error)
	Delete(ctx context.Context, id int64) error
	// Count returns the number of stored rows, the same figure List reports as its total.
	Count(ctx context.Context) (int64, error)
}
