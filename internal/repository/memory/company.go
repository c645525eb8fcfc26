package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/cmlabs-hris/company-directory-go/internal/domain/company"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/pagination"
)

var companySortKeys = map[string]sortKey[company.Company]{
	"id":         func(c company.Company) any { return c.ID },
	"created_at": func(c company.Company) any { return c.CreatedAt },
	"updated_at": func(c company.Company) any { return c.UpdatedAt },
	"name":       func(c company.Company) any { return c.Name },
	"email":      func(c company.Company) any { return c.Email },
	"logo":       func(c company.Company) any { return c.Logo },
	"website":    func(c company.Company) any { return c.Website },
}

type companyRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]company.Company
	now    func() time.Time
}

func NewCompanyRepository() company.CompanyRepository {
	return &companyRepository{
		nextID: 1,
		rows:   make(map[int64]company.Company),
		now:    time.Now,
	}
}

func (r *companyRepository) ordered() []company.Company {
	ids := slices.Sorted(maps.Keys(r.rows))
	out := make([]company.Company, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.rows[id])
	}
	return out
}

func (r *companyRepository) List(ctx context.Context, lq pagination.ListQuery) ([]company.Company, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.ordered()
	return page(rows, lq, companySortKeys), int64(len(rows)), nil
}

func (r *companyRepository) GetByID(ctx context.Context, id int64) (company.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.rows[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (r *companyRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]company.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make(map[int64]company.Company, len(ids))
	for _, id := range ids {
		if c, ok := r.rows[id]; ok {
			found[id] = c
		}
	}
	return found, nil
}

func (r *companyRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rows[id]
	return ok, nil
}

func (r *companyRepository) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	newCompany.ID = r.nextID
	newCompany.CreatedAt = now
	newCompany.UpdatedAt = now
	r.rows[newCompany.ID] = newCompany
	r.nextID++
	return newCompany, nil
}

func (r *companyRepository) Update(ctx context.Context, c company.Company) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.rows[c.ID]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = r.now()
	r.rows[c.ID] = c
	return c, nil
}

func (r *companyRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return company.ErrCompanyNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *companyRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.rows)), nil
}
