package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/company-directory-go/internal/domain/company"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/database"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

const companyColumns = `id, name, email, logo, website, created_at, updated_at`

var companySortColumns = sortColumns(company.Fields)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Logo, &c.Website, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// List implements company.CompanyRepository.
func (r *companyRepositoryImpl) List(ctx context.Context, lq pagination.ListQuery) ([]company.Company, int64, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	remaining := lq.Remaining(total)
	if remaining == 0 {
		return []company.Company{}, total, nil
	}

	q := GetQuerier(ctx, r.db)
	sql := `SELECT ` + companyColumns + ` FROM company` + orderClause(lq, companySortColumns) + ` LIMIT $1 OFFSET $2`
	rows, err := q.Query(ctx, sql, remaining, lq.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := make([]company.Company, 0, remaining)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate companies: %w", err)
	}

	return companies, total, nil
}

// GetByID implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByID(ctx context.Context, id int64) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanCompany(q.QueryRow(ctx, `SELECT `+companyColumns+` FROM company WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company with id %d: %w", id, err)
	}
	return c, nil
}

// GetByIDs implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByIDs(ctx context.Context, ids []int64) (map[int64]company.Company, error) {
	found := make(map[int64]company.Company, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT `+companyColumns+` FROM company WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load companies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		found[c.ID] = c
	}
	return found, rows.Err()
}

// ExistsByID implements company.CompanyRepository.
func (r *companyRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM company WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check company %d: %w", id, err)
	}
	return exists, nil
}

// Create implements company.CompanyRepository.
func (r *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	sql := `
		INSERT INTO company (name, email, logo, website)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + companyColumns
	created, err := scanCompany(q.QueryRow(ctx, sql, newCompany.Name, newCompany.Email, newCompany.Logo, newCompany.Website))
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return created, nil
}

// Update implements company.CompanyRepository.
func (r *companyRepositoryImpl) Update(ctx context.Context, c company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	sql := `
		UPDATE company
		SET name = $1, email = $2, logo = $3, website = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + companyColumns
	updated, err := scanCompany(q.QueryRow(ctx, sql, c.Name, c.Email, c.Logo, c.Website, c.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to update company with id %d: %w", c.ID, err)
	}
	return updated, nil
}

// Delete implements company.CompanyRepository.
func (r *companyRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM company WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}

// Count implements company.CompanyRepository.
func (r *companyRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM company`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count companies: %w", err)
	}
	return total, nil
}
