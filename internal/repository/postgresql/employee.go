package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/company-directory-go/internal/domain/employee"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/database"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, first_name, last_name, company_id, email, phone, created_at, updated_at`

var employeeSortColumns = sortColumns(employee.Fields)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.CompanyID, &e.Email, &e.Phone, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, lq pagination.ListQuery) ([]employee.Employee, int64, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	remaining := lq.Remaining(total)
	if remaining == 0 {
		return []employee.Employee{}, total, nil
	}

	q := GetQuerier(ctx, r.db)
	sql := `SELECT ` + employeeColumns + ` FROM employee` + orderClause(lq, employeeSortColumns) + ` LIMIT $1 OFFSET $2`
	rows, err := q.Query(ctx, sql, remaining, lq.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0, remaining)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, total, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employee WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %d: %w", id, err)
	}
	return e, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	sql := `
		INSERT INTO employee (first_name, last_name, company_id, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + employeeColumns
	created, err := scanEmployee(q.QueryRow(ctx, sql,
		newEmployee.FirstName,
		newEmployee.LastName,
		newEmployee.CompanyID,
		newEmployee.Email,
		newEmployee.Phone,
	))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	sql := `
		UPDATE employee
		SET first_name = $1, last_name = $2, company_id = $3, email = $4, phone = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + employeeColumns
	updated, err := scanEmployee(q.QueryRow(ctx, sql, e.FirstName, e.LastName, e.CompanyID, e.Email, e.Phone, e.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee with id %d: %w", e.ID, err)
	}
	return updated, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employee WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Count implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employee`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return total, nil
}
