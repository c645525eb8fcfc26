package employee

import (
	"context"

	"github.com/cmlabs-hris/company-directory-go/internal/pkg/pagination"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// ListEmployees returns one page of employees with their company attached
	ListEmployees(ctx context.Context, q pagination.ListQuery) ([]Employee, int64, error)

	// GetEmployee retrieves a single employee by ID with its company attached
	GetEmployee(ctx context.Context, id int64) (Employee, error)

	// CreateEmployee creates a new employee of an existing company
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (Employee, error)

	// UpdateEmployee merges the provided fields over an existing employee
	UpdateEmployee(ctx context.Context, id int64, req UpdateEmployeeRequest) (Employee, error)

	// DeleteEmployee hard deletes an employee
	DeleteEmployee(ctx context.Context, id int64) error
}
