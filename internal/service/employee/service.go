package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/company-directory-go/internal/domain/company"
	"github.com/cmlabs-hris/company-directory-go/internal/domain/employee"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	companyRepo  company.CompanyRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, companyRepo company.CompanyRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, q pagination.ListQuery) ([]employee.Employee, int64, error) {
	employees, total, err := s.employeeRepo.List(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	if err := s.attachCompanies(ctx, employees); err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id int64) (employee.Employee, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}

	rows := []employee.Employee{e}
	if err := s.attachCompanies(ctx, rows); err != nil {
		return employee.Employee{}, err
	}
	return rows[0], nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	newEmployee := req.Employee()
	if err := s.validate(ctx, newEmployee); err != nil {
		return employee.Employee{}, err
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	existing, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}

	merged := req.Apply(existing)
	if err := s.validate(ctx, merged); err != nil {
		return employee.Employee{}, err
	}

	updated, err := s.employeeRepo.Update(ctx, merged)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return updated, nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id int64) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.employeeRepo.Delete(ctx, id)
}

// validate runs the field rules and, when company_id is otherwise valid,
// checks that the company exists.
func (s *EmployeeServiceImpl) validate(ctx context.Context, e employee.Employee) error {
	err := e.Validate()

	var errs validator.ValidationErrors
	if err != nil && !errors.As(err, &errs) {
		return err
	}
	if errs.Has("company_id") {
		return err
	}

	exists, existsErr := s.companyRepo.ExistsByID(ctx, e.CompanyID)
	if existsErr != nil {
		return fmt.Errorf("failed to check company: %w", existsErr)
	}
	if !exists {
		return validator.Merge(err, validator.ValidationError{
			Field:   "company_id",
			Message: "the selected company_id is invalid",
		})
	}
	return err
}

// attachCompanies loads the companies of employees in one batch. An employee
// whose company no longer exists keeps a nil Company.
func (s *EmployeeServiceImpl) attachCompanies(ctx context.Context, employees []employee.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(employees))
	seen := make(map[int64]bool, len(employees))
	for _, e := range employees {
		if !seen[e.CompanyID] {
			seen[e.CompanyID] = true
			ids = append(ids, e.CompanyID)
		}
	}

	companies, err := s.companyRepo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load employee companies: %w", err)
	}

	for i := range employees {
		if c, ok := companies[employees[i].CompanyID]; ok {
			employees[i].Company = &c
		}
	}
	return nil
}
