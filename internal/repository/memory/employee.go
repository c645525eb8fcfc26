package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/cmlabs-hris/company-directory-go/internal/domain/employee"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/pagination"
)

var employeeSortKeys = map[string]sortKey[employee.Employee]{
	"id":         func(e employee.Employee) any { return e.ID },
	"created_at": func(e employee.Employee) any { return e.CreatedAt },
	"updated_at": func(e employee.Employee) any { return e.UpdatedAt },
	"first_name": func(e employee.Employee) any { return e.FirstName },
	"last_name":  func(e employee.Employee) any { return e.LastName },
	"company_id": func(e employee.Employee) any { return e.CompanyID },
	"email":      func(e employee.Employee) any { return e.Email },
	"phone":      func(e employee.Employee) any { return e.Phone },
}

type employeeRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]employee.Employee
	now    func() time.Time
}

func NewEmployeeRepository() employee.EmployeeRepository {
	return &employeeRepository{
		nextID: 1,
		rows:   make(map[int64]employee.Employee),
		now:    time.Now,
	}
}

func (r *employeeRepository) List(ctx context.Context, lq pagination.ListQuery) ([]employee.Employee, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := slices.Sorted(maps.Keys(r.rows))
	rows := make([]employee.Employee, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, r.rows[id])
	}
	return page(rows, lq, employeeSortKeys), int64(len(rows)), nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.rows[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	newEmployee.ID = r.nextID
	newEmployee.CreatedAt = now
	newEmployee.UpdatedAt = now
	newEmployee.Company = nil
	r.rows[newEmployee.ID] = newEmployee
	r.nextID++
	return newEmployee, nil
}

func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.rows[e.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = r.now()
	e.Company = nil
	r.rows[e.ID] = e
	return e, nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *employeeRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.rows)), nil
}
