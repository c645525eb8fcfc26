package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/company-directory-go/internal/domain/employee"
	"github.com/cmlabs-hris/company-directory-go/internal/handler/http/response"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/pagination"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{
		employeeService: employeeService,
	}
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := pagination.ParseListQuery(r.URL.Query(), employee.Fields)

	employees, total, err := h.employeeService.ListEmployees(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, pagination.NewPage(employees, total, q, r.URL.Path))
}

// Create implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r, employee.Fields)
	if err != nil {
		slog.Error("Failed to decode employee", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	companyID, err := in.int64Ptr("company_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := employee.CreateEmployeeRequest{
		Email: in.ptr("email"),
		Phone: in.ptr("phone"),
	}
	if v := in.ptr("first_name"); v != nil {
		req.FirstName = *v
	}
	if v := in.ptr("last_name"); v != nil {
		req.LastName = *v
	}
	if companyID != nil {
		req.CompanyID = *companyID
	}

	created, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, created)
}

// GetByID implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}

	found, err := h.employeeService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, found)
}

// Update implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}

	in, err := decodeInput(r, employee.Fields)
	if err != nil {
		slog.Error("Update employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	companyID, err := in.int64Ptr("company_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.employeeService.UpdateEmployee(r.Context(), id, employee.UpdateEmployeeRequest{
		FirstName: in.ptr("first_name"),
		LastName:  in.ptr("last_name"),
		CompanyID: companyID,
		Email:     in.ptr("email"),
		Phone:     in.ptr("phone"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, updated)
}

// Delete implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}

	if err := h.employeeService.DeleteEmployee(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Deleted(w)
}
