package employee

import (
	"strings"

	"github.com/cmlabs-hris/company-directory-go/internal/pkg/validator"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type CreateEmployeeRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	CompanyID int64   `json:"company_id"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	return r.Employee().Validate()
}

// Employee returns the record described by the request.
func (r *CreateEmployeeRequest) Employee() Employee {
	e := Employee{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		CompanyID: r.CompanyID,
	}
	if r.Email != nil {
		e.Email = nilIfEmpty(*r.Email)
	}
	if r.Phone != nil {
		e.Phone = nilIfEmpty(*r.Phone)
	}
	return e
}

type UpdateEmployeeRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	CompanyID *int64  `json:"company_id,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// Apply merges the provided fields over e. An empty optional field clears it.
func (r *UpdateEmployeeRequest) Apply(e Employee) Employee {
	if r.FirstName != nil {
		e.FirstName = strings.TrimSpace(*r.FirstName)
	}
	if r.LastName != nil {
		e.LastName = strings.TrimSpace(*r.LastName)
	}
	if r.CompanyID != nil {
		e.CompanyID = *r.CompanyID
	}
	if r.Email != nil {
		e.Email = nilIfEmpty(*r.Email)
	}
	if r.Phone != nil {
		e.Phone = nilIfEmpty(*r.Phone)
	}
	return e
}

// Validate applies the employee field rules. Whether company_id points at an
// existing company is checked by the service.
func (e Employee) Validate() error {
	return validator.FromOzzo(validation.ValidateStruct(&e,
		validation.Field(&e.FirstName,
			validation.Required.Error("first_name is required"),
			validation.RuneLength(0, 255).Error("first_name must not exceed 255 characters"),
		),
		validation.Field(&e.LastName,
			validation.Required.Error("last_name is required"),
			validation.RuneLength(0, 255).Error("last_name must not exceed 255 characters"),
		),
		validation.Field(&e.CompanyID,
			validation.Required.Error("company_id is required"),
			validation.Min(int64(1)).Error("company_id must be a positive integer"),
		),
		validation.Field(&e.Email,
			is.EmailFormat.Error("email must be a valid email address"),
			validation.RuneLength(0, 255).Error("email must not exceed 255 characters"),
		),
		validation.Field(&e.Phone,
			validation.RuneLength(0, 255).Error("phone must not exceed 255 characters"),
		),
	))
}

func nilIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
