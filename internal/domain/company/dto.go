package company

import (
	"mime/multipart"
	"strings"

	"github.com/cmlabs-hris/company-directory-go/internal/pkg/validator"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// MaxLogoSize is the largest accepted logo upload (2048 KB).
const MaxLogoSize = 2048 << 10

type CreateCompanyRequest struct {
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	Website *string `json:"website,omitempty"`
	// Logo is the raw logo input: a data-URI is ingested, anything else is ignored.
	Logo       *string               `json:"logo,omitempty"`
	LogoFile   multipart.File        `json:"-"`
	LogoHeader *multipart.FileHeader `json:"-"`
}

func (r *CreateCompanyRequest) Validate() error {
	return validator.Merge(r.Company().Validate(), validateLogoUpload(r.LogoHeader)...)
}

// Company returns the record described by the request, without a logo.
func (r *CreateCompanyRequest) Company() Company {
	c := Company{Name: strings.TrimSpace(r.Name)}
	if r.Email != nil {
		c.Email = nilIfEmpty(*r.Email)
	}
	if r.Website != nil {
		c.Website = nilIfEmpty(*r.Website)
	}
	return c
}

type UpdateCompanyRequest struct {
	Name       *string               `json:"name,omitempty"`
	Email      *string               `json:"email,omitempty"`
	Website    *string               `json:"website,omitempty"`
	Logo       *string               `json:"logo,omitempty"`
	LogoFile   multipart.File        `json:"-"`
	LogoHeader *multipart.FileHeader `json:"-"`
}

// Validate checks only what can be checked without the stored row; the
// merged record is validated again by the service.
func (r *UpdateCompanyRequest) Validate() error {
	errs := validateLogoUpload(r.LogoHeader)
	if len(errs) > 0 {
		return validator.ValidationErrors(errs)
	}
	return nil
}

// Apply merges the provided fields over c. An empty optional field clears it.
// Logo is left alone: it only changes through logo ingestion.
func (r *UpdateCompanyRequest) Apply(c Company) Company {
	if r.Name != nil {
		c.Name = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		c.Email = nilIfEmpty(*r.Email)
	}
	if r.Website != nil {
		c.Website = nilIfEmpty(*r.Website)
	}
	return c
}

// Validate applies the company field rules.
func (c Company) Validate() error {
	return validator.FromOzzo(validation.ValidateStruct(&c,
		validation.Field(&c.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(0, 255).Error("name must not exceed 255 characters"),
		),
		validation.Field(&c.Email,
			is.EmailFormat.Error("email must be a valid email address"),
			validation.RuneLength(0, 255).Error("email must not exceed 255 characters"),
		),
		validation.Field(&c.Website,
			is.URL.Error("website must be a valid URL"),
			validation.RuneLength(0, 255).Error("website must not exceed 255 characters"),
		),
	))
}

func validateLogoUpload(header *multipart.FileHeader) []validator.ValidationError {
	if header == nil {
		return nil
	}
	if header.Size > MaxLogoSize {
		return []validator.ValidationError{{
			Field:   "logo",
			Message: "logo must not exceed 2048 kilobytes",
		}}
	}
	return nil
}

func nilIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
