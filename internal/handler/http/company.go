package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/company-directory-go/internal/domain/company"
	"github.com/cmlabs-hris/company-directory-go/internal/handler/http/response"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/pagination"
)

type CompanyHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{
		companyService: companyService,
	}
}

// List implements CompanyHandler.
func (c *CompanyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := pagination.ParseListQuery(r.URL.Query(), company.Fields)

	companies, total, err := c.companyService.List(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, pagination.NewPage(companies, total, q, r.URL.Path))
}

// Create implements CompanyHandler.
func (c *CompanyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r, company.Fields)
	if err != nil {
		slog.Error("Failed to decode company", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req := company.CreateCompanyRequest{
		Email:   in.ptr("email"),
		Website: in.ptr("website"),
		Logo:    in.ptr("logo"),
	}
	if name := in.ptr("name"); name != nil {
		req.Name = *name
	}

	req.LogoFile, req.LogoHeader, err = formFile(r, "logo")
	if err != nil {
		slog.Error("Failed to get logo from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	if req.LogoFile != nil {
		defer req.LogoFile.Close()
	}

	created, err := c.companyService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, created)
}

// GetByID implements CompanyHandler.
func (c *CompanyHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.HandleError(w, company.ErrCompanyNotFound)
		return
	}

	found, err := c.companyService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, found)
}

// Update implements CompanyHandler.
func (c *CompanyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.HandleError(w, company.ErrCompanyNotFound)
		return
	}

	in, err := decodeInput(r, company.Fields)
	if err != nil {
		slog.Error("Update company decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req := company.UpdateCompanyRequest{
		Name:    in.ptr("name"),
		Email:   in.ptr("email"),
		Website: in.ptr("website"),
		Logo:    in.ptr("logo"),
	}

	req.LogoFile, req.LogoHeader, err = formFile(r, "logo")
	if err != nil {
		slog.Error("Failed to get logo from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	if req.LogoFile != nil {
		defer req.LogoFile.Close()
	}

	updated, err := c.companyService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, updated)
}

// Delete implements CompanyHandler.
func (c *CompanyHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.HandleError(w, company.ErrCompanyNotFound)
		return
	}

	if err := c.companyService.Delete(r.Context(), id); err != nil {
		if !errors.Is(err, company.ErrCompanyNotFound) {
			slog.Error("Failed to delete company", "company_id", id, "error", err)
		}
		response.HandleError(w, err)
		return
	}

	response.Deleted(w)
}
