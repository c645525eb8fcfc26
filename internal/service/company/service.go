package company

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/cmlabs-hris/company-directory-go/internal/domain/company"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/company-directory-go/internal/service/file"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
	fileService file.FileService
	notifier    company.CreatedNotifier
}

func NewCompanyService(companyRepo company.CompanyRepository, fileService file.FileService, notifier company.CreatedNotifier) company.CompanyService {
	return &CompanyServiceImpl{
		CompanyRepository: companyRepo,
		fileService:       fileService,
		notifier:          notifier,
	}
}

// List implements company.CompanyService.
func (c *CompanyServiceImpl) List(ctx context.Context, q pagination.ListQuery) ([]company.Company, int64, error) {
	companies, total, err := c.CompanyRepository.List(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, total, nil
}

// Create implements company.CompanyService.
func (c *CompanyServiceImpl) Create(ctx context.Context, req company.CreateCompanyRequest) (company.Company, error) {
	if err := req.Validate(); err != nil {
		return company.Company{}, err
	}

	newCompany := req.Company()

	logo, _, err := parseLogo(req.LogoFile, req.Logo)
	if err != nil {
		return company.Company{}, err
	}
	newCompany.Logo, err = c.storeLogo(ctx, logo)
	if err != nil {
		return company.Company{}, err
	}

	created, err := c.CompanyRepository.Create(ctx, newCompany)
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}

	slog.Info("company created", "company_id", created.ID, "name", created.Name)
	if c.notifier != nil {
		c.notifier.CompanyCreated(ctx, created)
	}

	return created, nil
}

// GetByID implements company.CompanyService.
func (c *CompanyServiceImpl) GetByID(ctx context.Context, id int64) (company.Company, error) {
	return c.CompanyRepository.GetByID(ctx, id)
}

// Update implements company.CompanyService.
func (c *CompanyServiceImpl) Update(ctx context.Context, id int64, req company.UpdateCompanyRequest) (company.Company, error) {
	if err := req.Validate(); err != nil {
		return company.Company{}, err
	}

	existing, err := c.CompanyRepository.GetByID(ctx, id)
	if err != nil {
		return company.Company{}, err
	}

	merged := req.Apply(existing)
	if err := merged.Validate(); err != nil {
		return company.Company{}, err
	}

	logo, supplied, err := parseLogo(req.LogoFile, req.Logo)
	if err != nil {
		return company.Company{}, err
	}
	if supplied {
		c.deleteOldLogo(ctx, existing)
		merged.Logo, err = c.storeLogo(ctx, logo)
		if err != nil {
			return company.Company{}, err
		}
	}

	updated, err := c.CompanyRepository.Update(ctx, merged)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.Company{}, err
		}
		return company.Company{}, fmt.Errorf("failed to update company: %w", err)
	}
	return updated, nil
}

// Delete implements company.CompanyService.
// Employees of the company are left in place.
func (c *CompanyServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := c.CompanyRepository.GetByID(ctx, id); err != nil {
		return err
	}
	return c.CompanyRepository.Delete(ctx, id)
}

// parseLogo picks the logo source by priority: an uploaded file, then a
// data-URI string. supplied is false when neither was given. A data-URI that
// cannot be decoded is supplied but parses to nil.
func parseLogo(upload io.Reader, raw *string) (logo *file.Logo, supplied bool, err error) {
	switch {
	case upload != nil:
		logo, err = file.ParseUploadedLogo(upload)
		return logo, true, err
	case raw != nil && file.IsDataURI(*raw):
		return file.ParseDataURILogo(*raw), true, nil
	default:
		return nil, false, nil
	}
}

func (c *CompanyServiceImpl) storeLogo(ctx context.Context, logo *file.Logo) (*string, error) {
	if logo == nil {
		return nil, nil
	}
	url, err := c.fileService.StoreCompanyLogo(ctx, logo)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

func (c *CompanyServiceImpl) deleteOldLogo(ctx context.Context, existing company.Company) {
	if existing.Logo == nil || *existing.Logo == "" {
		return
	}
	if err := c.fileService.DeleteCompanyLogo(ctx, *existing.Logo); err != nil {
		slog.Warn("failed to delete previous company logo", "company_id", existing.ID, "logo", *existing.Logo, "error", err)
	}
}
