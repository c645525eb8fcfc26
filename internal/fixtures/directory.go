package fixtures

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/company-directory-go/internal/domain/company"
	"github.com/cmlabs-hris/company-directory-go/internal/domain/employee"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string { return &s }

// ==========================================
// DEFAULT DIRECTORY DATA
// ==========================================

// DefaultCompanies is the demo directory. Logo values are legacy storage
// keys, not files owned by the configured storage.
func DefaultCompanies() []company.Company {
	rows := []struct{ name, email, slug string }{
		{"Acme Corp", "info@acme.test", "acme"},
		{"Globex LLC", "contact@globex.test", "globex"},
		{"Initech", "hello@initech.test", "initech"},
		{"Umbrella Group", "contact@umbrella.test", "umbrella"},
		{"Stark Industries", "info@stark.test", "stark"},
		{"Wayne Enterprises", "contact@wayne.test", "wayne"},
		{"Wonka Factory", "hello@wonka.test", "wonka"},
		{"Soylent Co", "info@soylent.test", "soylent"},
		{"Cyberdyne Systems", "contact@cyberdyne.test", "cyberdyne"},
		{"Tyrell Corp", "hello@tyrell.test", "tyrell"},
		{"Gringotts Bank", "info@gringotts.test", "gringotts"},
		{"Oscorp", "contact@oscorp.test", "oscorp"},
		{"Vehement Capital", "hello@vehement.test", "vehement"},
		{"Daily Planet", "info@dailyplanet.test", "dailyplanet"},
		{"Hooli", "contact@hooli.test", "hooli"},
		{"Vandelay Industries", "hello@vandelay.test", "vandelay"},
		{"Pied Piper", "info@piedpiper.test", "piedpiper"},
	}

	companies := make([]company.Company, 0, len(rows))
	for _, r := range rows {
		companies = append(companies, company.Company{
			Name:    r.name,
			Email:   strPtr(r.email),
			Logo:    strPtr("logos/" + r.slug + ".png"),
			Website: strPtr("https://" + r.slug + ".test"),
		})
	}
	return companies
}

// DefaultEmployees returns the two demo employees of c.
func DefaultEmployees(c company.Company) []employee.Employee {
	return []employee.Employee{
		{
			FirstName: "Alex",
			LastName:  c.Name,
			CompanyID: c.ID,
			Email:     strPtr(fmt.Sprintf("alex.%d@example.test", c.ID)),
			Phone:     strPtr(fmt.Sprintf("+1-555-010%d", c.ID)),
		},
		{
			FirstName: "Jamie",
			LastName:  c.Name,
			CompanyID: c.ID,
			Email:     strPtr(fmt.Sprintf("jamie.%d@example.test", c.ID)),
			Phone:     strPtr(fmt.Sprintf("+1-555-020%d", c.ID)),
		},
	}
}

// SeedResult counts the rows written by Seed.
type SeedResult struct {
	Companies int
	Employees int
}

// Seed writes the demo directory through the repositories. It does not
// clear existing rows.
func Seed(ctx context.Context, companies company.CompanyRepository, employees employee.EmployeeRepository) (SeedResult, error) {
	var result SeedResult
	for _, c := range DefaultCompanies() {
		created, err := companies.Create(ctx, c)
		if err != nil {
			return result, fmt.Errorf("failed to seed company %q: %w", c.Name, err)
		}
		result.Companies++

		for _, e := range DefaultEmployees(created) {
			if _, err := employees.Create(ctx, e); err != nil {
				return result, fmt.Errorf("failed to seed employee of %q: %w", created.Name, err)
			}
			result.Employees++
		}
	}
	return result, nil
}
