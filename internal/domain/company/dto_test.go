package company

import (
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/cmlabs-hris/company-directory-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateCompanyRequest_Validate(t *testing.T) {
	cases := []struct {
		name   string
		req    CreateCompanyRequest
		fields []string
	}{
		{
			name: "valid",
			req:  CreateCompanyRequest{Name: "Initech", Email: strPtr("hello@initech.test"), Website: strPtr("https://initech.test")},
		},
		{
			name: "name only",
			req:  CreateCompanyRequest{Name: "Initech"},
		},
		{
			name:   "missing name",
			req:    CreateCompanyRequest{},
			fields: []string{"name"},
		},
		{
			name:   "name too long",
			req:    CreateCompanyRequest{Name: strings.Repeat("x", 256)},
			fields: []string{"name"},
		},
		{
			name:   "bad email and website",
			req:    CreateCompanyRequest{Name: "Initech", Email: strPtr("nope"), Website: strPtr("not a url")},
			fields: []string{"email", "website"},
		},
		{
			name:   "logo upload too large",
			req:    CreateCompanyRequest{Name: "Initech", LogoHeader: &multipart.FileHeader{Filename: "big.png", Size: MaxLogoSize + 1}},
			fields: []string{"logo"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if len(tc.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			var errs validator.ValidationErrors
			require.True(t, errors.As(err, &errs), "expected validation errors, got %v", err)
			for _, f := range tc.fields {
				assert.True(t, errs.Has(f), "missing error for %s", f)
			}
		})
	}
}

func TestUpdateCompanyRequest_Apply(t *testing.T) {
	logo := "/storage/logos/acme.png"
	existing := Company{ID: 3, Name: "Stark Industries", Email: strPtr("hello@stark.test"), Logo: &logo, Website: strPtr("https://stark.test")}

	req := UpdateCompanyRequest{Name: strPtr("Stark International"), Website: strPtr(""), Logo: strPtr("ignored.png")}
	merged := req.Apply(existing)

	assert.Equal(t, int64(3), merged.ID)
	assert.Equal(t, "Stark International", merged.Name)
	assert.Equal(t, "hello@stark.test", *merged.Email)
	assert.Nil(t, merged.Website)
	assert.Equal(t, &logo, merged.Logo)
}

func TestCompany_ValidateBlankedName(t *testing.T) {
	req := UpdateCompanyRequest{Name: strPtr("  ")}
	merged := req.Apply(Company{Name: "Acme"})

	var errs validator.ValidationErrors
	require.True(t, errors.As(merged.Validate(), &errs))
	assert.True(t, errs.Has("name"))
}
