package employee

import (
	"time"

	"github.com/cmlabs-hris/company-directory-go/internal/domain/company"
)

// Fields lists the columns accepted from client input, in declaration order.
var Fields = []string{"first_name", "last_name", "company_id", "email", "phone"}

type Employee struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CompanyID int64     `json:"company_id"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Company is the owning company, attached on read and list. It stays nil
	// when the referenced row no longer exists.
	Company *company.Company `json:"company,omitempty"`
}
