package company

import "time"

// Fields lists the columns accepted from client input, in declaration order.
var Fields = []string{"name", "email", "logo", "website"}

type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Logo      *string   `json:"logo"`
	Website   *string   `json:"website"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
