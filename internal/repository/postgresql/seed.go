package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/company-directory-go/internal/pkg/database"
)

// ClearDirectory removes every employee and company and resets their ids.
func ClearDirectory(ctx context.Context, db *database.DB) error {
	q := GetQuerier(ctx, db)
	if _, err := q.Exec(ctx, `TRUNCATE TABLE employee, company RESTART IDENTITY`); err != nil {
		return fmt.Errorf("failed to clear directory tables: %w", err)
	}
	return nil
}
