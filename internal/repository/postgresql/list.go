package postgresql

import (
	"fmt"

	"github.com/cmlabs-hris/company-directory-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

// sortColumns maps every sortable field of a resource to its quoted column.
func sortColumns(fields []string) map[string]string {
	columns := make(map[string]string)
	for _, f := range pagination.AllowedSortFields(fields) {
		columns[f] = pgx.Identifier{f}.Sanitize()
	}
	return columns
}

// orderClause returns the ORDER BY clause for q, or "" when q carries no
// sort; the table's natural order then applies and is not guaranteed.
func orderClause(q pagination.ListQuery, columns map[string]string) string {
	if !q.Sorted() {
		return ""
	}
	column, ok := columns[q.SortBy]
	if !ok {
		return ""
	}

	direction := "ASC"
	if q.Descending() {
		direction = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, direction)
}
