// Package pagination resolves list query parameters (page, per_page,
// sort_by, sort_dir) and builds the length-aware page envelope returned by
// every list endpoint.
package pagination

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/company-directory-go/internal/pkg/validator"
)

const (
	DefaultPerPage = 10

	SortAsc  = "asc"
	SortDesc = "desc"
)

// baseSortable is always sortable, whatever the resource.
var baseSortable = []string{"id", "created_at", "updated_at"}

// ListQuery is a validated list request. SortBy is empty when the caller
// asked for no ordering or for a column outside the allowed set; the store
// then applies no ORDER BY and its natural order is not guaranteed.
type ListQuery struct {
	Page    int
	PerPage int
	SortBy  string
	SortDir string
}

// Offset returns the number of rows to skip for the current page. It
// saturates at math.MaxInt instead of overflowing.
func (q ListQuery) Offset() int {
	if q.Page <= 1 || q.PerPage <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.PerPage {
		return math.MaxInt
	}
	return (q.Page - 1) * q.PerPage
}

// Remaining returns how many of total rows fall on the current page.
func (q ListQuery) Remaining(total int64) int {
	offset := int64(q.Offset())
	if offset >= total {
		return 0
	}
	return int(min(int64(q.PerPage), total-offset))
}

// Sorted reports whether an explicit ordering applies.
func (q ListQuery) Sorted() bool {
	return q.SortBy != ""
}

// Descending reports whether the ordering is descending.
func (q ListQuery) Descending() bool {
	return q.SortDir == SortDesc
}

// AllowedSortFields returns id, created_at and updated_at followed by the
// resource's own fields, without duplicates.
func AllowedSortFields(fields []string) []string {
	allowed := make([]string, 0, len(baseSortable)+len(fields))
	allowed = append(allowed, baseSortable...)
	for _, f := range fields {
		if !validator.IsInSlice(f, allowed) {
			allowed = append(allowed, f)
		}
	}
	return allowed
}

// ParseListQuery turns raw query values into a ListQuery. It never fails:
// bad per_page and page values fall back to defaults and an unknown sort_by
// is dropped.
func ParseListQuery(values url.Values, fields []string) ListQuery {
	q := ListQuery{
		Page:    1,
		PerPage: DefaultPerPage,
		SortDir: SortAsc,
	}

	if perPage, err := strconv.Atoi(strings.TrimSpace(values.Get("per_page"))); err == nil && perPage > 0 {
		q.PerPage = perPage
	}

	if page, err := strconv.Atoi(strings.TrimSpace(values.Get("page"))); err == nil && page > 0 {
		q.Page = page
	}

	if dir := strings.ToLower(values.Get("sort_dir")); dir == SortDesc {
		q.SortDir = SortDesc
	}

	if sortBy := values.Get("sort_by"); sortBy != "" && validator.IsInSlice(sortBy, AllowedSortFields(fields)) {
		q.SortBy = sortBy
	}

	return q
}

// Page is the standard pagination envelope.
type Page[T any] struct {
	CurrentPage  int     `json:"current_page"`
	Data         []T     `json:"data"`
	FirstPageURL string  `json:"first_page_url"`
	From         *int    `json:"from"`
	LastPage     int     `json:"last_page"`
	LastPageURL  string  `json:"last_page_url"`
	NextPageURL  *string `json:"next_page_url"`
	Path         string  `json:"path"`
	PerPage      int     `json:"per_page"`
	PrevPageURL  *string `json:"prev_page_url"`
	To           *int    `json:"to"`
	Total        int64   `json:"total"`
}

// NewPage builds the envelope for one page of items. path is the list
// endpoint URL without a query string.
func NewPage[T any](items []T, total int64, q ListQuery, path string) Page[T] {
	if items == nil {
		items = []T{}
	}

	lastPage := 1
	if total > 0 && q.PerPage > 0 {
		lastPage = int((total-1)/int64(q.PerPage)) + 1
	}

	p := Page[T]{
		CurrentPage:  q.Page,
		Data:         items,
		FirstPageURL: pageURL(path, q, 1),
		LastPage:     lastPage,
		LastPageURL:  pageURL(path, q, lastPage),
		Path:         path,
		PerPage:      q.PerPage,
		Total:        total,
	}

	if len(items) > 0 {
		from := q.Offset() + 1
		to := q.Offset() + len(items)
		p.From = &from
		p.To = &to
	}

	if q.Page < lastPage {
		next := pageURL(path, q, q.Page+1)
		p.NextPageURL = &next
	}
	if q.Page > 1 {
		prev := pageURL(path, q, q.Page-1)
		p.PrevPageURL = &prev
	}

	return p
}

func pageURL(path string, q ListQuery, page int) string {
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	if q.PerPage != DefaultPerPage {
		values.Set("per_page", strconv.Itoa(q.PerPage))
	}
	if q.Sorted() {
		values.Set("sort_by", q.SortBy)
		values.Set("sort_dir", q.SortDir)
	}
	return path + "?" + values.Encode()
}
