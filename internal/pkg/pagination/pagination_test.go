package pagination

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var companyFields = []string{"name", "email", "logo", "website"}

func TestParseListQuery(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  ListQuery
	}{
		{"defaults", "", ListQuery{Page: 1, PerPage: 10, SortDir: "asc"}},
		{"per page", "per_page=2", ListQuery{Page: 1, PerPage: 2, SortDir: "asc"}},
		{"zero per page", "per_page=0", ListQuery{Page: 1, PerPage: 10, SortDir: "asc"}},
		{"negative per page", "per_page=-5", ListQuery{Page: 1, PerPage: 10, SortDir: "asc"}},
		{"garbage per page", "per_page=abc", ListQuery{Page: 1, PerPage: 10, SortDir: "asc"}},
		{"unbounded per page", "per_page=100000", ListQuery{Page: 1, PerPage: 100000, SortDir: "asc"}},
		{"page", "page=3", ListQuery{Page: 3, PerPage: 10, SortDir: "asc"}},
		{"bad page", "page=0", ListQuery{Page: 1, PerPage: 10, SortDir: "asc"}},
		{"sort by fillable", "sort_by=name", ListQuery{Page: 1, PerPage: 10, SortBy: "name", SortDir: "asc"}},
		{"sort by base column", "sort_by=created_at&sort_dir=DESC", ListQuery{Page: 1, PerPage: 10, SortBy: "created_at", SortDir: "desc"}},
		{"sort by unknown", "sort_by=password&sort_dir=desc", ListQuery{Page: 1, PerPage: 10, SortDir: "desc"}},
		{"bad direction", "sort_by=id&sort_dir=sideways", ListQuery{Page: 1, PerPage: 10, SortBy: "id", SortDir: "asc"}},
		{"mixed case direction", "sort_by=id&sort_dir=Desc", ListQuery{Page: 1, PerPage: 10, SortBy: "id", SortDir: "desc"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ParseListQuery(values, companyFields))
		})
	}
}

func TestAllowedSortFields(t *testing.T) {
	got := AllowedSortFields([]string{"name", "id", "email"})
	assert.Equal(t, []string{"id", "created_at", "updated_at", "name", "email"}, got)
}

func TestListQuery_Offset(t *testing.T) {
	assert.Equal(t, 0, ListQuery{Page: 1, PerPage: 10}.Offset())
	assert.Equal(t, 2, ListQuery{Page: 2, PerPage: 2}.Offset())
	assert.Equal(t, 0, ListQuery{Page: 1, PerPage: math.MaxInt}.Offset())
	assert.Equal(t, math.MaxInt, ListQuery{Page: 2, PerPage: math.MaxInt}.Offset())
	assert.Equal(t, math.MaxInt, ListQuery{Page: math.MaxInt, PerPage: 2}.Offset())
}

func TestListQuery_Remaining(t *testing.T) {
	assert.Equal(t, 2, ListQuery{Page: 1, PerPage: 2}.Remaining(3))
	assert.Equal(t, 1, ListQuery{Page: 2, PerPage: 2}.Remaining(3))
	assert.Equal(t, 0, ListQuery{Page: 3, PerPage: 2}.Remaining(3))
	assert.Equal(t, 3, ListQuery{Page: 1, PerPage: math.MaxInt}.Remaining(3))
	assert.Equal(t, 0, ListQuery{Page: 2, PerPage: math.MaxInt}.Remaining(3))
	assert.Equal(t, 0, ListQuery{Page: math.MaxInt, PerPage: 2}.Remaining(3))
	assert.Equal(t, 0, ListQuery{Page: 1, PerPage: 10}.Remaining(0))
}

func TestParseListQuery_MaxInt(t *testing.T) {
	values, err := url.ParseQuery("per_page=9223372036854775807&page=9223372036854775807")
	require.NoError(t, err)

	q := ParseListQuery(values, companyFields)
	assert.Equal(t, math.MaxInt64, q.PerPage)
	assert.Equal(t, math.MaxInt64, q.Page)
}

func TestNewPage_HugePerPage(t *testing.T) {
	p := NewPage([]string{"a", "b", "c"}, 3, ListQuery{Page: 1, PerPage: math.MaxInt, SortDir: "asc"}, "/company")

	assert.Equal(t, 1, p.LastPage)
	require.NotNil(t, p.From)
	require.NotNil(t, p.To)
	assert.Equal(t, 1, *p.From)
	assert.Equal(t, 3, *p.To)
	assert.Nil(t, p.NextPageURL)

	p = NewPage[string](nil, 3, ListQuery{Page: math.MaxInt, PerPage: 2, SortDir: "asc"}, "/company")
	assert.Equal(t, 2, p.LastPage)
	assert.Nil(t, p.From)
	assert.Nil(t, p.NextPageURL)
	require.NotNil(t, p.PrevPageURL)
}

func TestNewPage_SecondOfTwo(t *testing.T) {
	q := ListQuery{Page: 2, PerPage: 2, SortDir: "asc"}
	p := NewPage([]string{"c"}, 3, q, "/company")

	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 2, p.PerPage)
	assert.Equal(t, int64(3), p.Total)
	assert.Equal(t, 2, p.LastPage)
	assert.Len(t, p.Data, 1)
	require.NotNil(t, p.From)
	require.NotNil(t, p.To)
	assert.Equal(t, 3, *p.From)
	assert.Equal(t, 3, *p.To)
	assert.Nil(t, p.NextPageURL)
	require.NotNil(t, p.PrevPageURL)
	assert.Equal(t, "/company?page=1&per_page=2", *p.PrevPageURL)
	assert.Equal(t, "/company?page=2&per_page=2", p.LastPageURL)
}

func TestNewPage_Empty(t *testing.T) {
	q := ListQuery{Page: 1, PerPage: 10, SortDir: "asc"}
	p := NewPage[int](nil, 0, q, "/employee")

	assert.NotNil(t, p.Data)
	assert.Empty(t, p.Data)
	assert.Nil(t, p.From)
	assert.Nil(t, p.To)
	assert.Equal(t, 1, p.LastPage)
	assert.Equal(t, "/employee?page=1", p.FirstPageURL)
}

func TestNewPage_KeepsSortInLinks(t *testing.T) {
	q := ListQuery{Page: 1, PerPage: 1, SortBy: "name", SortDir: "desc"}
	p := NewPage([]string{"a"}, 2, q, "/company")

	require.NotNil(t, p.NextPageURL)
	assert.Equal(t, "/company?page=2&per_page=1&sort_by=name&sort_dir=desc", *p.NextPageURL)
}
