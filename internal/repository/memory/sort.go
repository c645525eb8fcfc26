// Package memory holds map-backed repositories used by the memory store
// driver and by service tests.
package memory

import (
	"cmp"
	"slices"
	"time"

	"github.com/cmlabs-hris/company-directory-go/internal/pkg/pagination"
)

// sortKey extracts a comparable value for one sortable field of T.
type sortKey[T any] func(T) any

func compareAny(a, b any) int {
	switch av := a.(type) {
	case int64:
		return cmp.Compare(av, b.(int64))
	case string:
		return cmp.Compare(av, b.(string))
	case *string:
		bv := b.(*string)
		switch {
		case av == nil && bv == nil:
			return 0
		case av == nil:
			return -1
		case bv == nil:
			return 1
		}
		return cmp.Compare(*av, *bv)
	case time.Time:
		return av.Compare(b.(time.Time))
	}
	return 0
}

// page applies lq to rows, which must be in natural (id) order.
func page[T any](rows []T, lq pagination.ListQuery, keys map[string]sortKey[T]) []T {
	if key, ok := keys[lq.SortBy]; ok && lq.Sorted() {
		slices.SortStableFunc(rows, func(a, b T) int {
			c := compareAny(key(a), key(b))
			if lq.Descending() {
				return -c
			}
			return c
		})
	}

	start := min(lq.Offset(), len(rows))
	end := start + min(lq.PerPage, len(rows)-start)
	return rows[start:end]
}
