// Package grid implements client-side table control: column filters, a single
// active sort, pagination, bounded selection, and footer totals.
package grid

import (
	"strings"

	"github.com/Veraticus/paydesk/internal/model"
)

// FilterMap maps a column key to its free-text filter. "" means no filter.
type FilterMap map[string]string

// NewFilterMap returns a map with an empty filter for every column.
func NewFilterMap(columns []model.ColumnSpec) FilterMap {
	f := make(FilterMap, len(columns))
	for _, c := range columns {
		f[c.Key] = ""
	}
	return f
}

// Active reports whether any filter is non-empty.
func (f FilterMap) Active() bool {
	for _, v := range f {
		if v != "" {
			return true
		}
	}
	return false
}

// Reset clears every filter in place.
func (f FilterMap) Reset() {
	for k := range f {
		f[k] = ""
	}
}

// ApplyFilters returns the records that pass every non-empty column filter,
// in their original order. Matching is a case-insensitive substring test on
// the column's extracted value.
func ApplyFilters(records []model.Record, filters FilterMap, columns []model.ColumnSpec) []model.Record {
	type matcher struct {
		column model.ColumnSpec
		needle string
	}

	byKey := make(map[string]model.ColumnSpec, len(columns))
	for _, c := range columns {
		byKey[c.Key] = c
	}

	var matchers []matcher
	for key, text := range filters {
		if text == "" {
			continue
		}
		col, ok := byKey[key]
		if !ok {
			col = model.ColumnSpec{Key: key}
		}
		matchers = append(matchers, matcher{column: col, needle: strings.ToLower(text)})
	}

	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		pass := true
		for _, m := range matchers {
			hay := strings.ToLower(model.Stringify(m.column.Value(r)))
			if !strings.Contains(hay, m.needle) {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, r)
		}
	}
	return out
}
