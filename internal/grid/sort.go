package grid

import (
	"sort"
	"strings"

	"github.com/Veraticus/paydesk/internal/model"
)

// SortDirection is asc or desc.
type SortDirection string

// Sort directions.
const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// SortSpec is the single active sort column. A nil *SortSpec means unsorted.
type SortSpec struct {
	Key       string
	Direction SortDirection
}

// ParseSortSpec parses "key" or "key:desc".
func ParseSortSpec(s string) *SortSpec {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	key, dir, _ := strings.Cut(s, ":")
	spec := &SortSpec{Key: key, Direction: Asc}
	if strings.EqualFold(dir, string(Desc)) {
		spec.Direction = Desc
	}
	return spec
}

// ApplySort returns a stably sorted copy. Ties keep their input order and a nil
// spec returns the input order unchanged.
func ApplySort(records []model.Record, spec *SortSpec) []model.Record {
	out := make([]model.Record, len(records))
	copy(out, records)
	if spec == nil || spec.Key == "" {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Get(spec.Key), out[j].Get(spec.Key)
		if spec.Direction == Desc {
			return compareValues(b, a) < 0
		}
		return compareValues(a, b) < 0
	})
	return out
}

// Derive filters then sorts. Sorting never changes which records pass.
func Derive(records []model.Record, filters FilterMap, columns []model.ColumnSpec, spec *SortSpec) []model.Record {
	return ApplySort(ApplyFilters(records, filters, columns), spec)
}

// compareValues orders raw field values: missing before present, numbers
// numerically, strings lexically, and mixed pairs numerically when the string
// parses.
func compareValues(a, b any) int {
	aMissing, bMissing := isMissing(a), isMissing(b)
	switch {
	case aMissing && bMissing:
		return 0
	case aMissing:
		return -1
	case bMissing:
		return 1
	}

	an, aNum := model.ToNumber(a)
	bn, bNum := model.ToNumber(b)
	if (model.IsNumeric(a) || model.IsNumeric(b)) && aNum && bNum {
		return compareFloat(an, bn)
	}
	return strings.Compare(model.Stringify(a), model.Stringify(b))
}

func isMissing(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
