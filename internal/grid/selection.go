package grid

import "fmt"

// TriState is the header checkbox state of a page.
type TriState string

// Page selection states.
const (
	SelectNone TriState = "none"
	SelectSome TriState = "some"
	SelectAll  TriState = "all"
)

// LimitWarning is returned when a selection would exceed its cap. The
// selection itself is left consistent; callers surface the warning.
type LimitWarning struct {
	Limit   int
	Skipped int
}

func (w *LimitWarning) Error() string {
	if w.Skipped == 1 {
		return fmt.Sprintf("selection is limited to %d records", w.Limit)
	}
	return fmt.Sprintf("selection is limited to %d records; %d not selected", w.Limit, w.Skipped)
}

// Selection is a bounded set of record keys. A limit of 0 is unbounded.
type Selection struct {
	keys  map[string]struct{}
	order []string
	limit int
}

// NewSelection creates an empty selection.
func NewSelection(limit int) *Selection {
	if limit < 0 {
		limit = 0
	}
	return &Selection{keys: make(map[string]struct{}), limit: limit}
}

// Limit returns the cap, 0 when unbounded.
func (s *Selection) Limit() int {
	return s.limit
}

// Len returns the number of selected keys.
func (s *Selection) Len() int {
	return len(s.keys)
}

// Contains reports whether key is selected.
func (s *Selection) Contains(key string) bool {
	_, ok := s.keys[key]
	return ok
}

// Keys returns the selected keys in selection order.
func (s *Selection) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Toggle flips membership of key and reports whether it is now selected.
// Removing always succeeds; adding past the cap leaves the selection unchanged
// and returns a *LimitWarning.
func (s *Selection) Toggle(key string) (bool, error) {
	if s.Contains(key) {
		s.remove(key)
		return false, nil
	}
	if s.full() {
		return false, &LimitWarning{Limit: s.limit, Skipped: 1}
	}
	s.add(key)
	return true, nil
}

// ToggleAllOnPage deselects pageKeys when all of them are selected; otherwise
// it adds the missing ones up to the cap. Keys that did not fit are reported
// through a *LimitWarning.
func (s *Selection) ToggleAllOnPage(pageKeys []string) error {
	if len(pageKeys) == 0 {
		return nil
	}
	if s.PageSelectionState(pageKeys) == SelectAll {
		for _, k := range pageKeys {
			s.remove(k)
		}
		return nil
	}

	skipped := 0
	for _, k := range pageKeys {
		if s.Contains(k) {
			continue
		}
		if s.full() {
			skipped++
			continue
		}
		s.add(k)
	}
	if skipped > 0 {
		return &LimitWarning{Limit: s.limit, Skipped: skipped}
	}
	return nil
}

// PageSelectionState reports how much of a page is selected.
func (s *Selection) PageSelectionState(pageKeys []string) TriState {
	selected := 0
	for _, k := range pageKeys {
		if s.Contains(k) {
			selected++
		}
	}
	switch {
	case selected == 0:
		return SelectNone
	case selected == len(pageKeys):
		return SelectAll
	default:
		return SelectSome
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.keys = make(map[string]struct{})
	s.order = nil
}

// Retain drops selected keys not present in keep, used after a refetch.
func (s *Selection) Retain(keep map[string]bool) {
	for _, k := range s.Keys() {
		if !keep[k] {
			s.remove(k)
		}
	}
}

func (s *Selection) full() bool {
	return s.limit > 0 && len(s.keys) >= s.limit
}

func (s *Selection) add(key string) {
	s.keys[key] = struct{}{}
	s.order = append(s.order, key)
}

func (s *Selection) remove(key string) {
	if _, ok := s.keys[key]; !ok {
		return
	}
	delete(s.keys, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
