package grid

import "github.com/Veraticus/paydesk/internal/model"

// TableControl owns column visibility and the active sort of one table.
type TableControl struct {
	sort    *SortSpec
	hidden  map[string]bool
	onReset []func()
	columns []model.ColumnSpec
}

// NewTableControl starts with every column visible and no sort.
func NewTableControl(columns []model.ColumnSpec) *TableControl {
	return &TableControl{
		columns: columns,
		hidden:  make(map[string]bool),
	}
}

// HideColumn removes a column from the visible set. Hiding twice is a no-op.
func (c *TableControl) HideColumn(key string) {
	c.hidden[key] = true
}

// ShowColumn makes a hidden column visible again.
func (c *TableControl) ShowColumn(key string) {
	delete(c.hidden, key)
}

// IsVisible reports whether a column is shown.
func (c *TableControl) IsVisible(key string) bool {
	return !c.hidden[key]
}

// VisibleColumns returns the shown columns in definition order.
func (c *TableControl) VisibleColumns() []model.ColumnSpec {
	out := make([]model.ColumnSpec, 0, len(c.columns))
	for _, col := range c.columns {
		if !c.hidden[col.Key] {
			out = append(out, col)
		}
	}
	return out
}

// Columns returns every column definition.
func (c *TableControl) Columns() []model.ColumnSpec {
	return c.columns
}

// SetSort cycles the sort on key: asc, then desc, then unsorted. A different
// key always starts at asc.
func (c *TableControl) SetSort(key string) {
	switch {
	case c.sort == nil || c.sort.Key != key:
		c.sort = &SortSpec{Key: key, Direction: Asc}
	case c.sort.Direction == Asc:
		c.sort = &SortSpec{Key: key, Direction: Desc}
	default:
		c.sort = nil
	}
}

// SetSortSpec replaces the sort outright.
func (c *TableControl) SetSortSpec(spec *SortSpec) {
	if spec == nil {
		c.sort = nil
		return
	}
	s := *spec
	c.sort = &s
}

// Sort returns a copy of the active sort, or nil.
func (c *TableControl) Sort() *SortSpec {
	if c.sort == nil {
		return nil
	}
	s := *c.sort
	return &s
}

// OnReset registers a callback run by ResetAll, used to clear filters and
// selection together with the table state.
func (c *TableControl) OnReset(fn func()) {
	c.onReset = append(c.onReset, fn)
}

// ResetAll shows every column, clears the sort, and runs the reset callbacks.
func (c *TableControl) ResetAll() {
	c.hidden = make(map[string]bool)
	c.sort = nil
	for _, fn := range c.onReset {
		fn()
	}
}
