package model

// ColumnSpec describes one table column. It is built once per screen and never
// mutated; visibility lives in the table control state.
type ColumnSpec struct {
	// Render produces the display value. Nil renders the field text.
	Render func(Record) string
	// FilterValue extracts the value matched by the column filter. Nil reads
	// the field directly.
	FilterValue func(Record) any
	Key         string
	Label       string
	MinWidth    int
	// Numeric columns are summed in footer totals.
	Numeric bool
}

// Display renders the column for a record.
func (c ColumnSpec) Display(r Record) string {
	if c.Render != nil {
		return c.Render(r)
	}
	return r.Text(c.Key)
}

// Value returns the value used for filter matching.
func (c ColumnSpec) Value(r Record) any {
	if c.FilterValue != nil {
		return c.FilterValue(r)
	}
	return r.Get(c.Key)
}

// Title returns the label, falling back to the key.
func (c ColumnSpec) Title() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Key
}

// Width returns the column width, at least as wide as the title.
func (c ColumnSpec) Width() int {
	w := c.MinWidth
	if l := len(c.Title()); l > w {
		w = l
	}
	return w
}
