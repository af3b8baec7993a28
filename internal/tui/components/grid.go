package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/paydesk/internal/grid"
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/Veraticus/paydesk/internal/screen"
	"github.com/Veraticus/paydesk/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// GridMode represents the current mode of the grid.
type GridMode int

// Grid modes.
const (
	GridNormal GridMode = iota
	GridFilter
)

const markerWidth = 2

// FilterAppliedMsg is sent when the operator submits a column filter.
type FilterAppliedMsg struct {
	Key  string
	Text string
}

// GridModel renders one page of a screen view and tracks the cursor row and
// the focused column.
type GridModel struct {
	theme  themes.Theme
	view   screen.View
	filter textinput.Model
	table  table.Model
	mode   GridMode
	column int
	width  int
	height int
}

// NewGrid creates an empty grid.
func NewGrid(theme themes.Theme) GridModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithKeyMap(table.KeyMap{
			LineUp:     key.NewBinding(key.WithKeys("up", "k")),
			LineDown:   key.NewBinding(key.WithKeys("down", "j")),
			GotoTop:    key.NewBinding(key.WithKeys("home", "g")),
			GotoBottom: key.NewBinding(key.WithKeys("end", "G")),
		}),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	filter := textinput.New()
	filter.Placeholder = "filter text, empty to clear"
	filter.CharLimit = 64

	return GridModel{
		theme:  theme,
		table:  t,
		filter: filter,
		width:  80,
		height: 24,
	}
}

// SetView replaces the rendered snapshot, keeping the cursor and focused
// column in range.
func (m *GridModel) SetView(v screen.View) {
	m.view = v
	if m.column >= len(v.Columns) {
		m.column = max(0, len(v.Columns)-1)
	}

	m.table.SetRows(nil)
	m.table.SetColumns(m.buildColumns())
	m.table.SetRows(m.buildRows())
	if n, c := len(v.Records), m.table.Cursor(); n > 0 && (c < 0 || c >= n) {
		m.table.SetCursor(min(max(c, 0), n-1))
	}
}

// Mode returns the current mode.
func (m GridModel) Mode() GridMode {
	return m.mode
}

// Editing reports whether the filter input has focus.
func (m GridModel) Editing() bool {
	return m.mode == GridFilter
}

// CursorKey returns the key of the record under the cursor.
func (m GridModel) CursorKey() (string, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.view.Keys) {
		return "", false
	}
	return m.view.Keys[i], true
}

// FocusedColumn returns the column sort, filter and hide apply to.
func (m GridModel) FocusedColumn() (model.ColumnSpec, bool) {
	if m.column < 0 || m.column >= len(m.view.Columns) {
		return model.ColumnSpec{}, false
	}
	return m.view.Columns[m.column], true
}

// Update handles messages.
func (m GridModel) Update(msg tea.Msg) (GridModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == GridFilter {
			return m.handleFilterMode(msg)
		}
		switch msg.String() {
		case "h", "left":
			m.column = max(0, m.column-1)
			m.table.SetColumns(m.buildColumns())
			return m, nil
		case "l", "right":
			m.column = min(max(0, len(m.view.Columns)-1), m.column+1)
			m.table.SetColumns(m.buildColumns())
			return m, nil
		case "/":
			col, ok := m.FocusedColumn()
			if !ok {
				return m, nil
			}
			m.mode = GridFilter
			m.filter.Prompt = col.Title() + ": "
			m.filter.SetValue(m.view.Filters[col.Key])
			m.filter.CursorEnd()
			m.filter.Focus()
			return m, textinput.Blink
		}

	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m GridModel) handleFilterMode(msg tea.KeyMsg) (GridModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		col, _ := m.FocusedColumn()
		text := strings.TrimSpace(m.filter.Value())
		m.mode = GridNormal
		m.filter.Blur()
		return m, func() tea.Msg {
			return FilterAppliedMsg{Key: col.Key, Text: text}
		}

	case "esc":
		m.mode = GridNormal
		m.filter.Blur()
		m.filter.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

// View renders the grid.
func (m GridModel) View() string {
	if len(m.view.Columns) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No columns visible")
	}

	sections := []string{m.table.View()}
	if len(m.view.Records) == 0 {
		sections = append(sections, lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No records match"))
	}
	if totals := m.renderTotals(); totals != "" {
		sections = append(sections, totals)
	}
	if m.mode == GridFilter {
		sections = append(sections, m.filter.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Resize updates the component size.
func (m *GridModel) Resize(width, height int) {
	m.width = width
	m.height = height

	// Header (2) + totals (1) + filter input (1).
	m.table.SetHeight(max(1, height-4))
	m.table.SetWidth(width)
}

func (m GridModel) renderTotals() string {
	if len(m.view.Totals) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.view.Totals))
	for _, c := range m.view.Columns {
		total, ok := m.view.Totals[c.Key]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", c.Title(), grid.FormatAmount(total)))
	}
	if len(parts) == 0 {
		return ""
	}
	return m.theme.Totals.Render("TOTAL  " + strings.Join(parts, "  "))
}

func (m GridModel) buildColumns() []table.Column {
	columns := make([]table.Column, 0, len(m.view.Columns)+1)
	columns = append(columns, table.Column{Title: "", Width: markerWidth})
	for i, c := range m.view.Columns {
		title := c.Title()
		if m.view.Sort != nil && m.view.Sort.Key == c.Key {
			if m.view.Sort.Direction == grid.Desc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		if m.view.Filters[c.Key] != "" {
			title += " ≈"
		}
		if i == m.column {
			title = "[" + title + "]"
		}
		columns = append(columns, table.Column{Title: title, Width: max(c.Width(), len([]rune(title)))})
	}
	return columns
}

func (m GridModel) buildRows() []table.Row {
	rows := make([]table.Row, 0, len(m.view.Records))
	for i, r := range m.view.Records {
		row := make(table.Row, 0, len(m.view.Columns)+1)
		marker := ""
		if i < len(m.view.Keys) && m.view.Selected[m.view.Keys[i]] {
			marker = "●"
		}
		row = append(row, marker)
		for _, c := range m.view.Columns {
			row = append(row, c.Display(r))
		}
		rows = append(rows, row)
	}
	return rows
}
