package components

import (
	"testing"

	"github.com/Veraticus/paydesk/internal/grid"
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/Veraticus/paydesk/internal/screen"
	"github.com/Veraticus/paydesk/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testView() screen.View {
	return screen.View{
		Title: "Deposits",
		Columns: []model.ColumnSpec{
			{Key: "id", Label: "ID", MinWidth: 6},
			{Key: "amount", Label: "Amount", MinWidth: 10, Numeric: true},
		},
		Records: []model.Record{
			{"id": "A1", "amount": 100.0},
			{"id": "A2", "amount": 250.5},
			{"id": "A3", "amount": 10.0},
		},
		Keys:       []string{"A1", "A2", "A3"},
		Selected:   map[string]bool{"A2": true},
		Filters:    grid.FilterMap{"id": "", "amount": ""},
		Totals:     map[string]decimal.Decimal{"amount": decimal.RequireFromString("360.5")},
		Page:       1,
		TotalPages: 1,
		PageSize:   10,
	}
}

func TestGridModel_CursorAndColumnFocus(t *testing.T) {
	g := NewGrid(themes.Default)
	g.SetView(testView())

	key, ok := g.CursorKey()
	require.True(t, ok)
	assert.Equal(t, "A1", key)

	g, _ = g.Update(runes("j"))
	key, _ = g.CursorKey()
	assert.Equal(t, "A2", key)

	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyEnd})
	key, _ = g.CursorKey()
	assert.Equal(t, "A3", key)

	col, ok := g.FocusedColumn()
	require.True(t, ok)
	assert.Equal(t, "id", col.Key)

	g, _ = g.Update(runes("l"))
	col, _ = g.FocusedColumn()
	assert.Equal(t, "amount", col.Key)

	// Focus stops at the last column.
	g, _ = g.Update(runes("l"))
	col, _ = g.FocusedColumn()
	assert.Equal(t, "amount", col.Key)

	g, _ = g.Update(runes("h"))
	g, _ = g.Update(runes("h"))
	col, _ = g.FocusedColumn()
	assert.Equal(t, "id", col.Key)
}

func TestGridModel_SetViewClampsCursorAndColumn(t *testing.T) {
	g := NewGrid(themes.Default)
	g.SetView(testView())
	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyEnd})
	g, _ = g.Update(runes("l"))

	v := testView()
	v.Columns = v.Columns[:1]
	v.Records = v.Records[:1]
	v.Keys = v.Keys[:1]
	g.SetView(v)

	key, ok := g.CursorKey()
	require.True(t, ok)
	assert.Equal(t, "A1", key)
	col, _ := g.FocusedColumn()
	assert.Equal(t, "id", col.Key)
}

func TestGridModel_FilterMode(t *testing.T) {
	tests := []struct {
		name     string
		keys     []tea.KeyMsg
		wantMsg  *FilterAppliedMsg
		wantMode GridMode
	}{
		{
			name:     "submit filter on focused column",
			keys:     []tea.KeyMsg{runes("/"), runes("A"), runes("2"), {Type: tea.KeyEnter}},
			wantMsg:  &FilterAppliedMsg{Key: "id", Text: "A2"},
			wantMode: GridNormal,
		},
		{
			name:     "empty submit clears",
			keys:     []tea.KeyMsg{runes("/"), {Type: tea.KeyEnter}},
			wantMsg:  &FilterAppliedMsg{Key: "id", Text: ""},
			wantMode: GridNormal,
		},
		{
			name:     "escape abandons",
			keys:     []tea.KeyMsg{runes("/"), runes("x"), {Type: tea.KeyEsc}},
			wantMode: GridNormal,
		},
		{
			name:     "still editing",
			keys:     []tea.KeyMsg{runes("/"), runes("j")},
			wantMode: GridFilter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(themes.Default)
			g.SetView(testView())

			var last tea.Cmd
			for _, k := range tt.keys {
				g, last = g.Update(k)
			}
			assert.Equal(t, tt.wantMode, g.Mode())

			if tt.wantMsg == nil {
				return
			}
			require.NotNil(t, last)
			assert.Equal(t, *tt.wantMsg, last())
		})
	}
}

func TestGridModel_FilterKeysDoNotMoveCursor(t *testing.T) {
	g := NewGrid(themes.Default)
	g.SetView(testView())

	g, _ = g.Update(runes("/"))
	assert.True(t, g.Editing())
	g, _ = g.Update(runes("j"))

	key, _ := g.CursorKey()
	assert.Equal(t, "A1", key)
}

func TestGridModel_View(t *testing.T) {
	g := NewGrid(themes.Default)
	g.Resize(100, 20)
	v := testView()
	v.Sort = &grid.SortSpec{Key: "amount", Direction: grid.Desc}
	g.SetView(v)

	out := g.View()
	assert.Contains(t, out, "Amount ▼")
	assert.Contains(t, out, "[ID]")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "360.50")

	empty := testView()
	empty.Records = nil
	empty.Keys = nil
	empty.Totals = nil
	g.SetView(empty)
	assert.Contains(t, g.View(), "No records match")
	_, ok := g.CursorKey()
	assert.False(t, ok)
}
