package components

import (
	"testing"
	"time"

	"github.com/Veraticus/paydesk/internal/screen"
	"github.com/Veraticus/paydesk/internal/tui/themes"
	"github.com/stretchr/testify/assert"
)

func TestStatsModel_View(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		view    screen.View
		want    []string
		notWant []string
	}{
		{
			name: "counts and paging",
			view: screen.View{Page: 2, TotalPages: 3, VisibleCount: 25, TotalCount: 40},
			want: []string{"page 2/3", "25 of 40 records"},
			notWant: []string{
				"selected",
				"updated",
			},
		},
		{
			name: "selection with cap",
			view: screen.View{Page: 1, TotalPages: 1, SelectionCount: 3, SelectionLimit: 50},
			want: []string{"3/50 selected"},
		},
		{
			name: "selection without cap",
			view: screen.View{Page: 1, TotalPages: 1, SelectionCount: 3},
			want: []string{"3 selected"},
		},
		{
			name: "recent fetch",
			view: screen.View{Page: 1, TotalPages: 1, FetchedAt: now.Add(-10 * time.Second)},
			want: []string{"updated just now"},
		},
		{
			name: "older fetch",
			view: screen.View{Page: 1, TotalPages: 1, FetchedAt: now.Add(-5 * time.Minute)},
			want: []string{"updated 5m ago"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewStatsModel(themes.Default)
			m.now = func() time.Time { return now }
			m.SetView(tt.view)

			out := m.View()
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestStatsModel_Progress(t *testing.T) {
	m := NewStatsModel(themes.Default)
	m.SetView(screen.View{Page: 1, TotalPages: 1})
	assert.False(t, m.Busy())

	m, _ = m.Update(ProgressMsg{Done: 1, Total: 4})
	assert.True(t, m.Busy())
	assert.Contains(t, m.View(), "1/4")

	m, _ = m.Update(ProgressMsg{Done: 4, Total: 4})
	assert.False(t, m.Busy())
	assert.NotContains(t, m.View(), "4/4")
}
