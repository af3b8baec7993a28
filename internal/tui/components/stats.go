package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/paydesk/internal/screen"
	"github.com/Veraticus/paydesk/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProgressMsg reports how many requests of a multi-record action are done.
type ProgressMsg struct {
	Done  int
	Total int
}

// StatsModel shows counts, paging and the progress of a running action.
type StatsModel struct {
	theme       themes.Theme
	now         func() time.Time
	view        screen.View
	progressBar progress.Model
	done        int
	total       int
	width       int
}

// NewStatsModel creates a stats line.
func NewStatsModel(theme themes.Theme) StatsModel {
	prog := progress.New(progress.WithDefaultGradient())
	prog.ShowPercentage = false
	prog.Width = 30

	return StatsModel{
		theme:       theme,
		now:         time.Now,
		progressBar: prog,
	}
}

// SetView replaces the summarized snapshot.
func (m *StatsModel) SetView(v screen.View) {
	m.view = v
}

// Update handles messages.
func (m StatsModel) Update(msg tea.Msg) (StatsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressMsg:
		m.done = msg.Done
		m.total = msg.Total
		if m.done >= m.total {
			m.done, m.total = 0, 0
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressBar.Width = min(max(10, m.width-40), 40)
	}

	return m, nil
}

// Busy reports whether an action is reporting progress.
func (m StatsModel) Busy() bool {
	return m.total > 0
}

// View renders the stats line.
func (m StatsModel) View() string {
	parts := []string{
		fmt.Sprintf("page %d/%d", m.view.Page, m.view.TotalPages),
		fmt.Sprintf("%d of %d records", m.view.VisibleCount, m.view.TotalCount),
	}
	if m.view.SelectionCount > 0 {
		sel := fmt.Sprintf("%d selected", m.view.SelectionCount)
		if m.view.SelectionLimit > 0 {
			sel = fmt.Sprintf("%d/%d selected", m.view.SelectionCount, m.view.SelectionLimit)
		}
		parts = append(parts, m.theme.Marked.Render(sel))
	}
	if !m.view.FetchedAt.IsZero() {
		parts = append(parts, "updated "+m.age())
	}

	line := lipgloss.NewStyle().Foreground(m.theme.Muted).Render(strings.Join(parts, " · "))
	if m.total == 0 {
		return line
	}

	bar := m.progressBar.ViewAs(float64(m.done) / float64(m.total))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		line,
		"  ",
		bar,
		m.theme.Normal.Render(fmt.Sprintf(" %d/%d", m.done, m.total)),
	)
}

func (m StatsModel) age() string {
	d := m.now().Sub(m.view.FetchedAt)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return m.view.FetchedAt.Format("15:04")
	}
}

// Resize updates the component size.
func (m *StatsModel) Resize(width int) {
	m.width = width
	m.progressBar.Width = min(max(10, width-40), 40)
}
