package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/paydesk/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateConfirm:
		return m.confirm.View()
	case StateActions:
		return m.menu.View()
	case StateHelp:
		return m.renderHelp()
	}

	if !m.ready {
		return m.renderLoading()
	}
	return m.wrapWithBorder(m.grid.View())
}

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	def := m.screen.Definition()
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("💳 "+def.Title),
		"",
		m.spinner.View()+" "+lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Loading records..."),
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderHeader renders the title line and the active params.
func (m Model) renderHeader() string {
	def := m.screen.Definition()
	title := m.theme.Title.Render("💳 " + def.Title)
	if m.screen.Loading() || m.busy {
		title += " " + m.spinner.View()
	}

	subtitle := def.Description
	if params := formatParams(m.screen.Params()); params != "" {
		if subtitle != "" {
			subtitle += " · "
		}
		subtitle += params
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, m.theme.Subtitle.Render(subtitle))
}

// renderNotice renders the latest notice, or a blank line.
func (m Model) renderNotice() string {
	if m.notice == nil {
		return ""
	}
	return m.theme.Notice(*m.notice)
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	title := m.theme.Title.Render(m.screen.Definition().Title + " - Help")
	body := m.help.FullHelpView(m.keymap.FullHelp())
	footer := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press ? or Esc to close help")

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.BorderedBox.
			MaxHeight(m.height).
			Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", footer)),
	)
}

// wrapWithBorder adds header, status lines and a border around content.
func (m Model) wrapWithBorder(content string) string {
	full := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		content,
		m.stats.View(),
		m.renderNotice(),
		m.help.ShortHelpView(m.keymap.ShortHelp()),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1).
		Render(full)
}

func formatParams(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := model.Stringify(params[k])
		if v == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", k, v))
	}
	return strings.Join(parts, " ")
}
