package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// load runs the first fetch with the screen defaults overlaid by the
// configured params.
func (m Model) load() tea.Cmd {
	ctx, scr := m.ctx, m.screen
	params := scr.Definition().DefaultParams(time.Now())
	for k, v := range m.config.Params {
		params[k] = v
	}
	return func() tea.Msg {
		return fetchedMsg{err: scr.Fetch(ctx, params)}
	}
}

// refresh repeats the last fetch.
func (m Model) refresh() tea.Cmd {
	ctx, scr := m.ctx, m.screen
	return func() tea.Msg {
		return fetchedMsg{err: scr.Refresh(ctx)}
	}
}

// perform dispatches an action. It blocks on confirmation, so it always runs
// as a command and never inside Update.
func (m Model) perform(name string, keys []string, params map[string]any) tea.Cmd {
	ctx, scr := m.ctx, m.screen
	return func() tea.Msg {
		outcome, err := scr.Perform(ctx, name, keys, params)
		return actionDoneMsg{outcome: outcome, err: err}
	}
}
