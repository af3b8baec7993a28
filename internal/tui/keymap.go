package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PrevPage key.Binding
	NextPage key.Binding

	// Table control
	Sort         key.Binding
	Filter       key.Binding
	ClearFilters key.Binding
	Hide         key.Binding
	ShowAll      key.Binding
	Reset        key.Binding

	// Selection
	ToggleSelect key.Binding
	SelectPage   key.Binding
	DeselectAll  key.Binding

	// Actions
	Action  key.Binding
	Refresh key.Binding

	// Application
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "prev column"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "next column"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("pgup", "p", "["),
			key.WithHelp("PgUp/p", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("pgdown", "n", "]"),
			key.WithHelp("PgDn/n", "next page"),
		),

		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort column"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter column"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "clear filters"),
		),
		Hide: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "hide column"),
		),
		ShowAll: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "show all columns"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset table"),
		),

		ToggleSelect: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x/Space", "toggle selection"),
		),
		SelectPage: key.NewBinding(
			key.WithKeys("ctrl+a", "X"),
			key.WithHelp("Ctrl+A", "select page"),
		),
		DeselectAll: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("Ctrl+D", "deselect all"),
		),

		Action: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a/Enter", "actions"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "refresh"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleSelect, k.Action, k.Filter, k.Sort, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.PrevPage, k.NextPage},
		{k.Sort, k.Filter, k.ClearFilters, k.Hide, k.ShowAll, k.Reset},
		{k.ToggleSelect, k.SelectPage, k.DeselectAll},
		{k.Action, k.Refresh, k.Help, k.Quit},
	}
}
