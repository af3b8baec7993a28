package tui

import (
	"context"

	"github.com/Veraticus/paydesk/internal/model"
	"github.com/Veraticus/paydesk/internal/screen"
	"github.com/Veraticus/paydesk/internal/tui/components"
	"github.com/Veraticus/paydesk/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// State represents the current state of the TUI.
type State int

const (
	StateGrid State = iota
	StateActions
	StateConfirm
	StateHelp
)

// Model hosts one screen.
type Model struct {
	ctx          context.Context
	theme        themes.Theme
	screen       *screen.Screen
	notice       *model.Notice
	confirmReply chan<- model.ConfirmResult
	confirm      components.ConfirmModel
	menu         components.ActionMenuModel
	grid         components.GridModel
	stats        components.StatsModel
	targets      []string
	help         help.Model
	spinner      spinner.Model
	keymap       KeyMap
	config       Config
	height       int
	width        int
	state        State
	busy         bool
	quitting     bool
	ready        bool
}

// newModel creates a model for scr.
func newModel(ctx context.Context, scr *screen.Screen, cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cfg.Theme.Primary)

	m := Model{
		ctx:     ctx,
		screen:  scr,
		state:   StateGrid,
		config:  cfg,
		keymap:  DefaultKeyMap(),
		theme:   cfg.Theme,
		grid:    components.NewGrid(cfg.Theme),
		stats:   components.NewStatsModel(cfg.Theme),
		help:    help.New(),
		spinner: sp,
		width:   cfg.Width,
		height:  cfg.Height,
	}
	m.handleResize()
	m.sync()
	return m
}

// Init starts the first fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case fetchedMsg:
		m.ready = true
		m.sync()
		return m, nil

	case actionDoneMsg:
		m.busy = false
		m.targets = nil
		m.sync()
		return m, nil

	case confirmRequestMsg:
		if m.confirmReply != nil {
			msg.reply <- model.Cancelled()
			return m, nil
		}
		m.confirmReply = msg.reply
		m.confirm = components.NewConfirmModel(msg.request, m.theme)
		m.confirm.Resize(m.width, m.height)
		m.state = StateConfirm
		return m, nil

	case noticeMsg:
		n := msg.notice
		m.notice = &n
		return m, nil

	case components.ProgressMsg:
		var cmd tea.Cmd
		m.stats, cmd = m.stats.Update(msg)
		return m, cmd

	case components.FilterAppliedMsg:
		m.screen.SetFilter(msg.Key, msg.Text)
		m.sync()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.answer(model.Cancelled())
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateConfirm:
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		if m.confirm.IsComplete() {
			m.answer(m.confirm.Result())
			m.state = StateGrid
		}
		return m, cmd

	case StateActions:
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		switch {
		case m.menu.IsCancelled():
			m.state = StateGrid
			m.targets = nil
		case m.menu.IsComplete():
			m.state = StateGrid
			act, params := m.menu.Result()
			m.busy = true
			m.notice = nil
			return m, m.perform(act.Name, m.targets, params)
		}
		return m, cmd

	case StateHelp:
		switch msg.String() {
		case "?", "esc", "q":
			m.state = StateGrid
		}
		return m, nil
	}

	if m.grid.Editing() {
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return m, cmd
	}
	return m.handleGridKey(msg)
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.state = StateHelp
		return m, nil

	case key.Matches(msg, m.keymap.Refresh):
		m.notice = nil
		return m, m.refresh()

	case key.Matches(msg, m.keymap.Sort):
		if col, ok := m.grid.FocusedColumn(); ok {
			m.screen.ToggleSort(col.Key)
		}

	case key.Matches(msg, m.keymap.ClearFilters):
		m.screen.ClearFilters()

	case key.Matches(msg, m.keymap.Hide):
		if col, ok := m.grid.FocusedColumn(); ok {
			m.screen.HideColumn(col.Key)
		}

	case key.Matches(msg, m.keymap.ShowAll):
		for _, c := range m.screen.Definition().Columns {
			m.screen.ShowColumn(c.Key)
		}

	case key.Matches(msg, m.keymap.Reset):
		m.screen.ResetAll()

	case key.Matches(msg, m.keymap.NextPage):
		m.screen.NextPage()

	case key.Matches(msg, m.keymap.PrevPage):
		m.screen.PrevPage()

	case key.Matches(msg, m.keymap.ToggleSelect):
		if k, ok := m.grid.CursorKey(); ok {
			if _, err := m.screen.ToggleSelect(k); err != nil {
				m.warn(err.Error())
			}
		}

	case key.Matches(msg, m.keymap.SelectPage):
		if err := m.screen.ToggleSelectPage(); err != nil {
			m.warn(err.Error())
		}

	case key.Matches(msg, m.keymap.DeselectAll):
		m.screen.ClearSelection()

	case key.Matches(msg, m.keymap.Action):
		return m.openActions()

	default:
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return m, cmd
	}

	m.sync()
	return m, nil
}

// openActions shows the action menu for the selection, or for the record
// under the cursor when nothing is selected.
func (m Model) openActions() (tea.Model, tea.Cmd) {
	def := m.screen.Definition()
	if def.ReadOnly() {
		m.info(def.Title + " is read-only")
		return m, nil
	}
	if m.busy {
		m.info("An action is already running")
		return m, nil
	}

	targets := m.screen.Selected()
	if len(targets) == 0 {
		k, ok := m.grid.CursorKey()
		if !ok {
			m.info("No record to act on")
			return m, nil
		}
		targets = []string{k}
	}

	m.targets = targets
	m.menu = components.NewActionMenu(def.Actions, len(targets), m.theme)
	m.menu.Resize(m.width, m.height)
	m.state = StateActions
	return m, nil
}

// answer replies to a pending confirmation, if any.
func (m *Model) answer(result model.ConfirmResult) {
	if m.confirmReply == nil {
		return
	}
	m.confirmReply <- result
	m.confirmReply = nil
}

func (m *Model) info(msg string) {
	m.notice = &model.Notice{Level: model.NoticeInfo, Message: msg}
}

func (m *Model) warn(msg string) {
	m.notice = &model.Notice{Level: model.NoticeWarning, Message: msg}
}

// sync copies the screen state into the components.
func (m *Model) sync() {
	v := m.screen.View()
	m.grid.SetView(v)
	m.stats.SetView(v)
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	// Title (1) + subtitle (1) + stats (1) + notice (1) + help (1) + border (2).
	m.grid.Resize(m.width-4, max(5, m.height-7))
	m.stats.Resize(m.width - 4)
	m.help.Width = m.width - 4
	m.confirm.Resize(m.width, m.height)
	m.menu.Resize(m.width, m.height)
}
