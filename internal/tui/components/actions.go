package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/paydesk/internal/action"
	"github.com/Veraticus/paydesk/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuStep int

const (
	stepChoose menuStep = iota
	stepParams
)

// ActionMenuModel lets the operator pick an action and fill in the params it
// requires before dispatch.
type ActionMenuModel struct {
	theme     themes.Theme
	params    map[string]any
	actions   []action.Action
	pending   []string
	input     textinput.Model
	count     int
	cursor    int
	width     int
	height    int
	step      menuStep
	complete  bool
	cancelled bool
}

// NewActionMenu creates a menu over actions for count target records.
func NewActionMenu(actions []action.Action, count int, theme themes.Theme) ActionMenuModel {
	input := textinput.New()
	input.CharLimit = 100
	return ActionMenuModel{
		theme:   theme,
		actions: actions,
		count:   count,
		input:   input,
		params:  make(map[string]any),
		width:   80,
		height:  24,
	}
}

// Update handles messages.
func (m ActionMenuModel) Update(msg tea.Msg) (ActionMenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			m.cancelled = true
			m.input.Blur()
			return m, nil
		}
		if m.step == stepParams {
			return m.handleParams(msg)
		}
		return m.handleChoose(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m ActionMenuModel) handleChoose(msg tea.KeyMsg) (ActionMenuModel, tea.Cmd) {
	switch s := msg.String(); s {
	case "j", "down":
		if len(m.actions) > 0 {
			m.cursor = (m.cursor + 1) % len(m.actions)
		}
	case "k", "up":
		if len(m.actions) > 0 {
			m.cursor = (m.cursor + len(m.actions) - 1) % len(m.actions)
		}
	case "q":
		m.cancelled = true
	case "enter":
		return m.choose()
	default:
		// Number keys pick directly.
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(m.actions) {
				m.cursor = i
				return m.choose()
			}
		}
	}
	return m, nil
}

func (m ActionMenuModel) choose() (ActionMenuModel, tea.Cmd) {
	if len(m.actions) == 0 {
		m.cancelled = true
		return m, nil
	}
	act := m.actions[m.cursor]
	m.pending = m.pending[:0]
	for _, p := range act.RequiredParams {
		if p != act.ReasonParam {
			m.pending = append(m.pending, p)
		}
	}
	if len(m.pending) == 0 {
		m.complete = true
		return m, nil
	}
	m.step = stepParams
	m.promptNext()
	return m, textinput.Blink
}

func (m *ActionMenuModel) promptNext() {
	m.input.Prompt = m.pending[0] + ": "
	m.input.SetValue("")
	m.input.Focus()
}

func (m ActionMenuModel) handleParams(msg tea.KeyMsg) (ActionMenuModel, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return m, nil
	}
	m.params[m.pending[0]] = value
	m.pending = m.pending[1:]
	if len(m.pending) == 0 {
		m.input.Blur()
		m.complete = true
		return m, nil
	}
	m.promptNext()
	return m, nil
}

// IsComplete reports whether an action was chosen and its params filled.
func (m ActionMenuModel) IsComplete() bool {
	return m.complete
}

// IsCancelled reports whether the operator backed out.
func (m ActionMenuModel) IsCancelled() bool {
	return m.cancelled
}

// Result returns the chosen action and collected params.
func (m ActionMenuModel) Result() (action.Action, map[string]any) {
	if len(m.actions) == 0 {
		return action.Action{}, m.params
	}
	return m.actions[m.cursor], m.params
}

// View renders the menu as a centered box.
func (m ActionMenuModel) View() string {
	title := m.theme.Title.Render(fmt.Sprintf("Actions for %d record(s)", m.count))

	var body string
	if m.step == stepParams {
		act, _ := m.Result()
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.theme.Bold.Render(act.Title()),
			"",
			m.input.View(),
		)
	} else {
		body = m.renderOptions()
	}

	help := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("[↑↓] Navigate | [1-9] Quick select | [Enter] Choose | [Esc] Cancel")
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", help)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.BorderedBox.Render(content),
	)
}

func (m ActionMenuModel) renderOptions() string {
	if len(m.actions) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("This screen is read-only")
	}

	lines := make([]string, 0, len(m.actions))
	for i, act := range m.actions {
		prefix := fmt.Sprintf("[%d] ", i+1)
		if i == m.cursor {
			prefix = lipgloss.NewStyle().Foreground(m.theme.Primary).Render("> ")
		}

		var tags []string
		if act.Destructive {
			tags = append(tags, "confirm")
		}
		if act.Bulk {
			tags = append(tags, "bulk")
		}
		line := prefix + act.Title()
		if len(tags) > 0 {
			line += " " + lipgloss.NewStyle().Foreground(m.theme.Muted).Render("("+strings.Join(tags, ", ")+")")
		}
		if i == m.cursor {
			line = m.theme.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Resize updates the component size.
func (m *ActionMenuModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
