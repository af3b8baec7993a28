package components

import (
	"fmt"

	"github.com/Veraticus/paydesk/internal/action"
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/Veraticus/paydesk/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModel asks the operator to confirm a destructive action, collecting
// a value when the action needs one.
type ConfirmModel struct {
	theme    themes.Theme
	request  action.ConfirmRequest
	input    textinput.Model
	result   model.ConfirmResult
	width    int
	height   int
	complete bool
}

// NewConfirmModel creates a confirmation prompt for req.
func NewConfirmModel(req action.ConfirmRequest, theme themes.Theme) ConfirmModel {
	input := textinput.New()
	input.CharLimit = 200
	if req.ValueLabel != "" {
		input.Prompt = req.ValueLabel + ": "
		input.Focus()
	}
	return ConfirmModel{
		theme:   theme,
		request: req,
		input:   input,
		width:   80,
		height:  24,
	}
}

// Update handles messages.
func (m ConfirmModel) Update(msg tea.Msg) (ConfirmModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.finish(model.Cancelled())
			return m, nil

		case "enter":
			if m.request.ValueLabel != "" {
				m.finish(model.Confirmed(m.input.Value()))
				return m, nil
			}
			m.finish(model.Confirmed(""))
			return m, nil
		}

		if m.request.ValueLabel == "" {
			switch msg.String() {
			case "y", "Y":
				m.finish(model.Confirmed(""))
			case "n", "N", "q":
				m.finish(model.Cancelled())
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m *ConfirmModel) finish(result model.ConfirmResult) {
	m.result = result
	m.complete = true
	m.input.Blur()
}

// IsComplete reports whether the operator answered.
func (m ConfirmModel) IsComplete() bool {
	return m.complete
}

// Result returns the answer once complete.
func (m ConfirmModel) Result() model.ConfirmResult {
	return m.result
}

// View renders the prompt as a centered box.
func (m ConfirmModel) View() string {
	sections := []string{
		m.theme.StatusWarning.Render(m.request.Prompt),
		"",
		fmt.Sprintf("Action:  %s", m.theme.Bold.Render(m.request.Action.Title())),
		fmt.Sprintf("Records: %d", m.request.Count),
	}

	help := "[y/Enter] Confirm | [n/Esc] Cancel"
	if m.request.ValueLabel != "" {
		sections = append(sections, "", m.input.View())
		help = "[Enter] Confirm | [Esc] Cancel"
	}
	sections = append(sections, "", lipgloss.NewStyle().Foreground(m.theme.Muted).Render(help))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.RoundedBox.Render(content),
	)
}

// Resize updates the component size.
func (m *ConfirmModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
