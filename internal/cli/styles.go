// Package cli renders screens, notices and prompts on a plain terminal.
package cli

import (
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Palette shared with the default TUI theme.
var (
	AccentColor = lipgloss.Color("#5B8DEF")
	MutedColor  = lipgloss.Color("#666666")
)

var (
	// TitleStyle is used for screen titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)
	// SubtleStyle is used for summaries under a title.
	SubtleStyle = lipgloss.NewStyle().Foreground(MutedColor)
	// PromptStyle is used for value prompts.
	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)
)

type levelStyle struct {
	style lipgloss.Style
	icon  string
}

var levels = map[model.NoticeLevel]levelStyle{
	model.NoticeSuccess: {icon: "✓", style: lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))},
	model.NoticeWarning: {icon: "⚠", style: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))},
	model.NoticeError:   {icon: "✗", style: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))},
	model.NoticeInfo:    {icon: "ℹ", style: lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1D3"))},
}

// FormatNotice renders a notice with the icon and color of its level. Unknown
// levels render as info.
func FormatNotice(n model.Notice) string {
	ls, ok := levels[n.Level]
	if !ok {
		ls = levels[model.NoticeInfo]
	}
	return ls.style.Render(ls.icon + " " + n.Message)
}

// FormatSuccess renders a success message.
func FormatSuccess(message string) string {
	return FormatNotice(model.Notice{Level: model.NoticeSuccess, Message: message})
}

// FormatError renders an error message.
func FormatError(message string) string {
	return FormatNotice(model.Notice{Level: model.NoticeError, Message: message})
}

// FormatWarning renders a warning.
func FormatWarning(message string) string {
	return FormatNotice(model.Notice{Level: model.NoticeWarning, Message: message})
}

// FormatInfo renders an informational message.
func FormatInfo(message string) string {
	return FormatNotice(model.Notice{Level: model.NoticeInfo, Message: message})
}

// FormatTitle renders a screen title.
func FormatTitle(title string) string {
	return TitleStyle.Render("💳 " + title)
}

// FormatPrompt renders the label of a value prompt.
func FormatPrompt(label string) string {
	return PromptStyle.Render(label + " → ")
}
