// Package themes holds the color themes of the terminal UI.
package themes

import (
	"sort"

	"github.com/Veraticus/paydesk/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors a theme is derived from.
type Palette struct {
	Primary    lipgloss.Color
	OnPrimary  lipgloss.Color
	Foreground lipgloss.Color
	Dim        lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
}

// Theme is the set of styles the grid, menus and footer render with.
type Theme struct {
	Selected      lipgloss.Style
	Marked        lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Totals        lipgloss.Style
	RoundedBox    lipgloss.Style
	BorderedBox   lipgloss.Style
	notices       map[model.NoticeLevel]lipgloss.Style
	Name          string
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	StatusWarning lipgloss.Style
}

// New derives a theme from a palette.
func New(name string, p Palette) Theme {
	status := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	text := lipgloss.NewStyle().Foreground(p.Foreground)

	return Theme{
		Name:    name,
		Primary: p.Primary,
		Muted:   p.Muted,
		Border:  p.Border,

		Title:    text.Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(p.Dim),
		Normal:   text,
		Bold:     text.Bold(true),
		Totals:   status(p.Success),
		Selected: lipgloss.NewStyle().Background(p.Primary).Foreground(p.OnPrimary).Bold(true),
		Marked:   status(p.Warning),

		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Border).
			Padding(1, 2),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(1, 2),

		StatusWarning: status(p.Warning),
		notices: map[model.NoticeLevel]lipgloss.Style{
			model.NoticeSuccess: status(p.Success),
			model.NoticeWarning: status(p.Warning),
			model.NoticeError:   status(p.Error),
			model.NoticeInfo:    status(p.Info),
		},
	}
}

// Default matches the CLI palette.
var Default = New("default", Palette{
	Primary:    "#5b8def",
	OnPrimary:  "#fafafa",
	Foreground: "#fafafa",
	Dim:        "#a3a3a3",
	Muted:      "#737373",
	Border:     "#404040",
	Success:    "#10b981",
	Warning:    "#f59e0b",
	Error:      "#ef4444",
	Info:       "#3b82f6",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = New("catppuccin-mocha", Palette{
	Primary:    "#cba6f7",
	OnPrimary:  "#1e1e2e",
	Foreground: "#cdd6f4",
	Dim:        "#a6adc8",
	Muted:      "#6c7086",
	Border:     "#45475a",
	Success:    "#a6e3a1",
	Warning:    "#f9e2af",
	Error:      "#f38ba8",
	Info:       "#89dceb",
})

var registry = map[string]Theme{
	Default.Name:         Default,
	CatppuccinMocha.Name: CatppuccinMocha,
}

// GetTheme returns a theme by name, falling back to Default.
func GetTheme(name string) Theme {
	if t, ok := registry[name]; ok {
		return t
	}
	return Default
}

// Names lists the registered themes.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var noticeIcons = map[model.NoticeLevel]string{
	model.NoticeSuccess: "✓",
	model.NoticeWarning: "⚠",
	model.NoticeError:   "✗",
	model.NoticeInfo:    "ℹ",
}

// Notice renders an operator notice in the style of its level.
func (t Theme) Notice(n model.Notice) string {
	level := n.Level
	if _, ok := noticeIcons[level]; !ok {
		level = model.NoticeInfo
	}
	style, ok := t.notices[level]
	if !ok {
		style = lipgloss.NewStyle()
	}
	return style.Render(noticeIcons[level] + " " + n.Message)
}
