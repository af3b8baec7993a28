package tui

import (
	"github.com/Veraticus/paydesk/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme themes.Theme
	// Params are merged over the screen's default params for the first fetch.
	Params       map[string]any
	Width        int
	Height       int
	MouseSupport bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// WithTheme sets the theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithParams sets the params of the first fetch.
func WithParams(params map[string]any) Option {
	return func(c *Config) {
		c.Params = params
	}
}

// WithSize sets the initial terminal size used before the first resize.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithMouse enables mouse cell motion.
func WithMouse(enabled bool) Option {
	return func(c *Config) {
		c.MouseSupport = enabled
	}
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Width:  80,
		Height: 24,
	}
}
