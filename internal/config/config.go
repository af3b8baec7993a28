package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/paydesk/internal/common"
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/spf13/viper"
)

// Defaults.
const (
	DefaultDatabasePath = "$HOME/.local/share/paydesk/paydesk.db"
	DefaultTimeout      = 30 * time.Second
	DefaultRatePerSec   = 5.0
	DefaultBurst        = 1
)

// Config holds everything injected at bootstrap.
type Config struct {
	Screens      map[string]ScreenOverride
	Session      model.Session
	DatabasePath string
	Logging      common.LogConfig
	Timeout      time.Duration
	RatePerSec   float64
	RetryMax     int
	Burst        int
}

// ScreenOverride adjusts a built-in screen from the config file.
type ScreenOverride struct {
	ListPath       string   `mapstructure:"list_path"`
	DebitTypes     []string `mapstructure:"debit_types"`
	PageSize       int      `mapstructure:"page_size"`
	SelectionLimit int      `mapstructure:"selection_limit"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("backend.timeout", DefaultTimeout)
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("transport.retry_max", 0)
	v.SetDefault("transport.rate_per_second", DefaultRatePerSec)
	v.SetDefault("transport.burst", DefaultBurst)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
}

// Load reads the configuration from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Session: model.Session{
			BaseURL:     strings.TrimRight(v.GetString("backend.base_url"), "/"),
			CurrentUser: v.GetString("session.user"),
		},
		Timeout:      v.GetDuration("backend.timeout"),
		DatabasePath: ExpandPath(v.GetString("database.path")),
		RetryMax:     v.GetInt("transport.retry_max"),
		RatePerSec:   v.GetFloat64("transport.rate_per_second"),
		Burst:        v.GetInt("transport.burst"),
		Logging: common.LogConfig{
			Level:      v.GetString("logging.level"),
			Format:     v.GetString("logging.format"),
			File:       ExpandPath(v.GetString("logging.file")),
			MaxSizeMB:  v.GetInt("logging.max_size_mb"),
			MaxBackups: v.GetInt("logging.max_backups"),
			Compress:   v.GetBool("logging.compress"),
		},
	}

	if err := v.UnmarshalKey("screens", &cfg.Screens); err != nil {
		return nil, fmt.Errorf("%w: screens: %v", common.ErrInvalidConfig, err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = DefaultRatePerSec
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.RetryMax < 0 {
		cfg.RetryMax = 0
	}

	return cfg, nil
}

// Validate checks what a backend connection needs.
func (c *Config) Validate() error {
	if c.Session.BaseURL == "" {
		return fmt.Errorf("%w: backend.base_url", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.Session.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: backend.base_url must be an http(s) URL", common.ErrInvalidConfig)
	}
	if c.Session.CurrentUser == "" {
		return fmt.Errorf("%w: session.user", common.ErrMissingConfig)
	}
	return nil
}
