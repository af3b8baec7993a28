package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/paydesk/internal/action"
	"github.com/Veraticus/paydesk/internal/backend"
	"github.com/Veraticus/paydesk/internal/common"
	"github.com/Veraticus/paydesk/internal/config"
	"github.com/Veraticus/paydesk/internal/grid"
	"github.com/Veraticus/paydesk/internal/screen"
	"github.com/Veraticus/paydesk/internal/storage"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

// reportedError marks a failure the operator has already been shown, so main
// exits non-zero without printing it again.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// loadConfig reads the merged flag, env and file configuration.
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

// loadCatalog returns the built-in screens with config overrides applied.
func loadCatalog(cfg *config.Config) (*screen.Catalog, error) {
	catalog := screen.NewCatalog()
	if err := catalog.ApplyOverrides(cfg.Screens); err != nil {
		return nil, err
	}
	return catalog, nil
}

// initStorage opens the audit log with proper path expansion.
func initStorage(ctx context.Context, cfg *config.Config) (*storage.SQLiteStorage, error) {
	dbPath := cfg.DatabasePath
	if dbPath == "" {
		dbPath = config.ExpandPath(config.DefaultDatabasePath)
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		closeStorage(store)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func closeStorage(store *storage.SQLiteStorage) {
	if err := store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

// screenDeps are the host-specific collaborators of a screen.
type screenDeps struct {
	confirmer action.Confirmer
	notifier  screen.Notifier
	recorder  action.Recorder
}

// buildScreen creates a screen wired to the configured backend.
func buildScreen(cfg *config.Config, name string, deps screenDeps) (*screen.Screen, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	def, err := catalog.Get(name)
	if err != nil {
		return nil, err
	}

	client := backend.NewClient(cfg.Session, backend.Options{
		Timeout:  cfg.Timeout,
		RetryMax: cfg.RetryMax,
	})

	return screen.New(def, screen.Deps{
		Backend:   client,
		Confirmer: deps.confirmer,
		Recorder:  deps.recorder,
		Notifier:  deps.notifier,
		Limiter:   rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.Burst),
		Session:   cfg.Session,
	}), nil
}

// listParams builds fetch params: today's range for dated screens, then the
// operator's key=value pairs.
func listParams(def screen.Definition, pairs []string, now time.Time) (map[string]any, error) {
	params := def.DefaultParams(now)
	extra, err := parsePairs(pairs, "param")
	if err != nil {
		return nil, err
	}
	for k, v := range extra {
		params[k] = v
	}
	return params, nil
}

// parsePairs parses repeated key=value flags.
func parsePairs(pairs []string, flag string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, common.ValidationError("--%s %q must be key=value", flag, pair)
		}
		out[k] = v
	}
	return out, nil
}

// listOptions are the local table controls of the list command.
type listOptions struct {
	filters  []string
	hide     []string
	sort     string
	pageSize int
}

// applyListOptions sets filters, sort, hidden columns and page size on scr.
// Unknown columns are rejected.
func applyListOptions(scr *screen.Screen, opts listOptions) error {
	def := scr.Definition()
	known := make(map[string]bool, len(def.Columns))
	for _, c := range def.Columns {
		known[c.Key] = true
	}
	checkColumn := func(key string) error {
		if !known[key] {
			return common.ValidationError("unknown column %q for %s", key, def.Name)
		}
		return nil
	}

	filters, err := parsePairs(opts.filters, "filter")
	if err != nil {
		return err
	}
	for key, text := range filters {
		if err := checkColumn(key); err != nil {
			return err
		}
		scr.SetFilter(key, fmt.Sprint(text))
	}

	if opts.sort != "" {
		spec := grid.ParseSortSpec(opts.sort)
		if spec == nil {
			return common.ValidationError("invalid sort %q", opts.sort)
		}
		if err := checkColumn(spec.Key); err != nil {
			return err
		}
		scr.SetSort(spec)
	}

	for _, key := range opts.hide {
		if err := checkColumn(key); err != nil {
			return err
		}
		scr.HideColumn(key)
	}

	if opts.pageSize > 0 {
		scr.SetPageSize(opts.pageSize)
	}
	return nil
}
