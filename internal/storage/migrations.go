package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// SchemaVersion is the user_version of a fully migrated audit log.
const SchemaVersion = 2

// Migration is one forward-only schema step.
type Migration struct {
	Description string
	Statements  []string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Action log",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS action_log (
				id TEXT PRIMARY KEY,
				screen TEXT NOT NULL,
				action TEXT NOT NULL,
				record_keys TEXT NOT NULL DEFAULT '[]',
				params TEXT NOT NULL DEFAULT '{}',
				ok BOOLEAN NOT NULL DEFAULT 0,
				message TEXT NOT NULL DEFAULT '',
				created_at DATETIME NOT NULL
			)`,
			`CREATE INDEX idx_action_log_created ON action_log(created_at)`,
			`CREATE INDEX idx_action_log_screen ON action_log(screen, created_at)`,
		},
	},
	{
		Version:     2,
		Description: "Record operator on action log",
		Statements: []string{
			`ALTER TABLE action_log ADD COLUMN user_name TEXT NOT NULL DEFAULT ''`,
			`CREATE INDEX idx_action_log_user ON action_log(user_name)`,
		},
	},
}

func (s *SQLiteStorage) apply(ctx context.Context, m Migration) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range m.Statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("statement %d: %w", i+1, err)
		}
	}
	// PRAGMA does not take bind parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
		return fmt.Errorf("failed to update schema version: %w", err)
	}
	return tx.Commit()
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	if err := s.db.GetContext(ctx, &currentVersion, "PRAGMA user_version"); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= currentVersion {
			continue
		}
		if err := s.apply(ctx, m); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, err)
		}
		slog.Info("Applied migration", "version", m.Version, "description", m.Description)
	}

	var finalVersion int
	if err := s.db.GetContext(ctx, &finalVersion, "PRAGMA user_version"); err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if finalVersion != SchemaVersion {
		return fmt.Errorf("audit log schema version mismatch: expected %d, got %d", SchemaVersion, finalVersion)
	}

	return nil
}
