package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Veraticus/paydesk/internal/action"
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/google/uuid"
)

// DefaultListLimit caps ListActions when no limit is given.
const DefaultListLimit = 50

// ActionFilter narrows ListActions.
type ActionFilter struct {
	Screen string
	Limit  int
}

type actionRow struct {
	CreatedAt  time.Time `db:"created_at"`
	ID         string    `db:"id"`
	Screen     string    `db:"screen"`
	Action     string    `db:"action"`
	RecordKeys string    `db:"record_keys"`
	Params     string    `db:"params"`
	Message    string    `db:"message"`
	User       string    `db:"user_name"`
	OK         bool      `db:"ok"`
}

// RecordAction appends a dispatched request to the audit log.
func (s *SQLiteStorage) RecordAction(ctx context.Context, entry action.Entry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEntry(entry); err != nil {
		return err
	}

	keys := entry.RecordKeys
	if keys == nil {
		keys = []string{}
	}
	keysJSON, err := json.Marshal(keys)
	if err != nil {
		return fmt.Errorf("failed to encode record keys: %w", err)
	}
	params := entry.Params
	if params == nil {
		params = map[string]any{}
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}

	row := actionRow{
		ID:         uuid.NewString(),
		Screen:     entry.Screen,
		Action:     entry.Action,
		RecordKeys: string(keysJSON),
		Params:     string(paramsJSON),
		OK:         entry.OK,
		Message:    entry.Message,
		User:       entry.User,
		CreatedAt:  time.Now().UTC(),
	}

	_, err = s.db.NamedExecContext(ctx, `
		INSERT INTO action_log (id, screen, action, record_keys, params, ok, message, user_name, created_at)
		VALUES (:id, :screen, :action, :record_keys, :params, :ok, :message, :user_name, :created_at)`,
		row)
	if err != nil {
		return fmt.Errorf("failed to save action: %w", err)
	}
	return nil
}

// ListActions returns the most recent audit entries first.
func (s *SQLiteStorage) ListActions(ctx context.Context, filter ActionFilter) ([]model.AuditEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `SELECT id, screen, action, record_keys, params, ok, message, user_name, created_at
		FROM action_log`
	args := []any{}
	if filter.Screen != "" {
		query += ` WHERE screen = ?`
		args = append(args, filter.Screen)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	var rows []actionRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}

	entries := make([]model.AuditEntry, 0, len(rows))
	for _, r := range rows {
		entry := model.AuditEntry{
			ID:        r.ID,
			Screen:    r.Screen,
			Action:    r.Action,
			OK:        r.OK,
			Message:   r.Message,
			User:      r.User,
			CreatedAt: r.CreatedAt,
		}
		if err := json.Unmarshal([]byte(r.RecordKeys), &entry.RecordKeys); err != nil {
			return nil, fmt.Errorf("failed to decode record keys of %s: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(r.Params), &entry.Params); err != nil {
			return nil, fmt.Errorf("failed to decode params of %s: %w", r.ID, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// CountActions returns how many entries the log holds for screen, or for
// every screen when screen is empty.
func (s *SQLiteStorage) CountActions(ctx context.Context, screen string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var n int
	var err error
	if screen == "" {
		err = s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM action_log`)
	} else {
		err = s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM action_log WHERE screen = ?`, screen)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count actions: %w", err)
	}
	return n, nil
}

var _ action.Recorder = (*SQLiteStorage)(nil)
