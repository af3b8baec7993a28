package model

import "time"

// AuditEntry is one dispatched action request as kept in the local audit log.
type AuditEntry struct {
	CreatedAt  time.Time
	Params     map[string]any
	ID         string
	Screen     string
	Action     string
	User       string
	Message    string
	RecordKeys []string
	OK         bool
}
