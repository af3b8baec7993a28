// Package action dispatches operator mutations to the backend.
package action

import (
	"context"

	"github.com/Veraticus/paydesk/internal/backend"
	"github.com/Veraticus/paydesk/internal/model"
)

// DefaultBulkField holds the record list of a bulk request.
const DefaultBulkField = "records"

// Action describes one mutation a screen offers.
type Action struct {
	Name  string
	Label string
	// Endpoint receives the request.
	Endpoint backend.Endpoint
	// RecordFields are copied from each record into the request.
	RecordFields []string
	// RequiredParams must be non-empty before anything is sent.
	RequiredParams []string
	// ReasonParam, when set, is filled from the value entered at confirmation.
	ReasonParam string
	// BulkField names the record list of a bulk request.
	BulkField string
	// Destructive actions are confirmed first.
	Destructive bool
	// Bulk actions send one request for the whole selection.
	Bulk bool
}

// Title returns the label, falling back to the name.
func (a Action) Title() string {
	if a.Label != "" {
		return a.Label
	}
	return a.Name
}

// Performer sends a mutation.
type Performer interface {
	PerformAction(ctx context.Context, ep backend.Endpoint, params map[string]any) (backend.Envelope, error)
}

// ConfirmRequest is what the operator is asked before a destructive action.
type ConfirmRequest struct {
	Action Action
	Prompt string
	// ValueLabel is set when a value is collected with the confirmation.
	ValueLabel string
	Count      int
}

// Confirmer asks the operator to confirm.
type Confirmer interface {
	Confirm(ctx context.Context, req ConfirmRequest) (model.ConfirmResult, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, req ConfirmRequest) (model.ConfirmResult, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, req ConfirmRequest) (model.ConfirmResult, error) {
	return f(ctx, req)
}

// AutoConfirm confirms everything with value.
func AutoConfirm(value string) Confirmer {
	return ConfirmFunc(func(context.Context, ConfirmRequest) (model.ConfirmResult, error) {
		return model.Confirmed(value), nil
	})
}

// Entry is one dispatched request as kept in the audit log.
type Entry struct {
	Params     map[string]any
	Screen     string
	Action     string
	User       string
	Message    string
	RecordKeys []string
	OK         bool
}

// Recorder keeps an audit trail of dispatched requests.
type Recorder interface {
	RecordAction(ctx context.Context, entry Entry) error
}
