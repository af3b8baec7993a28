package action

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/paydesk/internal/common"
	"github.com/Veraticus/paydesk/internal/model"
	"golang.org/x/time/rate"
)

// Config wires a Dispatcher for one screen.
type Config struct {
	Performer Performer
	Confirmer Confirmer
	Recorder  Recorder
	// Limiter paces per-record requests. Nil sends without delay.
	Limiter *rate.Limiter
	Key     model.KeyFunc
	// Progress is called after every request with the number done so far.
	Progress func(done, total int)
	Screen   string
	Session  model.Session
}

// Dispatcher turns an action over records into backend requests and one
// Outcome.
type Dispatcher struct {
	cfg Config
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(cfg Config) *Dispatcher {
	if cfg.Limiter == nil {
		cfg.Limiter = rate.NewLimiter(rate.Inf, 1)
	}
	if cfg.Key == nil {
		cfg.Key = model.KeyFields("id")
	}
	return &Dispatcher{cfg: cfg}
}

// SetProgress replaces the progress callback.
func (d *Dispatcher) SetProgress(fn func(done, total int)) {
	d.cfg.Progress = fn
}

// Perform runs act over records. Validation problems are returned as errors
// and nothing is sent. Backend and transport failures are reported in the
// Outcome; the error is nil once a request has been attempted.
func (d *Dispatcher) Perform(ctx context.Context, act Action, records []model.Record, params map[string]any) (model.Outcome, error) {
	if len(records) == 0 {
		return model.Outcome{}, common.ValidationError("select at least one record to %s", strings.ToLower(act.Title()))
	}
	if d.cfg.Performer == nil {
		return model.Outcome{}, fmt.Errorf("no performer configured for %s", act.Name)
	}

	req := make(map[string]any, len(params)+len(act.RecordFields)+1)
	for k, v := range params {
		req[k] = v
	}

	if err := validateParams(act, req, act.ReasonParam); err != nil {
		return model.Outcome{}, err
	}

	if act.Destructive {
		result, err := d.confirm(ctx, act, len(records))
		if err != nil {
			return model.Outcome{}, err
		}
		if !result.IsConfirmed() {
			return model.Outcome{Cancelled: true, Message: act.Title() + " cancelled"}, nil
		}
		if act.ReasonParam != "" && result.Value != "" {
			req[act.ReasonParam] = result.Value
		}
	}

	if err := validateParams(act, req, ""); err != nil {
		return model.Outcome{}, err
	}

	if act.Bulk || len(records) == 1 {
		return d.performOnce(ctx, act, records, req), nil
	}
	return d.performEach(ctx, act, records, req), nil
}

func (d *Dispatcher) confirm(ctx context.Context, act Action, count int) (model.ConfirmResult, error) {
	if d.cfg.Confirmer == nil {
		return model.Cancelled(), nil
	}
	req := ConfirmRequest{
		Action: act,
		Count:  count,
		Prompt: fmt.Sprintf("%s %d record(s)?", act.Title(), count),
	}
	if act.ReasonParam != "" {
		req.ValueLabel = act.ReasonParam
	}
	result, err := d.cfg.Confirmer.Confirm(ctx, req)
	if err != nil {
		return model.ConfirmResult{}, fmt.Errorf("confirmation failed: %w", err)
	}
	return result, nil
}

// validateParams checks required params, ignoring skip.
func validateParams(act Action, params map[string]any, skip string) error {
	var missing []string
	for _, p := range act.RequiredParams {
		if p == skip {
			continue
		}
		if strings.TrimSpace(model.Stringify(params[p])) == "" {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return common.ValidationError("%s requires %s", act.Title(), strings.Join(missing, ", "))
	}
	return nil
}

func (d *Dispatcher) performOnce(ctx context.Context, act Action, records []model.Record, params map[string]any) model.Outcome {
	if act.Bulk {
		field := act.BulkField
		if field == "" {
			field = DefaultBulkField
		}
		rows := make([]map[string]any, 0, len(records))
		for _, r := range records {
			rows = append(rows, d.recordParams(act, r))
		}
		params[field] = rows
	} else {
		for k, v := range d.recordParams(act, records[0]) {
			params[k] = v
		}
	}

	outcome, _ := d.send(ctx, act, records, params)
	d.progress(1, 1)
	return outcome
}

func (d *Dispatcher) performEach(ctx context.Context, act Action, records []model.Record, base map[string]any) model.Outcome {
	total := len(records)
	succeeded := 0
	var firstFailure string

	for i, r := range records {
		if err := d.cfg.Limiter.Wait(ctx); err != nil {
			common.LogError(err, "Action interrupted", common.Fields{"action": act.Name, "done": i, "total": total})
			firstFailure = unableMessage(act)
			break
		}

		params := make(map[string]any, len(base)+len(act.RecordFields))
		for k, v := range base {
			params[k] = v
		}
		for k, v := range d.recordParams(act, r) {
			params[k] = v
		}

		outcome, transportErr := d.send(ctx, act, []model.Record{r}, params)
		d.progress(i+1, total)
		if outcome.OK {
			succeeded++
			continue
		}
		if firstFailure == "" {
			firstFailure = outcome.Message
		}
		if transportErr {
			break
		}
	}

	switch {
	case succeeded == total:
		return model.Outcome{OK: true, Message: fmt.Sprintf("%s: %d records updated", act.Title(), total)}
	case succeeded > 0:
		return model.Outcome{OK: true, Message: fmt.Sprintf("%s: %d of %d records updated; %s", act.Title(), succeeded, total, firstFailure)}
	default:
		return model.Outcome{Message: firstFailure}
	}
}

// send performs one request and reports whether it failed at the transport
// level.
func (d *Dispatcher) send(ctx context.Context, act Action, records []model.Record, params map[string]any) (model.Outcome, bool) {
	env, err := d.cfg.Performer.PerformAction(ctx, act.Endpoint, params)
	if err != nil {
		common.LogError(err, "Action request failed", common.Fields{
			"screen":   d.cfg.Screen,
			"action":   act.Name,
			"endpoint": act.Endpoint.Path,
			"records":  len(records),
		})
		outcome := model.Outcome{Message: unableMessage(act)}
		d.record(ctx, act, records, params, outcome)
		return outcome, true
	}

	outcome := model.Outcome{OK: env.OK(), Message: env.Message}
	if outcome.Message == "" {
		outcome.Message = fallbackMessage(act, outcome.OK)
	}
	slog.Info("Action dispatched",
		"screen", d.cfg.Screen,
		"action", act.Name,
		"records", len(records),
		"ok", outcome.OK)
	d.record(ctx, act, records, params, outcome)
	return outcome, false
}

func (d *Dispatcher) record(ctx context.Context, act Action, records []model.Record, params map[string]any, outcome model.Outcome) {
	if d.cfg.Recorder == nil {
		return
	}
	keys := make([]string, 0, len(records))
	for _, r := range records {
		keys = append(keys, d.cfg.Key(r))
	}
	entry := Entry{
		Screen:     d.cfg.Screen,
		Action:     act.Name,
		User:       d.cfg.Session.CurrentUser,
		RecordKeys: keys,
		Params:     params,
		OK:         outcome.OK,
		Message:    outcome.Message,
	}
	if err := d.cfg.Recorder.RecordAction(context.WithoutCancel(ctx), entry); err != nil {
		common.LogError(err, "Failed to record action", common.Fields{"action": act.Name})
	}
}

func (d *Dispatcher) recordParams(act Action, r model.Record) map[string]any {
	out := make(map[string]any, len(act.RecordFields))
	if len(act.RecordFields) == 0 {
		out["key"] = d.cfg.Key(r)
		return out
	}
	for _, f := range act.RecordFields {
		out[f] = r.Get(f)
	}
	return out
}

func (d *Dispatcher) progress(done, total int) {
	if d.cfg.Progress != nil {
		d.cfg.Progress(done, total)
	}
}

func unableMessage(act Action) string {
	return fmt.Sprintf("Unable to update %s, please try again", strings.ToLower(act.Title()))
}

func fallbackMessage(act Action, ok bool) string {
	if ok {
		return act.Title() + " succeeded"
	}
	return act.Title() + " failed"
}

// IsValidation reports whether err stopped an action before sending.
func IsValidation(err error) bool {
	return errors.Is(err, common.ErrValidation)
}
