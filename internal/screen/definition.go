// Package screen composes the grid engine, normalizer, and dispatcher into
// one business view backed by a list endpoint and its actions.
package screen

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/paydesk/internal/action"
	"github.com/Veraticus/paydesk/internal/backend"
	"github.com/Veraticus/paydesk/internal/common"
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/Veraticus/paydesk/internal/normalize"
)

// Date layouts accepted for date range params.
var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", "2006-01-02T15:04"}

// Definition is the static description of a screen.
type Definition struct {
	Name        string
	Title       string
	Description string
	List        backend.Endpoint
	Actions     []action.Action
	Columns     []model.ColumnSpec
	KeyFields   []string
	Normalize   normalize.Config
	// RequiredParams must be present on every list fetch.
	RequiredParams []string
	DateFromParam  string
	DateToParam    string
	// MaxDateSpanDays bounds the date range. 0 is unbounded.
	MaxDateSpanDays int
	SelectionLimit  int
	PageSize        int
}

// Action looks up an action by name.
func (d Definition) Action(name string) (action.Action, error) {
	for _, a := range d.Actions {
		if a.Name == name {
			return a, nil
		}
	}
	return action.Action{}, fmt.Errorf("%w: %s has no action %q", common.ErrUnknownAction, d.Name, name)
}

// KeyFunc returns the identity function of the screen's records.
func (d Definition) KeyFunc() model.KeyFunc {
	if len(d.KeyFields) == 0 {
		return model.KeyFields("id")
	}
	return model.KeyFields(d.KeyFields...)
}

// ReadOnly reports whether the screen has no actions.
func (d Definition) ReadOnly() bool {
	return len(d.Actions) == 0
}

// DefaultParams fills today's date range when the screen filters by date.
func (d Definition) DefaultParams(now time.Time) map[string]any {
	params := make(map[string]any)
	day := now.Format(dateLayouts[0])
	if d.DateFromParam != "" {
		params[d.DateFromParam] = day
	}
	if d.DateToParam != "" {
		params[d.DateToParam] = day
	}
	return params
}

// ValidateParams checks list params before a fetch.
func (d Definition) ValidateParams(params map[string]any) error {
	var missing []string
	for _, p := range d.RequiredParams {
		if strings.TrimSpace(model.Stringify(params[p])) == "" {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return common.ValidationError("%s is required", strings.Join(missing, ", "))
	}

	if d.DateFromParam == "" || d.DateToParam == "" {
		return nil
	}
	fromText := model.Stringify(params[d.DateFromParam])
	toText := model.Stringify(params[d.DateToParam])
	if fromText == "" || toText == "" {
		return nil
	}

	from, err := parseDate(fromText)
	if err != nil {
		return common.ValidationError("%s is not a valid date: %s", d.DateFromParam, fromText)
	}
	to, err := parseDate(toText)
	if err != nil {
		return common.ValidationError("%s is not a valid date: %s", d.DateToParam, toText)
	}
	if to.Before(from) {
		return common.ValidationError("%s must not be before %s", d.DateToParam, d.DateFromParam)
	}
	if d.MaxDateSpanDays > 0 && to.Sub(from) > time.Duration(d.MaxDateSpanDays)*24*time.Hour {
		return common.ValidationError("date range may not exceed %d days", d.MaxDateSpanDays)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, strings.TrimSpace(s))
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
