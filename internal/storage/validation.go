package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/paydesk/internal/action"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrInvalidEntry = errors.New("invalid action entry")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateEntry(entry action.Entry) error {
	if strings.TrimSpace(entry.Screen) == "" {
		return fmt.Errorf("%w: screen is required", ErrInvalidEntry)
	}
	if strings.TrimSpace(entry.Action) == "" {
		return fmt.Errorf("%w: action is required", ErrInvalidEntry)
	}
	return nil
}
