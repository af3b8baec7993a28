// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Request errors.
	ErrValidation  = errors.New("validation failed")
	ErrTransport   = errors.New("backend unreachable")
	ErrApplication = errors.New("backend rejected request")

	// Lookup errors.
	ErrNotFound      = errors.New("not found")
	ErrUnknownScreen = errors.New("unknown screen")
	ErrUnknownAction = errors.New("unknown action")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// ValidationError builds a user-facing validation failure.
func ValidationError(format string, args ...any) error {
	return NewUserError(fmt.Sprintf(format, args...), ErrValidation)
}

// UserMessage extracts the text meant for the operator, falling back to the
// error string.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}
