package model

// Outcome is the result of a mutating action as seen by the operator.
type Outcome struct {
	Message string
	OK      bool
	// Cancelled is set when the operator declined a confirmation prompt and
	// no request was sent.
	Cancelled bool
}

// ConfirmKind tags a ConfirmResult.
type ConfirmKind string

// Confirmation result kinds.
const (
	ConfirmConfirmed ConfirmKind = "confirmed"
	ConfirmCancelled ConfirmKind = "cancelled"
)

// ConfirmResult is the answer to a confirmation prompt. Value carries any text
// the operator entered alongside the confirmation (a reason, an amount).
type ConfirmResult struct {
	Kind  ConfirmKind
	Value string
}

// Confirmed builds a confirmed result.
func Confirmed(value string) ConfirmResult {
	return ConfirmResult{Kind: ConfirmConfirmed, Value: value}
}

// Cancelled builds a cancelled result.
func Cancelled() ConfirmResult {
	return ConfirmResult{Kind: ConfirmCancelled}
}

// IsConfirmed reports whether the operator confirmed.
func (c ConfirmResult) IsConfirmed() bool {
	return c.Kind == ConfirmConfirmed
}

// NoticeLevel classifies user-visible feedback.
type NoticeLevel string

// Notice levels.
const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a message surfaced to the operator.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// Session carries the explicit configuration injected at bootstrap.
type Session struct {
	BaseURL     string
	CurrentUser string
}
