package tui

import (
	"github.com/Veraticus/paydesk/internal/action"
	"github.com/Veraticus/paydesk/internal/model"
)

// Screen operation results.
type fetchedMsg struct {
	err error
}

type actionDoneMsg struct {
	err     error
	outcome model.Outcome
}

// Requests from the dispatcher goroutine.
type confirmRequestMsg struct {
	reply   chan<- model.ConfirmResult
	request action.ConfirmRequest
}

type noticeMsg struct {
	notice model.Notice
}
