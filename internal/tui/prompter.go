package tui

import (
	"context"
	"sync"

	"github.com/Veraticus/paydesk/internal/action"
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/Veraticus/paydesk/internal/screen"
	"github.com/Veraticus/paydesk/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
)

const queueSize = 64

// Prompter routes confirmations, notices and progress from screen goroutines
// into the running program. It is created before the screen so it can be
// injected as a dependency, and attached once the program exists.
type Prompter struct {
	queue chan tea.Msg
	done  chan struct{}
	once  sync.Once
	mu    sync.Mutex
	ready bool
}

// Ensure we implement the interfaces.
var (
	_ action.Confirmer = (*Prompter)(nil)
	_ screen.Notifier  = (*Prompter)(nil)
)

// NewPrompter creates a detached prompter. Until Attach is called
// confirmations are cancelled and notices are dropped.
func NewPrompter() *Prompter {
	return &Prompter{
		queue: make(chan tea.Msg, queueSize),
		done:  make(chan struct{}),
	}
}

// Attach starts delivering messages to send in order. Delivery happens on its
// own goroutine, so posting from inside Update never blocks the program.
func (p *Prompter) Attach(send func(tea.Msg)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		return
	}
	p.ready = true

	go func() {
		for {
			select {
			case msg := <-p.queue:
				send(msg)
			case <-p.done:
				return
			}
		}
	}()
}

// Close stops delivery.
func (p *Prompter) Close() {
	p.once.Do(func() {
		close(p.done)
	})
}

func (p *Prompter) post(msg tea.Msg) bool {
	p.mu.Lock()
	ready := p.ready
	p.mu.Unlock()
	if !ready {
		return false
	}

	select {
	case p.queue <- msg:
		return true
	case <-p.done:
		return false
	}
}

// Confirm implements action.Confirmer by opening a modal and waiting for the
// operator's answer.
func (p *Prompter) Confirm(ctx context.Context, req action.ConfirmRequest) (model.ConfirmResult, error) {
	reply := make(chan model.ConfirmResult, 1)
	if !p.post(confirmRequestMsg{request: req, reply: reply}) {
		return model.Cancelled(), nil
	}

	select {
	case result := <-reply:
		return result, nil
	case <-p.done:
		return model.Cancelled(), nil
	case <-ctx.Done():
		return model.ConfirmResult{}, ctx.Err()
	}
}

// Notify implements screen.Notifier.
func (p *Prompter) Notify(n model.Notice) {
	p.post(noticeMsg{notice: n})
}

// Progress reports multi-record action progress.
func (p *Prompter) Progress(done, total int) {
	p.post(components.ProgressMsg{Done: done, Total: total})
}
