package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewInterruptHandler(t *testing.T) {
	tests := []struct {
		writer io.Writer
		name   string
	}{
		{name: "with custom writer", writer: &bytes.Buffer{}},
		{name: "with nil writer", writer: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInterruptHandler(tt.writer)
			assert.NotNil(t, handler)
			assert.NotNil(t, handler.writer)
			assert.False(t, handler.WasInterrupted())
		})
	}
}

func TestHandleInterrupts_ParentCancel(t *testing.T) {
	handler := NewInterruptHandler(&bytes.Buffer{})

	parent, cancel := context.WithCancel(context.Background())
	ctx := handler.HandleInterrupts(parent, "")

	select {
	case <-ctx.Done():
		t.Fatal("context should not be canceled initially")
	default:
	}

	cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("derived context was not canceled")
	}
	assert.False(t, handler.WasInterrupted(), "a parent cancel is not an interrupt")
}

func TestInterruptShownOnce(t *testing.T) {
	var output bytes.Buffer
	handler := &InterruptHandler{writer: &output, hint: "Nothing was sent after the interrupt"}

	handler.interrupt()
	handler.interrupt()

	out := output.String()
	assert.True(t, handler.WasInterrupted())
	assert.Equal(t, 1, strings.Count(out, "Interrupted!"))
	assert.Contains(t, out, "Nothing was sent after the interrupt")
}

func TestShowInterruptMessage_NoHint(t *testing.T) {
	var output bytes.Buffer
	handler := &InterruptHandler{writer: &output}

	handler.showInterruptMessage()

	assert.Contains(t, output.String(), "Interrupted!")
	assert.NotContains(t, output.String(), "ℹ")
}
