package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when the context ends before the operator answers.
var ErrInputCancelled = errors.New("input canceled")

// LineReader reads operator answers line by line. A single goroutine owns the
// underlying reader, so an answer typed after a cancelled prompt is delivered
// to the next prompt instead of being lost.
type LineReader struct {
	src   io.Reader
	err   error
	lines chan string
	start sync.Once
}

// NewLineReader creates a reader over src. Nothing is read until the first
// ReadLine.
func NewLineReader(src io.Reader) *LineReader {
	return &LineReader{src: src, lines: make(chan string)}
}

func (r *LineReader) pump() {
	scanner := bufio.NewScanner(r.src)
	for scanner.Scan() {
		r.lines <- scanner.Text()
	}
	r.err = scanner.Err()
	if r.err == nil {
		r.err = io.EOF
	}
	close(r.lines)
}

// ReadLine returns the next line with surrounding space trimmed. It returns
// io.EOF once the input is exhausted and ErrInputCancelled when ctx ends first.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}
	r.start.Do(func() { go r.pump() })

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case text, ok := <-r.lines:
		if !ok {
			return "", r.err
		}
		return strings.TrimSpace(text), nil
	}
}
