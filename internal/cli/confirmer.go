package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/paydesk/internal/action"
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/schollz/progressbar/v3"
)

// Prompter asks the operator to confirm actions on the terminal and shows
// progress of multi-record actions.
type Prompter struct {
	writer io.Writer
	reader *LineReader
	bar    *progressbar.ProgressBar
}

// NewPrompter creates a prompter reading from reader and writing to writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: NewLineReader(reader),
		writer: writer,
	}
}

// Confirm implements action.Confirmer with a y/N prompt, followed by a value
// prompt when the action collects one.
func (p *Prompter) Confirm(ctx context.Context, req action.ConfirmRequest) (model.ConfirmResult, error) {
	if _, err := fmt.Fprintf(p.writer, "%s [y/N]: ", FormatWarning(req.Prompt)); err != nil {
		return model.ConfirmResult{}, fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := p.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return model.Cancelled(), nil
		}
		return model.ConfirmResult{}, err
	}
	answer = strings.ToLower(answer)
	if answer != "y" && answer != "yes" {
		return model.Cancelled(), nil
	}

	if req.ValueLabel == "" {
		return model.Confirmed(""), nil
	}

	if _, err := fmt.Fprint(p.writer, FormatPrompt(req.ValueLabel)); err != nil {
		return model.ConfirmResult{}, fmt.Errorf("failed to write prompt: %w", err)
	}
	value, err := p.reader.ReadLine(ctx)
	if err != nil && !errors.Is(err, io.EOF) {
		return model.ConfirmResult{}, err
	}
	return model.Confirmed(value), nil
}

// Progress is an action progress callback drawing a progress bar. Single
// requests draw nothing.
func (p *Prompter) Progress(done, total int) {
	if total <= 1 {
		return
	}
	if p.bar == nil || done == 1 {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.writer),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan][bold]Updating records...[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				if _, err := fmt.Fprintln(p.writer); err != nil {
					slog.Warn("Failed to write newline after progress bar", "error", err)
				}
			}),
		)
	}
	if err := p.bar.Set(done); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Notifier prints screen notices.
type Notifier struct {
	writer io.Writer
}

// NewNotifier creates a notifier writing to writer.
func NewNotifier(writer io.Writer) *Notifier {
	if writer == nil {
		writer = os.Stdout
	}
	return &Notifier{writer: writer}
}

// Notify implements screen.Notifier.
func (n *Notifier) Notify(notice model.Notice) {
	if _, err := fmt.Fprintln(n.writer, FormatNotice(notice)); err != nil {
		slog.Warn("Failed to write notice", "error", err)
	}
}

var _ action.Confirmer = (*Prompter)(nil)
