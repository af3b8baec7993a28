package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Veraticus/paydesk/internal/screen"
	tea "github.com/charmbracelet/bubbletea"
)

// Run browses scr until the operator quits or ctx is cancelled. prompter must
// be the Confirmer and Notifier the screen was built with; it is attached to
// the program for the duration of the run.
func Run(ctx context.Context, scr *screen.Screen, prompter *Prompter, opts ...Option) error {
	if scr == nil {
		return errors.New("screen is required")
	}
	if prompter == nil {
		return errors.New("prompter is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Set up terminal cleanup on any exit
	cleanupTerminal := func() {
		// Ignore errors as this is best-effort cleanup
		_, _ = os.Stdout.Write([]byte("\033[?1049l")) // Exit alternate screen
		_, _ = os.Stdout.Write([]byte("\033[?25h"))   // Show cursor
		_, _ = os.Stdout.Write([]byte("\033[m"))      // Reset colors
	}
	defer cleanupTerminal()

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	}
	if cfg.MouseSupport {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	program := tea.NewProgram(newModel(ctx, scr, cfg), programOpts...)
	scr.SetProgress(prompter.Progress)
	prompter.Attach(program.Send)
	defer prompter.Close()

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
