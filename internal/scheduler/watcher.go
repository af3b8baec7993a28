// Package scheduler refreshes screens on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/paydesk/internal/common"
	"github.com/Veraticus/paydesk/internal/screen"
	"github.com/robfig/cron/v3"
)

var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Target is what the watcher refreshes.
type Target interface {
	Refresh(ctx context.Context) error
	View() screen.View
}

// Tick is the result of one scheduled refresh.
type Tick struct {
	At   time.Time
	Err  error
	View screen.View
	Run  int
}

// Watcher refreshes a target every time its schedule fires. Overlapping runs
// are skipped.
type Watcher struct {
	target   Target
	onTick   func(Tick)
	cron     *cron.Cron
	schedule string
	runs     int
	mu       sync.Mutex
}

// ValidateSchedule checks a cron expression or descriptor such as "@every 30s".
func ValidateSchedule(schedule string) error {
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("%w: schedule %q: %v", common.ErrInvalidConfig, schedule, err)
	}
	return nil
}

// NewWatcher creates a watcher. onTick is called after every refresh.
func NewWatcher(target Target, schedule string, onTick func(Tick)) (*Watcher, error) {
	if err := ValidateSchedule(schedule); err != nil {
		return nil, err
	}
	logger := cronLogger{}
	w := &Watcher{
		target:   target,
		onTick:   onTick,
		schedule: schedule,
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
	return w, nil
}

// Run refreshes once, then on schedule until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if _, err := w.cron.AddFunc(w.schedule, func() { w.tick(ctx) }); err != nil {
		return fmt.Errorf("%w: schedule %q: %v", common.ErrInvalidConfig, w.schedule, err)
	}

	w.tick(ctx)
	w.cron.Start()
	slog.Info("Watching screen", "schedule", w.schedule)

	<-ctx.Done()
	stopped := w.cron.Stop()
	<-stopped.Done()
	return nil
}

// Runs returns how many refreshes have completed.
func (w *Watcher) Runs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runs
}

// Next returns when the schedule fires next, or the zero time before Run.
func (w *Watcher) Next() time.Time {
	entries := w.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (w *Watcher) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	err := w.target.Refresh(ctx)

	w.mu.Lock()
	w.runs++
	run := w.runs
	w.mu.Unlock()

	if err != nil {
		slog.Debug("Scheduled refresh failed", "run", run, "error", err)
	}
	if w.onTick != nil {
		w.onTick(Tick{At: time.Now(), Run: run, Err: err, View: w.target.View()})
	}
}

// cronLogger routes cron's own logging to slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	common.LogError(err, "cron: "+msg, fieldsOf(keysAndValues))
}

func fieldsOf(keysAndValues []any) common.Fields {
	fields := make(common.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
