package main

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/paydesk/internal/cli"
	"github.com/Veraticus/paydesk/internal/common"
	"github.com/Veraticus/paydesk/internal/grid"
	"github.com/Veraticus/paydesk/internal/scheduler"
	"github.com/Veraticus/paydesk/internal/screen"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func watchCmd() *cobra.Command {
	var (
		params   []string
		schedule string
	)

	cmd := &cobra.Command{
		Use:   "watch <screen>",
		Short: "Refresh a screen on a schedule",
		Long: `Reload a screen on a cron schedule and print a one-line summary after every
refresh. Dated screens follow the current day, so a watch left running past
midnight moves on to the new day.`,
		Example: `  paydesk watch withdrawals
  paydesk watch deposit-queue --schedule "*/5 * * * *"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], schedule, params)
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "@every 30s", "cron expression or descriptor")
	cmd.Flags().StringArrayVar(&params, "param", nil, "backend list parameter key=value (repeatable)")

	return cmd
}

func runWatch(cmd *cobra.Command, name, schedule string, pairs []string) error {
	if err := scheduler.ValidateSchedule(schedule); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	extra, err := parsePairs(pairs, "param")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	scr, err := buildScreen(cfg, name, screenDeps{})
	if err != nil {
		return err
	}
	target := &watchTarget{screen: scr, extra: extra, now: time.Now}

	watcher, err := scheduler.NewWatcher(target, schedule, func(t scheduler.Tick) {
		if _, err := fmt.Fprintln(out, formatTick(t)); err != nil {
			slog.Warn("Failed to write watch line", "error", err)
		}
	})
	if err != nil {
		return err
	}

	handler := cli.NewInterruptHandler(out)
	ctx := handler.HandleInterrupts(cmd.Context(), "")
	return watcher.Run(ctx)
}

// watchTarget fetches with today's params on every refresh.
type watchTarget struct {
	screen *screen.Screen
	extra  map[string]any
	now    func() time.Time
}

func (w *watchTarget) Refresh(ctx context.Context) error {
	params := w.screen.Definition().DefaultParams(w.now())
	for k, v := range w.extra {
		params[k] = v
	}
	return w.screen.Fetch(ctx, params)
}

func (w *watchTarget) View() screen.View {
	return w.screen.View()
}

var printer = message.NewPrinter(language.English)

// formatTick renders one refresh as a single line.
func formatTick(t scheduler.Tick) string {
	stamp := t.At.Format("15:04:05")
	if t.Err != nil {
		return fmt.Sprintf("%s %s", stamp, cli.FormatError(common.UserMessage(t.Err)))
	}

	line := printer.Sprintf("%s %s: %d records", stamp, t.View.Title, t.View.TotalCount)
	if totals := formatTotals(t.View); totals != "" {
		line += " · " + totals
	}
	return line
}

func formatTotals(v screen.View) string {
	if len(v.Totals) == 0 {
		return ""
	}
	labels := make(map[string]string, len(v.Columns))
	for _, c := range v.Columns {
		labels[c.Key] = c.Label
	}
	keys := make([]string, 0, len(v.Totals))
	for k := range v.Totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		label := labels[k]
		if label == "" {
			label = k
		}
		parts = append(parts, fmt.Sprintf("%s %s", label, grid.FormatAmount(v.Totals[k])))
	}
	return strings.Join(parts, ", ")
}
