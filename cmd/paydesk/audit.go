package main

import (
	"fmt"

	"github.com/Veraticus/paydesk/internal/cli"
	"github.com/Veraticus/paydesk/internal/storage"
	"github.com/spf13/cobra"
)

func auditCmd() *cobra.Command {
	var filter storage.ActionFilter

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent actions from the audit log",
		Long: `Display the most recent requests sent by this workstation, newest first,
with who sent them and how the backend answered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAudit(cmd, filter)
		},
	}

	cmd.Flags().StringVar(&filter.Screen, "screen", "", "only show actions of this screen")
	cmd.Flags().IntVar(&filter.Limit, "limit", storage.DefaultListLimit, "maximum entries to show")

	return cmd
}

func runAudit(cmd *cobra.Command, filter storage.ActionFilter) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	entries, err := store.ListActions(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list actions: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, cli.FormatInfo("No actions recorded yet."))
		return err
	}

	total, err := store.CountActions(ctx, filter.Screen)
	if err != nil {
		return fmt.Errorf("failed to count actions: %w", err)
	}
	if err := cli.RenderAudit(out, entries); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "\n%s\n", cli.FormatInfo(fmt.Sprintf("Showing %d of %d actions", len(entries), total)))
	return err
}
