package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/paydesk/internal/action"
	"github.com/Veraticus/paydesk/internal/cli"
	"github.com/Veraticus/paydesk/internal/common"
	"github.com/spf13/cobra"
)

type actionFlags struct {
	params []string
	args   []string
	reason string
	yes    bool
}

func actionCmd() *cobra.Command {
	var flags actionFlags

	cmd := &cobra.Command{
		Use:   "action <screen> <action> <key>...",
		Short: "Run an action on records of a screen",
		Long: `Load a screen, then run one of its actions on the records with the given
keys. Destructive actions ask for confirmation unless --yes is given.

Every request sent is written to the audit log.`,
		Example: `  paydesk action withdrawals approve TX100 TX101
  paydesk action deposits fail TX200 --reason "duplicate transfer" --yes
  paydesk action sms-log match 8841 --arg transactionid=TX300`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, args[0], args[1], args[2:], flags)
		},
	}

	cmd.Flags().StringArrayVar(&flags.params, "param", nil, "backend list parameter key=value used to load the screen (repeatable)")
	cmd.Flags().StringArrayVar(&flags.args, "arg", nil, "action parameter key=value (repeatable)")
	cmd.Flags().StringVar(&flags.reason, "reason", "", "reason recorded with the action")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func runAction(cmd *cobra.Command, screenName, actionName string, keys []string, flags actionFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	out := cmd.OutOrStdout()
	prompter := cli.NewPrompter(cmd.InOrStdin(), out)
	var confirmer action.Confirmer = prompter
	if flags.yes {
		confirmer = action.AutoConfirm(flags.reason)
	}

	scr, err := buildScreen(cfg, screenName, screenDeps{
		confirmer: confirmer,
		notifier:  cli.NewNotifier(out),
		recorder:  store,
	})
	if err != nil {
		return err
	}
	scr.SetProgress(prompter.Progress)

	act, err := scr.Definition().Action(actionName)
	if err != nil {
		return err
	}
	params, err := listParams(scr.Definition(), flags.params, time.Now())
	if err != nil {
		return err
	}
	args, err := parsePairs(flags.args, "arg")
	if err != nil {
		return err
	}
	if flags.reason != "" && act.ReasonParam != "" {
		args[act.ReasonParam] = flags.reason
	}

	handler := cli.NewInterruptHandler(out)
	ctx := handler.HandleInterrupts(cmd.Context(), "No further records will be sent.")

	if err := scr.Fetch(ctx, params); err != nil {
		return reportedError{err}
	}

	outcome, err := scr.Perform(ctx, actionName, keys, args)
	if err != nil {
		return reportedError{err}
	}
	if handler.WasInterrupted() {
		return reportedError{context.Canceled}
	}
	if !outcome.OK && !outcome.Cancelled {
		return reportedError{fmt.Errorf("%w: %s", common.ErrApplication, outcome.Message)}
	}
	return nil
}
