package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/paydesk/internal/tui"
	"github.com/Veraticus/paydesk/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func browseCmd() *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "browse <screen>",
		Short: "Browse a screen interactively",
		Long: `Open a screen in the terminal UI. Filter, sort and page through records,
select them and run actions. Press ? for the key bindings.`,
		Example: `  paydesk browse withdrawals
  paydesk browse deposits --param datefrom=2024-05-01 --theme catppuccin-mocha`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, args[0], params)
		},
	}

	cmd.Flags().StringArrayVar(&params, "param", nil, "backend list parameter key=value (repeatable)")
	cmd.Flags().String("theme", themes.Default.Name, "color theme ("+strings.Join(themes.Names(), ", ")+")")
	cmd.Flags().Bool("mouse", false, "enable mouse support")
	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("tui.mouse", cmd.Flags().Lookup("mouse"))

	return cmd
}

func runBrowse(cmd *cobra.Command, name string, pairs []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	extra, err := parsePairs(pairs, "param")
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	prompter := tui.NewPrompter()
	scr, err := buildScreen(cfg, name, screenDeps{
		confirmer: prompter,
		notifier:  prompter,
		recorder:  store,
	})
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal.
	if cfg.Logging.File == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	}

	return tui.Run(ctx, scr, prompter,
		tui.WithParams(extra),
		tui.WithTheme(themes.GetTheme(viper.GetString("tui.theme"))),
		tui.WithMouse(viper.GetBool("tui.mouse")),
	)
}
