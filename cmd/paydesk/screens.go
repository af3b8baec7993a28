package main

import (
	"github.com/Veraticus/paydesk/internal/cli"
	"github.com/Veraticus/paydesk/internal/screen"
	"github.com/spf13/cobra"
)

func screensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "screens",
		Short: "List the available screens",
		Long: `Display every screen with its actions. Screen names are what the list,
action, browse and watch commands take.`,
		Args: cobra.NoArgs,
		RunE: runScreens,
	}
}

func runScreens(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	defs := make([]screen.Definition, 0, len(catalog.Names()))
	for _, name := range catalog.Names() {
		def, err := catalog.Get(name)
		if err != nil {
			return err
		}
		defs = append(defs, def)
	}
	return cli.RenderScreens(cmd.OutOrStdout(), defs)
}
