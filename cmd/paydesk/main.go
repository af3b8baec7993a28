package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Veraticus/paydesk/internal/common"
	"github.com/Veraticus/paydesk/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = newRootCmd()
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "paydesk",
		Short: "💳 Payment operations back office",
		Long: `paydesk: browse deposits, withdrawals, the deposit queue, SMS matches and
account mutations, and act on them against the payment platform backend.

Every action you take is written to a local audit log.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}

	// Global flags
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/paydesk/config.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "console", "log format (console, json)")
	root.PersistentFlags().String("log-file", "", "write logs to a rotating file instead of stderr")
	root.PersistentFlags().String("base-url", "", "backend base URL")
	root.PersistentFlags().String("user", "", "operator name sent with every request")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", root.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("logging.file", root.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("backend.base_url", root.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("session.user", root.PersistentFlags().Lookup("user"))

	// Add commands
	root.AddCommand(screensCmd())
	root.AddCommand(listCmd())
	root.AddCommand(actionCmd())
	root.AddCommand(browseCmd())
	root.AddCommand(watchCmd())
	root.AddCommand(auditCmd())
	root.AddCommand(versionCmd())

	return root
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, common.UserMessage(err))
		}
		if errors.Is(err, common.ErrValidation) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	config.SetDefaults(viper.GetViper())

	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(config.ExpandPath(cfgFile))
	} else {
		viper.AddConfigPath(config.ExpandPath("~/.config/paydesk"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("PAYDESK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Set up logging
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	if err := common.SetupLogger(cfg.Logging); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "paydesk version %s\n", version)
		},
	}
}
