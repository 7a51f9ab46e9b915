// Package cli is the sakura command line: the HTTP server plus register
// and login commands that run the same flows against the configured store.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/haguru/sakura/config"
	"github.com/haguru/sakura/internal/app"
	"github.com/haguru/sakura/pkg/zerolog"
	"github.com/spf13/cobra"
)

// errReported marks a failure whose message was already printed.
var errReported = errors.New("reported")

const (
	flagConfig   = "config"
	flagLogLevel = "log-level"

	// oneShotLogLevel keeps register and login output down to the alert
	// unless --log-level says otherwise.
	oneShotLogLevel = "warn"
)

// NewRootCommand builds the sakura command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sakura",
		Short:         "Login and registration forms backed by a JSON user record store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String(flagConfig, config.CONFIG_PATH, "path to the YAML config file")
	rootCmd.PersistentFlags().String(flagLogLevel, "", "override the config log level")

	rootCmd.AddCommand(newServeCommand(), newRegisterCommand(), newLoginCommand())
	return rootCmd
}

// Execute runs the root command with os.Args. Errors that were not already
// shown to the user are printed to stderr.
func Execute() error {
	err := NewRootCommand().Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, Styles.Error.Render("Error: "+err.Error()))
	}
	return err
}

func configPath(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString(flagConfig)
	if err != nil || path == "" {
		return config.CONFIG_PATH
	}
	return path
}

func logLevel(cmd *cobra.Command, fallback string) string {
	level, err := cmd.Flags().GetString(flagLogLevel)
	if err != nil || level == "" {
		return fallback
	}
	return level
}

// newOneShotCore builds storage and the user service only. Logs go to
// stderr so stdout carries just the outcome.
func newOneShotCore(ctx context.Context, cmd *cobra.Command) (*app.App, error) {
	cfg, err := app.LoadConfig(configPath(cmd))
	if err != nil {
		return nil, err
	}

	logger := zerolog.NewConsoleLogger(cfg.ServiceName, cmd.ErrOrStderr())
	logger.SetLevel(logLevel(cmd, oneShotLogLevel))

	return app.NewCore(ctx, cfg, logger)
}
