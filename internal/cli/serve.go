package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/haguru/sakura/internal/app"
	"github.com/haguru/sakura/pkg/zerolog"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing, login and register pages until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := app.LoadConfig(configPath(cmd))
			if err != nil {
				return err
			}
			logger := zerolog.NewZerologLogger(cfg.ServiceName)
			logger.SetLevel(logLevel(cmd, cfg.LogLevel))

			a, err := app.NewAppWithConfig(ctx, cfg, logger)
			if err != nil {
				return err
			}
			return a.Run(ctx)
		},
	}
}
