package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/timelog/internal/api"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.Config.Addr
			}
			logger := a.logger()
			metrics := api.NewMetrics()

			srv := api.NewServer(a.newUseCases(metrics), api.Options{
				Logger:      logger,
				LogRequests: a.Config.LogRequests,
				Timeout:     time.Duration(a.Config.TimeoutMs) * time.Millisecond,
				Metrics:     metrics,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Listen(addr) }()
			logger.Info("listening", "addr", addr, "db", a.Config.DBPath)

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}
