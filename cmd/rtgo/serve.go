package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rgehrsitz/rtgo/internal/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculation engine over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd, "info")
			if err != nil {
				return err
			}
			defer env.close()

			cfg := api.DefaultServerConfig()
			cfg.Host, _ = cmd.Flags().GetString("host")
			cfg.Port, _ = cmd.Flags().GetInt("port")

			server := api.NewServer(cfg, env.registry, env.iss, env.logger, version)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				env.logger.Info("listening", zap.String("host", cfg.Host), zap.Int("port", cfg.Port),
					zap.Ints("fiscal_years", env.registry.Years()))
				errCh <- server.Start()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				env.logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().String("host", "localhost", "Address to listen on")
	cmd.Flags().IntP("port", "p", 8080, "Port to listen on")

	return cmd
}
