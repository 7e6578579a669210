package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"binimg/handlers"
	"binimg/internal/logger"
	"binimg/metrics"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(g *globalOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

Endpoints:
  GET  /api/v1/health          Health check
  POST /api/v1/stego/encode    Hide "secret" in "container", returns the stego carrier
  POST /api/v1/stego/decode    Extract the file hidden in "container"
  POST /api/v1/stego/capacity  Report what "container" can hold
  POST /api/v1/stego/inspect   Report the header of "container"
  GET  /metrics                Prometheus metrics, when metrics.enabled is set`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.setup()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			var rec *metrics.Recorder
			if cfg.Metrics.Enabled {
				metrics.InitRegistry()
				rec = metrics.NewRecorder()
			}

			gin.SetMode(gin.ReleaseMode)
			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
				Handler:           handlers.NewRouter(cfg, rec),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Server starting",
					"port", cfg.Server.Port,
					"metrics", cfg.Metrics.Enabled,
					"max_upload_size", cfg.Server.MaxUploadSize.String())
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")

	return cmd
}
