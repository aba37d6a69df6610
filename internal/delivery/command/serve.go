package command

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"market-client/internal/delivery/router"
	"market-client/pkg/utils"
)

const (
	defaultServeAddr = ":9090"
	shutdownTimeout  = 10 * time.Second
)

// ServeCmd exposes health checks and the client's Prometheus metrics until
// the command context is cancelled.
func ServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve health checks and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Config.Metrics.Addr
			}
			if addr == "" {
				addr = defaultServeAddr
			}

			r := chi.NewRouter()
			router.SetupRoutes(r, app.Gateways.Settings, app.Config.API.BaseURL, app.Registry, app.Loggers)
			app.Loggers.InfoLogger.Info("Router and routes initialized")

			server := &http.Server{
				Addr:              addr,
				Handler:           r,
				ReadHeaderTimeout: 5 * time.Second,
			}
			return runServer(cmd.Context(), server, app)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to metrics.addr or "+defaultServeAddr+")")
	return cmd
}

func runServer(ctx context.Context, server *http.Server, app *App) error {
	errCh := make(chan error, 1)
	go func() {
		app.Loggers.InfoLogger.Info("Starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			app.Loggers.ErrorLogger.Error("Failed to start server", utils.Err(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	app.Loggers.InfoLogger.Info("Shutdown signal received, shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.Loggers.ErrorLogger.Error("Server forced to shutdown", utils.Err(err))
		return err
	}
	app.Loggers.InfoLogger.Info("Server shutdown gracefully")
	return nil
}
