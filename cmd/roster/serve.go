package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sagarc03/roster"
	"github.com/sagarc03/roster/config"
	rosterhttp "github.com/sagarc03/roster/http"
	"github.com/sagarc03/roster/memstore"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the roster HTTP server.

Every enabled resource is seeded fresh on start. The port comes from
--port, ROSTER_SERVER_PORT, PORT or the config file, defaulting to 3000.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", config.DefaultPort, "HTTP server port (env: ROSTER_SERVER_PORT, PORT)")
	serveCmd.Flags().String("id-strategy", string(roster.IDSequence), "id assignment: sequence, length (env: ROSTER_STORE_ID_STRATEGY)")
	serveCmd.Flags().Int64("max-body-size", 1<<20, "request body limit in bytes, 0 for no limit")
	serveCmd.Flags().StringSlice("resources", nil, "resources to serve (default: users,cars)")

	rootCmd.AddCommand(serveCmd)
}

// newHandler builds the store, service and HTTP handler described by cfg.
func newHandler(cfg *config.Config) (*rosterhttp.Handler, error) {
	kinds, err := cfg.Resources.Kinds()
	if err != nil {
		return nil, fmt.Errorf("resolve resources: %w", err)
	}

	store, err := memstore.New(kinds, cfg.Store.Strategy())
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	service, err := roster.NewRosterService(store, kinds)
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	handlerConfig := rosterhttp.HandlerConfig{
		MaxBodySize: cfg.Server.MaxBodySize,
		CORS:        cfg.CORS,
		Logger:      slog.Default(),
	}

	return rosterhttp.NewHandler(&handlerConfig, service), nil
}

func newServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	handler, err := newHandler(cfg)
	if err != nil {
		return err
	}

	server := newServer(cfg, handler.Router())

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
	}()

	slog.Info("server is running",
		"addr", server.Addr,
		"resources", cfg.Resources.Enabled,
		"id_strategy", cfg.Store.IDStrategy,
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
