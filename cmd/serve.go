package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/taskboard/internal/server"
	"github.com/desertthunder/taskboard/internal/shared"
	"github.com/desertthunder/taskboard/internal/store"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

// Serve runs the task dashboard API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	host := config.Server.Host
	if flagHost := cmd.String("host"); flagHost != "" {
		host = flagHost
	}
	port := config.Server.Port
	if flagPort := cmd.Int("port"); flagPort != 0 {
		port = flagPort
	}

	backend, closer, err := store.New(config)
	if err != nil {
		return fmt.Errorf("failed to open task store: %w", err)
	}
	defer closer()

	if config.Server.APIKey == "" {
		r.logger.Warn("no api key configured, requests are unauthenticated")
	}

	router := server.NewBasicRouter()
	// Registered before the middleware stack so probes skip auth.
	router.Handle(http.MethodGet, "/api/health", server.Health())
	router.Use(
		server.Logging(r.logger),
		server.CORS(),
		server.RateLimit(rate.NewLimiter(rate.Limit(50), 100)),
		server.Auth(config.Server.APIKey),
	)
	router.Handler(server.NewTaskHandler(backend, r.logger))

	addr := fmt.Sprintf("%s:%d", host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-sigCh:
		r.logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	return nil
}

// loadConfig re-reads the config file named by --config, falling back to
// the runner's startup config.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	path := cmd.String("config")
	if path == "" {
		return r.config
	}
	if _, err := os.Stat(path); err != nil {
		return r.config
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "error", err)
		return r.config
	}
	return config
}
