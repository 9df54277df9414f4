package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/firegrid/firegrid/pkg/api"
	"github.com/firegrid/firegrid/pkg/cache"
	"github.com/firegrid/firegrid/pkg/pipeline"
)

// shutdownGrace is how long in-flight requests get to finish on shutdown.
const shutdownGrace = 10 * time.Second

// serveCommand creates the serve command for the validation HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the validation HTTP API",
		Long: `Run the validation HTTP API.

The server exposes the validation pipeline over HTTP: full compliance
reports, lightweight validation, and battery sizing. System designs are
posted inline as JSON; the server never reads files on a client's behalf.

With --redis-url (or FIREGRID_REDIS_URL) the report cache is backed by
redis so several replicas share one cache; otherwise each process keeps
a local file cache.

The server shuts down gracefully on SIGINT or SIGTERM, allowing in-flight
requests to finish.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis-url", os.Getenv("FIREGRID_REDIS_URL"),
		"redis URL for a shared report cache (redis:// form)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable report caching")

	return cmd
}

// serveCache picks the report cache backend for the server: redis when a
// URL is given, the local file cache otherwise. A redis URL that does not
// parse or answer pings is an error, not a silent fallback.
func (c *CLI) serveCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		store, err := cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		c.Logger.Info("using redis report cache")
		return store, nil
	}
	return newCache(false)
}

// runServe starts the HTTP server and blocks until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redisURL string, noCache bool) error {
	store, err := c.serveCache(ctx, redisURL, noCache)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	runner := pipeline.NewRunner(store, nil, c.Logger)

	server := api.NewServer(runner, c.Logger)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return withLogger(context.Background(), c.Logger)
		},
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving validation API", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down", "grace", shutdownGrace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
