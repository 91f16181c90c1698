package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/dashforge/dashforge/internal/api"
	"github.com/dashforge/dashforge/pkg/cache"
	"github.com/dashforge/dashforge/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr          string // listen address
	redisAddr     string // Redis address; empty means file cache
	redisPassword string
	redisDB       int
	cachePrefix   string // key namespace on shared backends
	noCache       bool
}

// serveCommand creates the serve command for running the HTTP compile API.
func (c *CLI) serveCommand() *cobra.Command {
	var o serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP compile API",
		Long: `Serve exposes the build pipeline over HTTP. Trees are submitted as
JSON and compiled documents come back in the response. With --redis,
compiled documents and submitted trees are cached in Redis so several
instances can share one store; otherwise the local file cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.serveCache(cmd.Context(), o)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(store, serveKeyer(o.cachePrefix), c.Logger)
			defer runner.Close()

			srv := &http.Server{
				Addr:              o.addr,
				Handler:           api.New(runner, c.Logger),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("listening", "addr", o.addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				c.Logger.Info("shutting down")
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&o.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&o.redisAddr, "redis", "", "Redis address (e.g. localhost:6379)")
	cmd.Flags().StringVar(&o.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&o.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&o.cachePrefix, "cache-prefix", "", "prefix for cache keys on a shared backend")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching entirely")

	return cmd
}

// serveKeyer builds the cache keyer for the server. A prefix namespaces
// the keys so several deployments can share one Redis instance; without
// one the runner falls back to its default keyer.
func serveKeyer(prefix string) cache.Keyer {
	if prefix == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, prefix)
}

// serveCache picks the cache backend for the server.
func (c *CLI) serveCache(ctx context.Context, o serveOpts) (cache.Cache, error) {
	if o.noCache {
		return cache.NewNullCache(), nil
	}
	if o.redisAddr != "" {
		c.Logger.Info("using Redis cache", "addr", o.redisAddr)
		return cache.NewRedisCache(ctx, o.redisAddr, o.redisPassword, o.redisDB)
	}
	return newCache(false)
}
