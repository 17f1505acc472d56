package cli

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/hintlayout/pkg/observability"
	"github.com/matzehuels/hintlayout/pkg/server"
)

type serveOpts struct {
	config        string
	addr          string
	noCache       bool
	statsInterval time.Duration
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve placements over HTTP",
		Long: `Serve placements over HTTP.

Routes:
  GET  /healthz      liveness and build version
  GET  /v1/stats     request, plan and cache counters
  POST /v1/place     plan a placement for a JSON scenario
  POST /v1/flex      distribute a length among parts
  POST /v1/reveal    compute the scroll that reveals a range

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (TOML)")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the placement cache")
	cmd.Flags().DurationVar(&opts.statsInterval, "stats-interval", 0, "log counters at this interval (0 disables)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, w io.Writer, opts serveOpts) error {
	cfg, err := c.loadConfig(opts.config)
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if opts.addr != "" {
		addr = opts.addr
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	stats := observability.NewCounters()
	observability.SetPipelineHooks(stats)
	observability.SetCacheHooks(stats)
	observability.SetHTTPHooks(stats)
	defer observability.Reset()

	srv := server.New(runner,
		server.WithLogger(c.Logger),
		server.WithPlannerOptions(cfg.Planner),
		server.WithStats(stats),
		server.WithShutdownTimeout(cfg.Server.ShutdownTimeout.Duration),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx, addr)
	})
	if opts.statsInterval > 0 {
		g.Go(func() error {
			c.reportStats(ctx, stats, opts.statsInterval)
			return nil
		})
	}

	spinner := newSpinner(context.Background(), w, "Shutting down...")
	g.Go(func() error {
		<-ctx.Done()
		spinner.Start()
		return nil
	})

	if err := g.Wait(); err != nil {
		spinner.StopWithError("Server failed")
		return err
	}
	spinner.StopWithSuccess("Server stopped")
	return nil
}

// reportStats logs a counter snapshot every interval until ctx is done.
func (c *CLI) reportStats(ctx context.Context, stats *observability.Counters, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := stats.Snapshot()
			c.Logger.Info("stats",
				"requests", s.Requests,
				"plans", s.Plans,
				"placed", s.Placed,
				"fallbacks", s.Fallbacks,
				"cache_hits", s.CacheHits,
				"cache_misses", s.CacheMisses,
			)
		}
	}
}
