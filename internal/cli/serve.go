package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spliceplot/internal/server"
	"github.com/matzehuels/spliceplot/pkg/buildinfo"
	"github.com/matzehuels/spliceplot/pkg/cache"
	"github.com/matzehuels/spliceplot/pkg/config"
)

// serveCommand creates the serve command running the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve figures over HTTP",
		Long: `Serve figures over HTTP.

Endpoints:
  GET  /healthz                        liveness and build information
  GET  /v1/grid?width=&height=         panel rectangles of the figure grid
  POST /v1/render?format=svg           render the dataset JSON in the body
  GET  /v1/datasets/{hash}/render      re-render a previously posted dataset

Render defaults come from the config file; query parameters (width, height,
font_size, lane_width, zoom_radius, acceptor_lanes) override them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := server.New(runner,
				server.WithDefaults(cfg.PipelineOptions()),
				server.WithLogger(c.Logger))

			printInfo("Serving on %s", StyleLink.Render(cfg.Server.Addr))
			printKeyValue("Version", buildinfo.Version)
			printKeyValue("Cache", cacheLabel(cfg, noCache))
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// cacheLabel describes the cache the server will use.
func cacheLabel(cfg config.Config, noCache bool) string {
	switch {
	case noCache || cfg.Cache.Backend == cache.BackendNone:
		return "disabled"
	case cfg.Cache.Backend == cache.BackendRedis:
		return "redis " + cfg.Cache.RedisAddr
	}
	if path, err := cachePath(cfg.CacheOptions()); err == nil {
		return cfg.Cache.Backend + " " + path
	}
	return cfg.Cache.Backend
}
