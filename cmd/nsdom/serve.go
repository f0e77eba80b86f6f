package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/nsdom/internal/config"
	"github.com/vango-dev/nsdom/pkg/server"
)

type serveOptions struct {
	host    string
	port    int
	origins []string
	metrics bool
	tracing bool
}

func serveCmd(flags *globalFlags) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve render containers over HTTP",
		Long: `Start the inspection server.

POST a vnode to /containers/{id} to render it, GET the same path for the
markup, and connect to /containers/{id}/ws to follow DOM mutations.

Examples:
  nsdom serve
  nsdom serve --port=8080 --metrics
  nsdom serve --origin=http://localhost:3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			opts.apply(cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := newServer(cfg)
			success("Serving on http://%s", cfg.ServerAddress())
			if cfg.Metrics.Enabled {
				info("Metrics at http://%s%s", cfg.ServerAddress(), cfg.Metrics.Path)
			}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to listen on (default from nsdom.json)")
	cmd.Flags().StringVarP(&opts.host, "host", "H", "", "Host to bind to (default from nsdom.json)")
	cmd.Flags().StringSliceVar(&opts.origins, "origin", nil, "Additional origins allowed to open mutation streams")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "Enable Prometheus metrics")
	cmd.Flags().BoolVar(&opts.tracing, "tracing", false, "Enable OpenTelemetry tracing")

	return cmd
}

// apply copies command-line overrides into cfg.
func (o *serveOptions) apply(cfg *config.Config) {
	if o.port > 0 {
		cfg.Server.Port = o.port
	}
	if o.host != "" {
		cfg.Server.Host = o.host
	}
	cfg.Server.AllowedOrigins = append(cfg.Server.AllowedOrigins, o.origins...)
	if o.metrics {
		cfg.Metrics.Enabled = true
	}
	if o.tracing {
		cfg.Tracing.Enabled = true
	}
}

// newServer builds the inspection server described by cfg.
func newServer(cfg *config.Config) *server.Server {
	reg := prometheus.NewRegistry()
	sc := &server.Config{
		Address:        cfg.ServerAddress(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Middleware:     renderMiddleware(cfg, reg),
		Logger:         newLogger(cfg),
	}
	if cfg.Metrics.Enabled {
		sc.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		sc.MetricsPath = cfg.Metrics.Path
	}
	return server.New(sc)
}
