package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/nsdom/internal/errors"
	"github.com/vango-dev/nsdom/pkg/render"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "nsdom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "nsdom",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for renders.
type Metrics struct {
	rendersTotal   *prometheus.CounterVec
	renderErrors   *prometheus.CounterVec
	renderDuration prometheus.Histogram
	nodesTotal     *prometheus.CounterVec
	nodesCreated   prometheus.Counter
	attributeOps   *prometheus.CounterVec
}

// NewMetrics registers the render metrics with the configured registry.
// Registering twice with one registry panics, as promauto does.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of renders by status",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total number of failed renders by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),

		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		nodesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes_total",
			Help:        "Total number of vnodes reconciled by strategy",
			ConstLabels: config.ConstLabels,
		}, []string{"strategy"}),

		nodesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes_created_total",
			Help:        "Total number of DOM nodes created",
			ConstLabels: config.ConstLabels,
		}),

		attributeOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "attribute_operations_total",
			Help:        "Total number of DOM attribute operations by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),
	}
}

// Middleware returns render middleware recording into m.
func (m *Metrics) Middleware() render.Middleware {
	return render.MiddlewareFunc(func(ctx *render.Context, next func() error) error {
		start := time.Now()

		err := next()

		m.renderDuration.Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			m.renderErrors.WithLabelValues(errorCode(err)).Inc()
		}
		m.rendersTotal.WithLabelValues(status).Inc()

		stats := ctx.Stats()
		for _, s := range render.Strategies() {
			if n := stats.Count(s); n > 0 {
				m.nodesTotal.WithLabelValues(s.String()).Add(float64(n))
			}
		}
		if stats.Created > 0 {
			m.nodesCreated.Add(float64(stats.Created))
		}
		if stats.Attrs.Sets > 0 {
			m.attributeOps.WithLabelValues("set").Add(float64(stats.Attrs.Sets))
		}
		if stats.Attrs.Removes > 0 {
			m.attributeOps.WithLabelValues("remove").Add(float64(stats.Attrs.Removes))
		}

		return err
	})
}

// Prometheus creates middleware that collects Prometheus metrics for renders.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
func Prometheus(opts ...MetricsOption) render.Middleware {
	return NewMetrics(opts...).Middleware()
}

// errorCode returns the error code label for err. Codes keep the label
// set small; errors without one are "internal".
func errorCode(err error) string {
	if code := errors.Code(err); code != "" {
		return code
	}
	return "internal"
}
