package middleware

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/nsdom/internal/errors"
	"github.com/vango-dev/nsdom/pkg/render"
)

// Default tracer name.
const defaultTracerName = "nsdom"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "nsdom").
	TracerName string

	// TracerProvider supplies the tracer. Defaults to the global provider.
	TracerProvider trace.TracerProvider

	// Filter determines which renders to trace.
	// Return true to trace the render, false to skip.
	// If nil, all renders are traced.
	Filter func(ctx *render.Context) bool

	// AttributeExtractor extracts custom attributes from the context.
	// Called for each traced render.
	AttributeExtractor func(ctx *render.Context) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithRenderFilter sets a filter function for renders.
func WithRenderFilter(filter func(ctx *render.Context) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ctx *render.Context) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates middleware that traces every render.
//
// The middleware:
//   - Creates a span per render named after the container label
//   - Makes the span context the render's StdContext for later middleware
//   - Records strategy, node and attribute counts as span attributes
//   - Records errors and their code and sets span status
func OpenTelemetry(opts ...OTelOption) render.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(config.TracerName)

	return render.MiddlewareFunc(func(ctx *render.Context, next func() error) error {
		if config.Filter != nil && !config.Filter(ctx) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("nsdom.container", ctx.Label()),
			attribute.String("nsdom.strategy", ctx.Strategy().String()),
		}
		if n := ctx.Next(); n != nil {
			attrs = append(attrs,
				attribute.String("nsdom.root", n.Name()),
				attribute.Int("nsdom.depth", n.Depth()),
			)
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(ctx)...)
		}

		parent := ctx.StdContext()
		if parent == nil {
			parent = context.Background()
		}
		spanCtx, span := tracer.Start(parent, formatSpanName(ctx),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		ctx.WithStdContext(spanCtx)

		err := next()

		stats := ctx.Stats()
		span.SetAttributes(
			attribute.Int("nsdom.nodes_created", stats.Created),
			attribute.Int("nsdom.attr_sets", stats.Attrs.Sets),
			attribute.Int("nsdom.attr_removes", stats.Attrs.Removes),
		)

		if err != nil {
			span.RecordError(err)
			if code := errors.Code(err); code != "" {
				span.SetAttributes(attribute.String("nsdom.error_code", code))
			}
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return err
	})
}

// SpanFromContext returns the render's span, or nil outside a traced render.
func SpanFromContext(ctx *render.Context) trace.Span {
	span := trace.SpanFromContext(ctx.StdContext())
	if !span.SpanContext().IsValid() && !span.IsRecording() {
		return nil
	}
	return span
}

// formatSpanName creates a span name from the context.
func formatSpanName(ctx *render.Context) string {
	label := ctx.Label()
	if label == "" {
		return "nsdom.render"
	}
	return fmt.Sprintf("nsdom.render %s", label)
}
