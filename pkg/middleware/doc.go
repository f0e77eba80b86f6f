// Package middleware provides observability middleware for the renderer.
//
// This package includes:
//
//   - OpenTelemetry tracing, one span per Render call
//   - Prometheus metrics for renders, strategies and attribute operations
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware wraps every render in a span carrying the
// container label, the root strategy, node and attribute counts, and the
// error code of a failed render.
//
//	r := render.NewRenderer(doc, render.RendererConfig{
//	    Middleware: []render.Middleware{
//	        middleware.OpenTelemetry(
//	            middleware.WithTracerName("charts"),
//	        ),
//	    },
//	})
//
// The tracer comes from the global provider unless WithTracerProvider is
// given.
//
// # Prometheus Metrics
//
// The Prometheus middleware collects:
//
//   - nsdom_renders_total: Renders by status
//   - nsdom_render_errors_total: Failed renders by error code
//   - nsdom_render_duration_seconds: Render duration histogram
//   - nsdom_nodes_total: Nodes handled by strategy
//   - nsdom_nodes_created_total: DOM nodes created
//   - nsdom_attribute_operations_total: Attribute sets and removes
//
// Install it on a renderer:
//
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
//
// Then expose them with promhttp:
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package middleware
