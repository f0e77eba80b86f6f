// Package server exposes named render containers over HTTP.
//
// Each container is an element in its own in-memory document. Clients
// POST vnodes in their JSON form to render them, GET the resulting markup,
// and follow the DOM mutations each render causes over a WebSocket.
//
// # Routes
//
//	GET    /healthz
//	GET    /containers               list container ids
//	GET    /containers/{id}          markup and last rendered vnode
//	POST   /containers/{id}          render the body (null unmounts)
//	DELETE /containers/{id}          unmount and forget the container
//	GET    /containers/{id}/ws       mutation stream
//	GET    /metrics                  Prometheus, when MetricsHandler is set
//
// # Usage
//
//	srv := server.New(&server.Config{
//	    Address:        "localhost:7357",
//	    Middleware:     []render.Middleware{middleware.Prometheus()},
//	    MetricsHandler: promhttp.Handler(),
//	})
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Renders into one container are serialized; a render that arrives while
// another is in flight is rejected with 409 and code E122.
package server
