package server

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vango-dev/nsdom/internal/errors"
	"github.com/vango-dev/nsdom/pkg/dom"
	"github.com/vango-dev/nsdom/pkg/dom/memdom"
	"github.com/vango-dev/nsdom/pkg/render"
	"github.com/vango-dev/nsdom/pkg/vdom"
)

// Server renders vnodes into named containers and serves their state.
type Server struct {
	config *Config
	logger *slog.Logger

	// roots is shared by every container's renderer.
	roots *render.Roots

	mu         sync.RWMutex
	containers map[string]*container

	hub        *Hub
	router     chi.Router
	httpServer *http.Server
}

// container is one render target. mu serializes renders and reads.
type container struct {
	id       string
	mu       sync.Mutex
	doc      *memdom.Document
	el       *memdom.Element
	renderer *render.Renderer
}

// RenderResult describes one render.
type RenderResult struct {
	Container string            `json:"container"`
	Strategy  string            `json:"strategy"`
	Markup    string            `json:"markup"`
	Mutations []memdom.Mutation `json:"mutations"`
}

// New creates a Server. A nil config uses DefaultConfig.
func New(config *Config) *Server {
	config = config.withDefaults()
	logger := config.Logger.With("component", "server")

	s := &Server{
		config:     config,
		logger:     logger,
		roots:      render.NewRoots(),
		containers: make(map[string]*container),
		hub:        NewHub(config.CheckOrigin, logger),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the mutation stream hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Roots returns the root registry shared by all containers.
func (s *Server) Roots() *render.Roots {
	return s.roots
}

// Containers returns the known container ids, sorted.
func (s *Server) Containers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.containers))
	for id := range s.containers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Server) lookup(id string) (*container, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.containers[id]
	return c, ok
}

// obtain returns the container for id, creating it if needed.
func (s *Server) obtain(id string) *container {
	if c, ok := s.lookup(id); ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.containers[id]; ok {
		return c
	}
	doc := memdom.NewDocument()
	c := &container{
		id:  id,
		doc: doc,
		el:  doc.MustCreateElement("div"),
		renderer: render.NewRenderer(doc, render.RendererConfig{
			Logger:     s.logger,
			Middleware: s.config.Middleware,
			Roots:      s.roots,
		}),
	}
	s.containers[id] = c
	s.logger.Info("container created", "container", id)
	return c
}

// Render renders node into the container id, creating the container on
// first use. A nil node unmounts. E122 is returned when another render
// into id is in flight.
func (s *Server) Render(ctx context.Context, id string, node *vdom.VNode) (*RenderResult, error) {
	c := s.obtain(id)
	if !c.mu.TryLock() {
		return nil, errors.New("E122").WithDetailf("container %q", id)
	}
	defer c.mu.Unlock()

	strategy := render.Decide(c.renderer.Root(c.el), node)
	rec := c.doc.Record()
	err := c.renderer.RenderContext(render.WithLabel(ctx, id), node, c.el)
	rec.Stop()
	if err != nil {
		return nil, err
	}

	res := &RenderResult{
		Container: id,
		Strategy:  strategy.String(),
		Markup:    memdom.InnerHTML(c.el),
		Mutations: rec.Mutations(),
	}
	if res.Mutations == nil {
		res.Mutations = []memdom.Mutation{}
	}
	s.hub.Broadcast(Message{
		Type:      MessageRender,
		Container: id,
		Strategy:  res.Strategy,
		Mutations: res.Mutations,
	})
	return res, nil
}

// Snapshot returns the markup and last rendered vnode of container id.
func (s *Server) Snapshot(id string) (markup string, root *vdom.VNode, err error) {
	c, ok := s.lookup(id)
	if !ok {
		return "", nil, errors.New("E161").WithDetailf("container %q", id)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return memdom.InnerHTML(c.el), c.renderer.Root(c.el), nil
}

// Remove unmounts container id and forgets it.
func (s *Server) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	c, ok := s.containers[id]
	delete(s.containers, id)
	s.mu.Unlock()
	if !ok {
		return errors.New("E161").WithDetailf("container %q", id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.renderer.RenderContext(render.WithLabel(ctx, id), nil, c.el)
	s.hub.CloseContainer(id)
	s.logger.Info("container removed", "container", id)
	return err
}

// containerNode exposes a container's element for tests.
func (s *Server) containerNode(id string) dom.Element {
	c, ok := s.lookup(id)
	if !ok {
		return nil
	}
	return c.el
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown disconnects stream clients and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.hub.Close()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// requestLogger logs each request with slog.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
