package render

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/nsdom/internal/errors"
	"github.com/vango-dev/nsdom/pkg/dom"
	"github.com/vango-dev/nsdom/pkg/vdom"
)

// Errors returned by Render, matched with errors.Is by code.
var (
	ErrInvalidVNode      = errors.New("E100")
	ErrInvalidTag        = errors.New("E101")
	ErrTooManyChildren   = errors.New("E102")
	ErrDOMOperation      = errors.New("E120")
	ErrRootInconsistency = errors.New("E121")
	ErrConcurrentRender  = errors.New("E122")
)

// RendererConfig configures a Renderer.
type RendererConfig struct {
	// Logger receives a debug record per DOM change and a warning per
	// failed render. Defaults to slog.Default().
	Logger *slog.Logger

	// Middleware wraps every Render call, first to last.
	Middleware []Middleware

	// Roots is the root state to use. A fresh registry is created when nil.
	Roots *Roots
}

// Renderer reconciles vnodes into containers of one document.
type Renderer struct {
	doc        dom.Document
	roots      *Roots
	logger     *slog.Logger
	middleware []Middleware
}

// NewRenderer creates a Renderer that creates nodes with doc.
func NewRenderer(doc dom.Document, config RendererConfig) *Renderer {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	roots := config.Roots
	if roots == nil {
		roots = NewRoots()
	}
	return &Renderer{
		doc:        doc,
		roots:      roots,
		logger:     logger.With("component", "render"),
		middleware: append([]Middleware(nil), config.Middleware...),
	}
}

// Use appends middleware. It must not be called while renders run.
func (r *Renderer) Use(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// Roots returns the renderer's root state.
func (r *Renderer) Roots() *Roots { return r.roots }

// Root returns the vnode last rendered into container, or nil.
func (r *Renderer) Root(container dom.Node) *vdom.VNode {
	return r.roots.Get(container)
}

// Render makes container's content match node. A nil node removes what
// was rendered before.
func (r *Renderer) Render(node *vdom.VNode, container dom.Node) error {
	return r.RenderContext(context.Background(), node, container)
}

// Unmount removes what was rendered into container.
func (r *Renderer) Unmount(container dom.Node) error {
	return r.Render(nil, container)
}

// RenderContext is Render with a context for middleware. A label set
// with WithLabel names the container in logs.
func (r *Renderer) RenderContext(ctx context.Context, node *vdom.VNode, container dom.Node) error {
	if container == nil {
		return errors.New("E121").WithDetail("container is nil")
	}
	if err := node.Validate(); err != nil {
		return err
	}

	prev, err := r.roots.acquire(container)
	if err != nil {
		return err
	}

	rc := &Context{
		std:       ctx,
		container: container,
		label:     LabelFrom(ctx),
		prev:      prev,
		next:      node,
		start:     time.Now(),
	}
	logger := r.logger
	if rc.label != "" {
		logger = logger.With("container", rc.label)
	}
	eng := &engine{doc: r.doc, stats: &rc.stats, logger: logger}

	rendered := false
	err = ComposeMiddleware(rc, r.middleware, func() error {
		if _, err := eng.patch(prev, node, container, ""); err != nil {
			return err
		}
		rendered = true
		return nil
	})
	// The DOM matches node once patch returned, whatever middleware
	// reports afterwards.
	r.roots.release(container, node, rendered)

	if err != nil {
		logger.Warn("render failed",
			"strategy", rc.Strategy().String(),
			"code", errors.Code(err),
			"error", err)
		return err
	}
	logger.Debug("rendered",
		"strategy", rc.Strategy().String(),
		"created", rc.stats.Created,
		"attr_sets", rc.stats.Attrs.Sets,
		"attr_removes", rc.stats.Attrs.Removes)
	return nil
}
