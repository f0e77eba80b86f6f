package render

import (
	"context"
	"time"

	"github.com/vango-dev/nsdom/pkg/dom"
	"github.com/vango-dev/nsdom/pkg/vdom"
)

// Context describes one Render call as it passes through middleware.
type Context struct {
	std       context.Context
	container dom.Node
	label     string
	prev      *vdom.VNode
	next      *vdom.VNode
	start     time.Time
	stats     Stats
	values    map[any]any
}

// Stats counts what a render did.
type Stats struct {
	strategies [strategyCount]int

	// Attrs counts attribute sets and removes across the tree.
	Attrs AttrStats

	// Created counts DOM nodes created.
	Created int
}

// Count returns how many nodes were handled with strategy s.
func (s *Stats) Count(strategy Strategy) int {
	if strategy >= strategyCount {
		return 0
	}
	return s.strategies[strategy]
}

func (s *Stats) record(strategy Strategy) {
	s.strategies[strategy]++
}

// StdContext returns the context.Context passed to RenderContext.
func (c *Context) StdContext() context.Context { return c.std }

// WithStdContext replaces the standard context seen by later middleware.
func (c *Context) WithStdContext(ctx context.Context) { c.std = ctx }

// Container returns the node being rendered into.
func (c *Context) Container() dom.Node { return c.container }

// Label returns the container label attached with WithLabel, or "".
func (c *Context) Label() string { return c.label }

// Prev returns the vnode the container held before this render.
func (c *Context) Prev() *vdom.VNode { return c.prev }

// Next returns the vnode being rendered.
func (c *Context) Next() *vdom.VNode { return c.next }

// Strategy returns the strategy chosen for the container's root.
func (c *Context) Strategy() Strategy { return Decide(c.prev, c.next) }

// Start returns when the render started.
func (c *Context) Start() time.Time { return c.start }

// Stats returns the counts collected so far.
func (c *Context) Stats() *Stats { return &c.stats }

// SetValue stores a value for later middleware.
func (c *Context) SetValue(key, value any) {
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = value
}

// Value returns a value stored with SetValue.
func (c *Context) Value(key any) any {
	return c.values[key]
}

type labelKey struct{}

// WithLabel attaches a container label to ctx. Logs, metrics and spans
// use it to name the container.
func WithLabel(ctx context.Context, label string) context.Context {
	return context.WithValue(ctx, labelKey{}, label)
}

// LabelFrom returns the label attached with WithLabel.
func LabelFrom(ctx context.Context) string {
	label, _ := ctx.Value(labelKey{}).(string)
	return label
}
