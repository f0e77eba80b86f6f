package vtest

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/nsdom/pkg/dom"
	"github.com/vango-dev/nsdom/pkg/dom/memdom"
	"github.com/vango-dev/nsdom/pkg/render"
	"github.com/vango-dev/nsdom/pkg/vdom"
)

// Harness is a document with one container and a renderer.
type Harness struct {
	t         testing.TB
	Doc       *memdom.Document
	Container *memdom.Element
	Renderer  *render.Renderer
}

// HarnessConfig configures a Harness.
type HarnessConfig struct {
	// ContainerTag is the tag of the container element (default: "div").
	ContainerTag string

	// Middleware is passed to the renderer.
	Middleware []render.Middleware

	// Logger is passed to the renderer. Defaults to a discarding logger.
	Logger *slog.Logger
}

// HarnessOption configures a Harness.
type HarnessOption func(*HarnessConfig)

// WithContainerTag sets the container element's tag.
func WithContainerTag(tag string) HarnessOption {
	return func(c *HarnessConfig) {
		c.ContainerTag = tag
	}
}

// WithMiddleware adds renderer middleware.
func WithMiddleware(mw ...render.Middleware) HarnessOption {
	return func(c *HarnessConfig) {
		c.Middleware = append(c.Middleware, mw...)
	}
}

// WithLogger sets the renderer's logger.
func WithLogger(logger *slog.Logger) HarnessOption {
	return func(c *HarnessConfig) {
		c.Logger = logger
	}
}

// New creates a Harness for t.
func New(t testing.TB, opts ...HarnessOption) *Harness {
	t.Helper()

	config := HarnessConfig{ContainerTag: "div"}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	doc := memdom.NewDocument()
	return &Harness{
		t:         t,
		Doc:       doc,
		Container: doc.MustCreateElement(config.ContainerTag),
		Renderer: render.NewRenderer(doc, render.RendererConfig{
			Logger:     config.Logger,
			Middleware: config.Middleware,
		}),
	}
}

// Render renders node into the container.
func (h *Harness) Render(node *vdom.VNode) error {
	return h.Renderer.RenderContext(render.WithLabel(context.Background(), "test"), node, h.Container)
}

// MustRender renders node and fails the test on error.
func (h *Harness) MustRender(node *vdom.VNode) {
	h.t.Helper()
	if err := h.Render(node); err != nil {
		h.t.Fatalf("Render() error = %v", err)
	}
}

// First returns the container's first child, or nil.
func (h *Harness) First() dom.Node {
	return h.Container.FirstChild()
}

// FirstElement returns the container's first child as an element and
// fails the test if it is not one.
func (h *Harness) FirstElement() dom.Element {
	h.t.Helper()
	return MustElement(h.t, h.First())
}

// Markup returns the container's inner markup.
func (h *Harness) Markup() string {
	return memdom.InnerHTML(h.Container)
}

// Record returns the mutations the document saw while fn ran.
func (h *Harness) Record(fn func()) []memdom.Mutation {
	rec := h.Doc.Record()
	defer rec.Stop()
	fn()
	return rec.Mutations()
}

// MustElement returns n as an element and fails the test if it is not one.
func MustElement(t testing.TB, n dom.Node) dom.Element {
	t.Helper()
	el, ok := n.(dom.Element)
	if !ok {
		t.Fatalf("expected an element, got %s", memdom.Describe(n))
	}
	return el
}

// Descend follows the first-child chain depth times from n.
func Descend(n dom.Node, depth int) dom.Node {
	for i := 0; i < depth && n != nil; i++ {
		n = n.FirstChild()
	}
	return n
}

// ExpectNamespace asserts the namespace URI of an element.
func ExpectNamespace(t testing.TB, n dom.Node, ns string) {
	t.Helper()
	el, ok := n.(dom.Element)
	if !ok {
		t.Errorf("expected an element in %q, got %s", ns, memdom.Describe(n))
		return
	}
	if got := el.NamespaceURI(); got != ns {
		t.Errorf("<%s> namespaceURI = %q, want %q", el.LocalName(), got, ns)
	}
}

// ExpectTag asserts the local name of an element.
func ExpectTag(t testing.TB, n dom.Node, tag string) {
	t.Helper()
	el, ok := n.(dom.Element)
	if !ok {
		t.Errorf("expected <%s>, got %s", tag, memdom.Describe(n))
		return
	}
	if got := el.LocalName(); got != tag {
		t.Errorf("localName = %q, want %q", got, tag)
	}
}

// ExpectAttribute asserts an attribute value by qualified name.
func ExpectAttribute(t testing.TB, n dom.Node, name, value string) {
	t.Helper()
	el := MustElement(t, n)
	got, ok := el.GetAttribute(name)
	if !ok {
		t.Errorf("<%s> has no %s attribute, want %q", el.LocalName(), name, value)
		return
	}
	if got != value {
		t.Errorf("<%s> %s = %q, want %q", el.LocalName(), name, got, value)
	}
}

// ExpectNoAttribute asserts an attribute is absent.
func ExpectNoAttribute(t testing.TB, n dom.Node, name string) {
	t.Helper()
	el := MustElement(t, n)
	if got, ok := el.GetAttribute(name); ok {
		t.Errorf("<%s> %s = %q, want no attribute", el.LocalName(), name, got)
	}
}

// ExpectAttributeNS asserts a namespaced attribute value.
func ExpectAttributeNS(t testing.TB, n dom.Node, ns, local, value string) {
	t.Helper()
	el := MustElement(t, n)
	got, ok := el.GetAttributeNS(ns, local)
	if !ok {
		t.Errorf("<%s> has no {%s}%s attribute, want %q", el.LocalName(), ns, local, value)
		return
	}
	if got != value {
		t.Errorf("<%s> {%s}%s = %q, want %q", el.LocalName(), ns, local, got, value)
	}
}

// ExpectNoAttributeNS asserts a namespaced attribute is absent.
func ExpectNoAttributeNS(t testing.TB, n dom.Node, ns, local string) {
	t.Helper()
	el := MustElement(t, n)
	if el.HasAttributeNS(ns, local) {
		got, _ := el.GetAttributeNS(ns, local)
		t.Errorf("<%s> {%s}%s = %q, want no attribute", el.LocalName(), ns, local, got)
	}
}

// ExpectMarkup asserts the outer markup of n.
func ExpectMarkup(t testing.TB, n dom.Node, want string) {
	t.Helper()
	if got := memdom.OuterHTML(n); got != want {
		t.Errorf("markup = %s, want %s", truncate(got, 500), want)
	}
}

// ExpectContains asserts the harness markup contains a substring.
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	html := h.Markup()
	if !strings.Contains(html, expected) {
		h.t.Errorf("expected container markup to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
