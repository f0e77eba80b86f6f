package render_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/vango-dev/nsdom/pkg/dom"
	"github.com/vango-dev/nsdom/pkg/dom/memdom"
	"github.com/vango-dev/nsdom/pkg/render"
	"github.com/vango-dev/nsdom/pkg/vdom"
	"github.com/vango-dev/nsdom/pkg/vtest"
)

func TestRerenderEqualTreeDoesNotMutate(t *testing.T) {
	h := newHarness(t)
	tree := func() *vdom.VNode {
		return vdom.Div(vdom.Class("a", "b"),
			vdom.SVG(vdom.Width(200), vdom.ViewBox(0, 0, 10, 10),
				vdom.Image(vdom.XlinkHref("a.png"), vdom.Text("x")),
			),
		)
	}

	h.MustRender(tree())
	muts := h.Record(func() { h.MustRender(tree()) })
	if len(muts) != 0 {
		t.Errorf("re-render mutated the DOM: %+v", muts)
	}

	same := tree()
	h.MustRender(same)
	muts = h.Record(func() { h.MustRender(same) })
	if len(muts) != 0 {
		t.Errorf("rendering the same vnode again mutated the DOM: %+v", muts)
	}
	if same.DOM == nil || same.Child.DOM == nil {
		t.Error("re-rendering the same vnode must keep its DOM references")
	}
}

func TestDOMReferenceOwnership(t *testing.T) {
	h := newHarness(t)

	first := vdom.SVG(vdom.Height(1), vdom.Circle())
	h.MustRender(first)
	if first.DOM == nil || first.Child.DOM == nil {
		t.Fatal("mounted vnodes must hold their DOM nodes")
	}
	if !first.DOM.IsSameNode(h.First()) {
		t.Error("root vnode DOM is not the container's child")
	}

	second := vdom.SVG(vdom.Height(2), vdom.Circle())
	h.MustRender(second)
	if first.DOM != nil || first.Child.DOM != nil {
		t.Error("patched-from vnodes must release their DOM nodes")
	}
	if second.DOM == nil || second.Child.DOM == nil {
		t.Fatal("patched-to vnodes must hold the DOM nodes")
	}
	svg := second.DOM

	third := vdom.SVG(vdom.Height(2), vdom.Rect())
	h.MustRender(third)
	if second.Child.DOM != nil {
		t.Error("replaced vnode must release its DOM node")
	}
	if !third.DOM.IsSameNode(svg) {
		t.Error("svg should be reused")
	}
	vtest.ExpectTag(t, third.Child.DOM, "rect")

	h.MustRender(nil)
	if third.DOM != nil || third.Child.DOM != nil {
		t.Error("removed vnodes must release their DOM nodes")
	}
	if h.First() != nil {
		t.Errorf("container not empty: %s", h.Markup())
	}
	if h.Renderer.Root(h.Container) != nil || h.Renderer.Roots().Len() != 0 {
		t.Error("root entry should be gone after a nil render")
	}
}

func TestReplaceKeepsReusedChildVNode(t *testing.T) {
	h := newHarness(t)
	shared := vdom.Circle()

	h.MustRender(vdom.SVG(shared))
	h.MustRender(vdom.G(shared))
	if shared.DOM == nil {
		t.Fatalf("reused child lost its DOM node after replace: %s", h.Markup())
	}
	if !shared.DOM.IsSameNode(h.First().FirstChild()) {
		t.Error("reused child DOM is not the live circle")
	}

	if err := h.Render(vdom.G(vdom.ID("x"), shared)); err != nil {
		t.Fatalf("render after replace: %v", err)
	}
	vtest.ExpectAttribute(t, h.First(), "id", "x")
	vtest.ExpectTag(t, shared.DOM, "circle")
}

func TestReplaceTopLevel(t *testing.T) {
	h := newHarness(t)

	h.MustRender(vdom.Div())
	h.MustRender(vdom.SVG())
	vtest.ExpectNamespace(t, h.First(), svgNS)
	if n := len(dom.Children(h.Container)); n != 1 {
		t.Errorf("container children = %d, want 1", n)
	}

	h.MustRender(vdom.Text("hello"))
	if got := h.Markup(); got != "hello" {
		t.Errorf("markup = %q, want hello", got)
	}
}

func TestTextNodes(t *testing.T) {
	h := newHarness(t)

	h.MustRender(vdom.Span(vdom.Text("one")))
	text := h.First().FirstChild()

	muts := h.Record(func() { h.MustRender(vdom.Span(vdom.Text("two"))) })
	if len(muts) != 1 || muts[0].Type != memdom.MutationCharacterData {
		t.Errorf("mutations = %+v, want one characterData", muts)
	}
	if !h.First().FirstChild().IsSameNode(text) {
		t.Error("text node should be patched in place")
	}
	h.ExpectContains("<span>two</span>")

	h.MustRender(vdom.Span(vdom.Placeholder()))
	if got := h.First().FirstChild().(dom.Text).Data(); got != "" {
		t.Errorf("placeholder data = %q", got)
	}
}

func TestPlaceholderAtRoot(t *testing.T) {
	h := newHarness(t)
	h.MustRender(vdom.Placeholder())
	if h.First() == nil || h.First().NodeType() != dom.TextNode {
		t.Fatalf("placeholder should mount an empty text node, got %s", h.Markup())
	}
	h.MustRender(vdom.SVG())
	vtest.ExpectNamespace(t, h.First(), svgNS)
}

func TestXmlnsChangeKeepsLiveNamespace(t *testing.T) {
	h := newHarness(t)

	h.MustRender(vdom.Div(vdom.Xmlns(svgNS)))
	div := h.First()
	vtest.ExpectNamespace(t, div, svgNS)

	h.MustRender(vdom.Div(vdom.Span()))
	if !h.First().IsSameNode(div) {
		t.Fatal("removing xmlns must not re-create the element")
	}
	vtest.ExpectNamespace(t, div, svgNS)
	vtest.ExpectNoAttribute(t, div, "xmlns")
	// New descendants inherit what the vnode resolves to now.
	vtest.ExpectNamespace(t, div.FirstChild(), dom.HTMLNamespace)
}

func TestInvalidVNodeLeavesDOMUntouched(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.VNode
		want error
	}{
		{"list on width", vdom.H("svg", vdom.Props{"width": []string{"1"}}, nil), render.ErrInvalidVNode},
		{"bad tag", vdom.H("svg", nil, vdom.H("a b", nil, nil)), render.ErrInvalidTag},
		{"two children", vdom.G(vdom.Circle(), vdom.Rect()), render.ErrTooManyChildren},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			prev := vdom.SVG(vdom.Height(1))
			h.MustRender(prev)

			var err error
			muts := h.Record(func() { err = h.Render(tt.node) })
			if !errors.Is(err, tt.want) {
				t.Fatalf("Render() error = %v, want %v", err, tt.want)
			}
			if len(muts) != 0 {
				t.Errorf("invalid vnode mutated the DOM: %+v", muts)
			}
			if h.Renderer.Root(h.Container) != prev {
				t.Error("root entry should keep the previous vnode")
			}
			if prev.DOM == nil {
				t.Error("previous vnode should still own its node")
			}
		})
	}
}

func TestFailedRenderKeepsPreviousRoot(t *testing.T) {
	h := newHarness(t)

	prev := vdom.SVG(vdom.Height(1), vdom.G(vdom.Circle()))
	h.MustRender(prev)

	// The attribute name passes vnode validation but the DOM rejects it.
	bad := vdom.SVG(vdom.Height(2), vdom.G(vdom.A("bad name", "x"), vdom.Circle()))
	err := h.Render(bad)
	if !errors.Is(err, render.ErrDOMOperation) {
		t.Fatalf("Render() error = %v, want E120", err)
	}
	var ex *dom.Exception
	if !errors.As(err, &ex) || ex.Name != dom.InvalidCharacterError {
		t.Errorf("error should wrap InvalidCharacterError, got %v", err)
	}

	if h.Renderer.Root(h.Container) != prev {
		t.Fatal("root entry should keep the previous vnode")
	}
	for n := prev; n != nil; n = n.Child {
		if n.DOM == nil {
			t.Errorf("previous %s lost its DOM node", n.Name())
		}
	}
	for n := bad; n != nil; n = n.Child {
		if n.DOM != nil {
			t.Errorf("failed %s holds a DOM node", n.Name())
		}
	}
	// Attributes written before the failure stay written.
	vtest.ExpectAttribute(t, h.First(), "height", "2")

	next := vdom.SVG(vdom.Height(3), vdom.G(vdom.Rect()))
	h.MustRender(next)
	vtest.ExpectAttribute(t, h.First(), "height", "3")
	vtest.ExpectTag(t, vtest.Descend(h.Container, 3), "rect")
}

func TestFailedMountAttachesNothing(t *testing.T) {
	h := newHarness(t)
	bad := vdom.SVG(vdom.G(vdom.A("bad name", "x")))
	if err := h.Render(bad); !errors.Is(err, render.ErrDOMOperation) {
		t.Fatalf("Render() error = %v, want E120", err)
	}
	if h.First() != nil {
		t.Errorf("container should stay empty, got %s", h.Markup())
	}
	if bad.DOM != nil || bad.Child.DOM != nil {
		t.Error("failed mount left DOM references")
	}
	if h.Renderer.Roots().Len() != 0 {
		t.Error("failed first render should not create a root entry")
	}
}

func TestRootInconsistency(t *testing.T) {
	h := newHarness(t)
	prev := vdom.SVG()
	h.MustRender(prev)

	// Someone else detached the svg.
	if err := h.Container.RemoveChild(prev.DOM); err != nil {
		t.Fatal(err)
	}
	err := h.Render(vdom.SVG(vdom.Height(1)))
	if !errors.Is(err, render.ErrRootInconsistency) {
		t.Fatalf("Render() error = %v, want E121", err)
	}
	if h.Renderer.Root(h.Container) != prev {
		t.Error("root entry should keep the previous vnode")
	}
	// Put it back so cleanup can unmount.
	if err := h.Container.AppendChild(prev.DOM); err != nil {
		t.Fatal(err)
	}
}

func TestNilContainer(t *testing.T) {
	r := render.NewRenderer(memdom.NewDocument(), render.RendererConfig{})
	if err := r.Render(vdom.SVG(), nil); !errors.Is(err, render.ErrRootInconsistency) {
		t.Errorf("Render(nil container) = %v, want E121", err)
	}
}

func TestConcurrentRenderSameContainer(t *testing.T) {
	var h *vtest.Harness
	var inner error
	reenter := render.MiddlewareFunc(func(ctx *render.Context, next func() error) error {
		if ctx.Next() != nil && ctx.Next().Tag == "svg" {
			inner = h.Render(vdom.G())
		}
		return next()
	})
	h = vtest.New(t, vtest.WithMiddleware(reenter))

	h.MustRender(vdom.SVG())
	if !errors.Is(inner, render.ErrConcurrentRender) {
		t.Fatalf("inner Render() = %v, want E122", inner)
	}
	vtest.ExpectTag(t, h.First(), "svg")
}

func TestConcurrentRenderDifferentContainers(t *testing.T) {
	doc := memdom.NewDocument()
	r := render.NewRenderer(doc, render.RendererConfig{})

	const n = 8
	containers := make([]*memdom.Element, n)
	for i := range containers {
		containers[i] = doc.MustCreateElement("div")
	}

	var wg sync.WaitGroup
	errs := make(chan error, n*10)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(c *memdom.Element) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				errs <- r.Render(vdom.SVG(vdom.Width(j), vdom.Circle()), c)
			}
		}(containers[i])
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Render() error = %v", err)
		}
	}
	if got := r.Roots().Len(); got != n {
		t.Errorf("Roots().Len() = %d, want %d", got, n)
	}
	for _, c := range containers {
		vtest.ExpectAttribute(t, c.FirstChild(), "width", "9")
	}
}

func TestUnmountAndRoot(t *testing.T) {
	doc := memdom.NewDocument()
	r := render.NewRenderer(doc, render.RendererConfig{})
	c := doc.MustCreateElement("div")

	v := vdom.SVG()
	if err := r.Render(v, c); err != nil {
		t.Fatal(err)
	}
	if r.Root(c) != v {
		t.Error("Root() should return the rendered vnode")
	}
	if err := r.Unmount(c); err != nil {
		t.Fatal(err)
	}
	if r.Root(c) != nil || c.FirstChild() != nil {
		t.Error("Unmount() should empty the container")
	}
	if err := r.Unmount(c); err != nil {
		t.Errorf("second Unmount() = %v", err)
	}
}

func TestSharedRoots(t *testing.T) {
	doc := memdom.NewDocument()
	roots := render.NewRoots()
	a := render.NewRenderer(doc, render.RendererConfig{Roots: roots})
	b := render.NewRenderer(doc, render.RendererConfig{Roots: roots})
	c := doc.MustCreateElement("div")

	if err := a.Render(vdom.SVG(vdom.Width(1)), c); err != nil {
		t.Fatal(err)
	}
	if err := b.Render(vdom.SVG(vdom.Width(2)), c); err != nil {
		t.Fatal(err)
	}
	if n := len(dom.Children(c)); n != 1 {
		t.Errorf("children = %d, want 1", n)
	}
	vtest.ExpectAttribute(t, c.FirstChild(), "width", "2")
}
