package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vango-dev/nsdom/pkg/render"
	"github.com/vango-dev/nsdom/pkg/vdom"
	"github.com/vango-dev/nsdom/pkg/vtest"
)

func TestMiddlewareOrderAndContext(t *testing.T) {
	var order []string
	var seen *render.Context
	mw := func(name string) render.Middleware {
		return render.MiddlewareFunc(func(ctx *render.Context, next func() error) error {
			order = append(order, name+">")
			err := next()
			order = append(order, "<"+name)
			seen = ctx
			return err
		})
	}

	h := vtest.New(t, vtest.WithMiddleware(mw("a"), render.Chain(mw("b"), mw("c"))))
	h.MustRender(vdom.SVG(vdom.Width(1), vdom.Height(2), vdom.Circle()))

	want := []string{"a>", "b>", "c>", "<c", "<b", "<a"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}

	if seen.Label() != "test" {
		t.Errorf("Label() = %q, want test", seen.Label())
	}
	if seen.Strategy() != render.StrategyMount {
		t.Errorf("Strategy() = %v, want mount", seen.Strategy())
	}
	stats := seen.Stats()
	if stats.Created != 2 || stats.Count(render.StrategyMount) != 2 {
		t.Errorf("stats = %+v, want 2 created", stats)
	}
	if stats.Attrs.Sets != 2 {
		t.Errorf("attr sets = %d, want 2", stats.Attrs.Sets)
	}
	if seen.Start().IsZero() {
		t.Error("Start() should be set")
	}

	h.MustRender(vdom.SVG(vdom.Width(1), vdom.Rect()))
	stats = seen.Stats()
	if seen.Strategy() != render.StrategyPatch {
		t.Errorf("Strategy() = %v, want patch", seen.Strategy())
	}
	if stats.Count(render.StrategyPatch) != 1 || stats.Count(render.StrategyReplace) != 1 {
		t.Errorf("patch = %d, replace = %d", stats.Count(render.StrategyPatch), stats.Count(render.StrategyReplace))
	}
	if stats.Attrs.Removes != 1 || stats.Attrs.Sets != 0 {
		t.Errorf("attrs = %+v, want 1 remove", stats.Attrs)
	}
}

func TestMiddlewareCanSkipRender(t *testing.T) {
	skip := render.MiddlewareFunc(func(ctx *render.Context, next func() error) error {
		if ctx.Next() != nil && ctx.Next().Tag == "g" {
			return nil
		}
		return next()
	})
	h := vtest.New(t, vtest.WithMiddleware(skip))

	prev := vdom.SVG()
	h.MustRender(prev)
	h.MustRender(vdom.G())
	vtest.ExpectTag(t, h.First(), "svg")
	if h.Renderer.Root(h.Container) != prev {
		t.Error("skipped render should not change the root entry")
	}
}

func TestMiddlewareErrorAfterRenderRecordsRoot(t *testing.T) {
	boom := errors.New("boom")
	fail := render.MiddlewareFunc(func(ctx *render.Context, next func() error) error {
		if err := next(); err != nil {
			return err
		}
		if ctx.Next() != nil && ctx.Next().Tag == "svg" {
			return nil
		}
		return boom
	})
	h := vtest.New(t, vtest.WithMiddleware(fail))

	h.MustRender(vdom.SVG())
	g := vdom.G()
	if err := h.Render(g); !errors.Is(err, boom) {
		t.Fatalf("Render() = %v, want boom", err)
	}
	if h.Renderer.Root(h.Container) != g {
		t.Error("root entry should follow the DOM once the patch succeeded")
	}
	vtest.ExpectTag(t, h.First(), "g")
}

func TestContextValuesAndStdContext(t *testing.T) {
	type key struct{}
	var got any
	var std context.Context
	h := vtest.New(t, vtest.WithMiddleware(
		render.MiddlewareFunc(func(ctx *render.Context, next func() error) error {
			ctx.SetValue(key{}, 42)
			ctx.WithStdContext(context.WithValue(ctx.StdContext(), key{}, "std"))
			return next()
		}),
		render.MiddlewareFunc(func(ctx *render.Context, next func() error) error {
			got = ctx.Value(key{})
			std = ctx.StdContext()
			return next()
		}),
	))
	h.MustRender(vdom.SVG())

	if got != 42 {
		t.Errorf("Value() = %v, want 42", got)
	}
	if std.Value(key{}) != "std" {
		t.Error("WithStdContext() not visible to later middleware")
	}
	if render.LabelFrom(std) != "test" {
		t.Errorf("LabelFrom() = %q", render.LabelFrom(std))
	}
}
