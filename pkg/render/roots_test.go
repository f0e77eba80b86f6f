package render

import (
	"errors"
	"testing"

	"github.com/vango-dev/nsdom/pkg/dom/memdom"
	"github.com/vango-dev/nsdom/pkg/vdom"
)

func TestRootsLifecycle(t *testing.T) {
	doc := memdom.NewDocument()
	a, b := doc.MustCreateElement("div"), doc.MustCreateElement("div")
	roots := NewRoots()

	v1 := vdom.H("svg", nil, nil)
	prev, err := roots.acquire(a)
	if err != nil || prev != nil {
		t.Fatalf("acquire() = %v, %v", prev, err)
	}
	if roots.Len() != 0 {
		t.Errorf("Len() = %d during first render, want 0", roots.Len())
	}
	roots.release(a, v1, true)
	if roots.Get(a) != v1 || roots.Len() != 1 {
		t.Fatalf("Get() = %v, Len() = %d", roots.Get(a), roots.Len())
	}

	// A failed render keeps the previous vnode.
	if _, err := roots.acquire(a); err != nil {
		t.Fatal(err)
	}
	roots.release(a, vdom.H("g", nil, nil), false)
	if roots.Get(a) != v1 {
		t.Error("failed render replaced the root entry")
	}

	// Rendering nil deletes the entry.
	if _, err := roots.acquire(a); err != nil {
		t.Fatal(err)
	}
	roots.release(a, nil, true)
	if roots.Get(a) != nil || roots.Len() != 0 || len(roots.Containers()) != 0 {
		t.Error("nil render should delete the entry")
	}

	// A failed first render leaves nothing behind.
	if _, err := roots.acquire(b); err != nil {
		t.Fatal(err)
	}
	roots.release(b, v1, false)
	if len(roots.entries) != 0 {
		t.Errorf("entries = %d, want 0", len(roots.entries))
	}
}

func TestRootsRejectsConcurrentRender(t *testing.T) {
	doc := memdom.NewDocument()
	a, b := doc.MustCreateElement("div"), doc.MustCreateElement("div")
	roots := NewRoots()

	if _, err := roots.acquire(a); err != nil {
		t.Fatal(err)
	}
	if _, err := roots.acquire(a); !errors.Is(err, ErrConcurrentRender) {
		t.Fatalf("second acquire() = %v, want E122", err)
	}
	if _, err := roots.acquire(b); err != nil {
		t.Fatalf("other container: %v", err)
	}
	roots.release(a, vdom.H("svg", nil, nil), true)
	roots.release(b, vdom.H("svg", nil, nil), true)

	containers := roots.Containers()
	if len(containers) != 2 {
		t.Errorf("Containers() = %d, want 2", len(containers))
	}
	if _, err := roots.acquire(a); err != nil {
		t.Errorf("acquire after release: %v", err)
	}
}
