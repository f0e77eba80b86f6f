package render

import (
	"sync"

	"github.com/vango-dev/nsdom/internal/errors"
	"github.com/vango-dev/nsdom/pkg/dom"
	"github.com/vango-dev/nsdom/pkg/vdom"
)

// Roots maps containers to the vnode last rendered into them.
// It is safe for concurrent use.
type Roots struct {
	mu      sync.Mutex
	entries map[dom.Node]*rootEntry
}

type rootEntry struct {
	vnode    *vdom.VNode
	inFlight bool
}

// NewRoots creates an empty registry.
func NewRoots() *Roots {
	return &Roots{entries: make(map[dom.Node]*rootEntry)}
}

// Get returns the vnode last rendered into container, or nil.
func (r *Roots) Get(container dom.Node) *vdom.VNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[container]; ok {
		return e.vnode
	}
	return nil
}

// Len returns the number of containers holding a rendered vnode.
func (r *Roots) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.vnode != nil {
			n++
		}
	}
	return n
}

// Containers returns the containers holding a rendered vnode, in no
// particular order.
func (r *Roots) Containers() []dom.Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dom.Node, 0, len(r.entries))
	for c, e := range r.entries {
		if e.vnode != nil {
			out = append(out, c)
		}
	}
	return out
}

// acquire marks container as being rendered and returns its previous
// vnode. A container already being rendered fails with E122.
func (r *Roots) acquire(container dom.Node) (*vdom.VNode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[container]
	if !ok {
		e = &rootEntry{}
		r.entries[container] = e
	}
	if e.inFlight {
		return nil, errors.New("E122")
	}
	e.inFlight = true
	return e.vnode, nil
}

// release ends a render. On success the entry takes next, and a nil next
// deletes it; on failure the previous vnode stays.
func (r *Roots) release(container dom.Node, next *vdom.VNode, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entries[container]
	if e == nil {
		return
	}
	e.inFlight = false
	if ok {
		e.vnode = next
	}
	if e.vnode == nil {
		delete(r.entries, container)
	}
}
