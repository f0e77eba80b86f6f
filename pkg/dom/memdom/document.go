package memdom

import (
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/nsdom/pkg/dom"
)

// Document is an in-memory HTML document.
type Document struct {
	mu        sync.Mutex
	nextID    uint64
	observers map[uint64]func(Mutation)
	nextObs   uint64
}

var _ dom.Document = (*Document)(nil)

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		observers: make(map[uint64]func(Mutation)),
	}
}

// CreateElement creates an HTML-namespace element. The tag is lowercased.
func (d *Document) CreateElement(tag string) (dom.Element, error) {
	if err := validateName(tag); err != nil {
		return nil, err
	}
	local := asciiLower(tag)
	return d.newElement(dom.HTMLNamespace, "", local), nil
}

// CreateElementNS creates an element in namespaceURI.
func (d *Document) CreateElementNS(namespaceURI, qualifiedName string) (dom.Element, error) {
	prefix, local, err := validateAndExtract(namespaceURI, qualifiedName)
	if err != nil {
		return nil, err
	}
	return d.newElement(namespaceURI, prefix, local), nil
}

// CreateTextNode creates a text node.
func (d *Document) CreateTextNode(data string) dom.Text {
	hn := &html.Node{Type: html.TextNode, Data: data}
	t := &Text{}
	t.init(d, hn, t)
	return t
}

// MustCreateElement is CreateElement for tests and fixtures; it panics on error.
func (d *Document) MustCreateElement(tag string) *Element {
	el, err := d.CreateElement(tag)
	if err != nil {
		panic(err)
	}
	return el.(*Element)
}

func (d *Document) newElement(ns, prefix, local string) *Element {
	hn := &html.Node{
		Type:      html.ElementNode,
		Data:      local,
		Namespace: ns,
	}
	if ns == dom.HTMLNamespace {
		hn.DataAtom = atom.Lookup([]byte(local))
	}
	el := &Element{prefix: prefix, attrPrefix: make(map[attrKey]string)}
	el.init(d, hn, el)
	return el
}

// register assigns an ID to a freshly created node.
func (d *Document) register() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	return d.nextID
}

// tree maps the html.Nodes of one connected subtree to their wrappers.
// Every wrapper points at the tree it belongs to, so a detached subtree
// and its tree are collected together once nothing references them.
type tree struct {
	nodes map[*html.Node]*node
}

func newTree() *tree {
	return &tree{nodes: make(map[*html.Node]*node)}
}

// wrap returns the dom.Node for hn, which must be in n's tree.
func (d *Document) wrap(n *node, hn *html.Node) dom.Node {
	if hn == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if w, ok := n.tree.nodes[hn]; ok {
		return w.self
	}
	return nil
}

// move transfers the subtree rooted at n into dst.
func (d *Document) move(n *node, dst *tree) {
	d.mu.Lock()
	defer d.mu.Unlock()
	src := n.tree
	if src == dst {
		return
	}
	var walk func(hn *html.Node)
	walk = func(hn *html.Node) {
		if w, ok := src.nodes[hn]; ok {
			delete(src.nodes, hn)
			dst.nodes[hn] = w
			w.tree = dst
		}
		for c := hn.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n.hn)
}

// treeSize returns how many wrappers n's tree holds.
func (d *Document) treeSize(n *node) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(n.tree.nodes)
}

// Observe registers fn to receive every mutation. The returned function
// unregisters it.
func (d *Document) Observe(fn func(Mutation)) (cancel func()) {
	d.mu.Lock()
	d.nextObs++
	id := d.nextObs
	d.observers[id] = fn
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		delete(d.observers, id)
		d.mu.Unlock()
	}
}

// Record starts collecting mutations until Stop is called on the result.
func (d *Document) Record() *Recorder {
	r := &Recorder{}
	r.cancel = d.Observe(r.add)
	return r
}

func (d *Document) notify(m Mutation) {
	d.mu.Lock()
	if len(d.observers) == 0 {
		d.mu.Unlock()
		return
	}
	fns := make([]func(Mutation), 0, len(d.observers))
	for _, fn := range d.observers {
		fns = append(fns, fn)
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn(m)
	}
}
