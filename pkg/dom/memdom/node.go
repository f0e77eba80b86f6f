package memdom

import (
	"golang.org/x/net/html"

	"github.com/vango-dev/nsdom/pkg/dom"
)

// node holds what Element and Text share.
type node struct {
	doc  *Document
	hn   *html.Node
	self dom.Node
	id   uint64
	tree *tree
}

func (n *node) init(d *Document, hn *html.Node, self dom.Node) {
	n.doc = d
	n.hn = hn
	n.self = self
	n.id = d.register()
	n.tree = newTree()
	n.tree.nodes[hn] = n
}

func (n *node) base() *node { return n }

// ID is the document-unique identifier of the node.
func (n *node) ID() uint64 { return n.id }

// HTML exposes the underlying x/net/html node. It must not be mutated directly.
func (n *node) HTML() *html.Node { return n.hn }

// Document returns the owner document.
func (n *node) Document() *Document { return n.doc }

func (n *node) ParentNode() dom.Node  { return n.doc.wrap(n, n.hn.Parent) }
func (n *node) FirstChild() dom.Node  { return n.doc.wrap(n, n.hn.FirstChild) }
func (n *node) LastChild() dom.Node   { return n.doc.wrap(n, n.hn.LastChild) }
func (n *node) NextSibling() dom.Node { return n.doc.wrap(n, n.hn.NextSibling) }

// TreeSize returns the number of nodes connected to n, n included.
func (n *node) TreeSize() int { return n.doc.treeSize(n) }

// ChildCount returns the number of child nodes.
func (n *node) ChildCount() int {
	count := 0
	for c := n.hn.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

func (n *node) IsSameNode(other dom.Node) bool {
	o, ok := unwrap(other)
	return ok && o.hn == n.hn
}

func (n *node) AppendChild(child dom.Node) error {
	ch, err := n.adopt(child)
	if err != nil {
		return err
	}
	detach(ch.hn)
	n.hn.AppendChild(ch.hn)
	n.doc.move(ch, n.tree)
	n.doc.notify(Mutation{Type: MutationChildList, Target: n.id, Node: describe(n.hn), Added: ch.id})
	return nil
}

func (n *node) RemoveChild(child dom.Node) error {
	ch, ok := unwrap(child)
	if !ok || ch.hn.Parent != n.hn {
		return dom.NewException(dom.NotFoundError, "node is not a child of %s", describe(n.hn))
	}
	n.hn.RemoveChild(ch.hn)
	n.doc.move(ch, newTree())
	n.doc.notify(Mutation{Type: MutationChildList, Target: n.id, Node: describe(n.hn), Removed: ch.id})
	return nil
}

func (n *node) ReplaceChild(newChild, oldChild dom.Node) error {
	old, ok := unwrap(oldChild)
	if !ok || old.hn.Parent != n.hn {
		return dom.NewException(dom.NotFoundError, "node to replace is not a child of %s", describe(n.hn))
	}
	ch, err := n.adopt(newChild)
	if err != nil {
		return err
	}
	if ch == old {
		return nil
	}
	detach(ch.hn)
	n.hn.InsertBefore(ch.hn, old.hn)
	n.hn.RemoveChild(old.hn)
	n.doc.move(ch, n.tree)
	n.doc.move(old, newTree())
	n.doc.notify(Mutation{
		Type:    MutationChildList,
		Target:  n.id,
		Node:    describe(n.hn),
		Added:   ch.id,
		Removed: old.id,
	})
	return nil
}

// adopt checks that child can be inserted under n.
func (n *node) adopt(child dom.Node) (*node, error) {
	ch, ok := unwrap(child)
	if !ok || ch.doc != n.doc {
		return nil, dom.NewException(dom.WrongDocumentError, "node belongs to another document")
	}
	if n.hn.Type != html.ElementNode {
		return nil, dom.NewException(dom.HierarchyRequestError, "%s cannot have children", describe(n.hn))
	}
	for p := n.hn; p != nil; p = p.Parent {
		if p == ch.hn {
			return nil, dom.NewException(dom.HierarchyRequestError, "node is an ancestor of the parent")
		}
	}
	return ch, nil
}

// detach removes hn from its current parent, if any. The caller moves the
// subtree into its new tree.
func detach(hn *html.Node) {
	if hn.Parent != nil {
		hn.Parent.RemoveChild(hn)
	}
}

// unwrap returns the shared part of a memdom node.
func unwrap(n dom.Node) (*node, bool) {
	switch v := n.(type) {
	case *Element:
		if v == nil {
			return nil, false
		}
		return v.base(), true
	case *Text:
		if v == nil {
			return nil, false
		}
		return v.base(), true
	default:
		return nil, false
	}
}

// describe names a node for messages and mutation records.
func describe(hn *html.Node) string {
	switch hn.Type {
	case html.TextNode:
		return "#text"
	case html.ElementNode:
		return hn.Data
	default:
		return "#node"
	}
}
