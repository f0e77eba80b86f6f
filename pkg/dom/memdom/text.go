package memdom

import "github.com/vango-dev/nsdom/pkg/dom"

// Text is a text node.
type Text struct {
	node
}

var _ dom.Text = (*Text)(nil)

func (t *Text) NodeType() dom.NodeType { return dom.TextNode }

// Data returns the text content.
func (t *Text) Data() string { return t.hn.Data }

// SetData replaces the text content.
func (t *Text) SetData(data string) {
	old := t.hn.Data
	if old == data {
		return
	}
	t.hn.Data = data
	t.doc.notify(Mutation{
		Type:     MutationCharacterData,
		Target:   t.id,
		Node:     "#text",
		OldValue: old,
		Value:    data,
	})
}
