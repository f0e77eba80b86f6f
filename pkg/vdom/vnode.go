package vdom

import (
	"strings"

	"github.com/vango-dev/nsdom/internal/errors"
	"github.com/vango-dev/nsdom/pkg/dom"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement VKind = iota // <svg>, <div>, etc.
	KindText                 // Text node; empty text is the placeholder
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind  VKind  // Node type
	Tag   string // Element tag name (e.g., "svg")
	Props Props  // Attributes; nil values mean "unset"
	Child *VNode // The single child, if any
	Text  string // For KindText

	// DOM is the realized node while this vnode is live. The renderer
	// sets, transfers and clears it; callers only read it.
	DOM dom.Node

	// extra counts children beyond the first passed to a builder.
	extra int
	// invalid describes an argument a builder could not interpret.
	invalid string
}

// Props holds attribute values keyed by attribute name.
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// IsPlaceholder reports whether v mounts as an empty text node.
func (v *VNode) IsPlaceholder() bool {
	return v != nil && v.Kind == KindText && v.Text == ""
}

// Name is the label used for v in tree paths: the tag, or "#text".
func (v *VNode) Name() string {
	if v == nil {
		return "<nil>"
	}
	if v.Kind == KindText {
		return "#text"
	}
	return v.Tag
}

// Depth returns the number of nodes on the chain starting at v.
func (v *VNode) Depth() int {
	n := 0
	for ; v != nil; v = v.Child {
		n++
	}
	return n
}

// Validate checks the shape of the whole chain starting at v: element tags
// must be valid names, props must normalize, text nodes carry neither
// props nor a child, and builders must not have received extra children.
// A nil vnode is valid.
func (v *VNode) Validate() error {
	var path []string
	for n := v; n != nil; n = n.Child {
		path = append(path, n.Name())
		if err := n.validateSelf(strings.Join(path, " > ")); err != nil {
			return err
		}
	}
	return nil
}

func (v *VNode) validateSelf(path string) error {
	if v.invalid != "" {
		return errors.New("E100").WithPath(path).WithDetail(v.invalid)
	}
	if v.extra > 0 {
		return errors.New("E102").WithPath(path).
			WithDetailf("%d extra children were passed to %s", v.extra, v.Name())
	}
	switch v.Kind {
	case KindElement:
		if !dom.ValidName(v.Tag) {
			return errors.New("E101").WithPath(path).
				WithDetailf("%q is not a valid element name", v.Tag)
		}
		if _, err := NormalizeProps(v.Props); err != nil {
			return errors.FromError(err, "E100").WithPath(path)
		}
	case KindText:
		if len(v.Props) > 0 || v.Child != nil {
			return errors.New("E100").WithPath(path).
				WithDetail("text nodes have no attributes or children")
		}
	default:
		return errors.New("E100").WithPath(path).
			WithDetailf("unknown node kind %d", v.Kind)
	}
	return nil
}

// ClearDOM clears the DOM slot of v and of its whole child chain.
func (v *VNode) ClearDOM() {
	for n := v; n != nil; n = n.Child {
		n.DOM = nil
	}
}
