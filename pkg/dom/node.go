package dom

// NodeType discriminates DOM nodes.
type NodeType uint8

const (
	ElementNode NodeType = 1
	TextNode    NodeType = 3
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// Document creates nodes.
type Document interface {
	// CreateElement creates an element in the default (HTML) namespace.
	CreateElement(tag string) (Element, error)

	// CreateElementNS creates an element in the given namespace.
	CreateElementNS(namespaceURI, qualifiedName string) (Element, error)

	// CreateTextNode creates a text node.
	CreateTextNode(data string) Text
}

// Node is the part of the DOM Node interface the reconciler uses.
type Node interface {
	NodeType() NodeType
	ParentNode() Node
	FirstChild() Node
	NextSibling() Node

	// IsSameNode reports whether other is this very node.
	IsSameNode(other Node) bool

	AppendChild(child Node) error
	RemoveChild(child Node) error

	// ReplaceChild puts newChild where oldChild is and detaches oldChild.
	ReplaceChild(newChild, oldChild Node) error
}

// Element is an element node.
type Element interface {
	Node

	// TagName is the HTML-uppercased qualified name for HTML-namespace
	// elements and the qualified name as created otherwise.
	TagName() string
	LocalName() string
	NamespaceURI() string

	SetAttribute(name, value string) error
	SetAttributeNS(namespaceURI, qualifiedName, value string) error
	GetAttribute(name string) (string, bool)
	GetAttributeNS(namespaceURI, localName string) (string, bool)
	HasAttribute(name string) bool
	HasAttributeNS(namespaceURI, localName string) bool
	RemoveAttribute(name string) error
	RemoveAttributeNS(namespaceURI, localName string) error

	// SetClassName is the className property setter of HTML elements.
	SetClassName(value string) error
}

// Text is a text node.
type Text interface {
	Node
	Data() string
	SetData(data string)
}

// Children returns the child nodes of n in order.
func Children(n Node) []Node {
	var out []Node
	if n == nil {
		return out
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, c)
	}
	return out
}

// Contains reports whether other is n or a descendant of n.
func Contains(n, other Node) bool {
	for p := other; p != nil; p = p.ParentNode() {
		if p.IsSameNode(n) {
			return true
		}
	}
	return false
}
