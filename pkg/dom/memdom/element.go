package memdom

import (
	"golang.org/x/net/html"

	"github.com/vango-dev/nsdom/pkg/dom"
)

// attrKey identifies an attribute by namespace and local name.
type attrKey struct {
	ns    string
	local string
}

// Element is an element node.
type Element struct {
	node
	prefix     string
	attrPrefix map[attrKey]string
}

var _ dom.Element = (*Element)(nil)

func (e *Element) NodeType() dom.NodeType { return dom.ElementNode }

// NamespaceURI returns the namespace the element was created in.
func (e *Element) NamespaceURI() string { return e.hn.Namespace }

// LocalName returns the local part of the element name.
func (e *Element) LocalName() string { return e.hn.Data }

// Prefix returns the namespace prefix the element was created with.
func (e *Element) Prefix() string { return e.prefix }

func (e *Element) qualifiedName() string {
	if e.prefix != "" {
		return e.prefix + ":" + e.hn.Data
	}
	return e.hn.Data
}

// TagName returns the uppercased name for HTML elements and the
// qualified name otherwise.
func (e *Element) TagName() string {
	if e.isHTML() {
		return asciiUpper(e.qualifiedName())
	}
	return e.qualifiedName()
}

func (e *Element) isHTML() bool { return e.hn.Namespace == dom.HTMLNamespace }

// normalizeName lowercases attribute names on HTML elements.
func (e *Element) normalizeName(name string) string {
	if e.isHTML() {
		return asciiLower(name)
	}
	return name
}

func (e *Element) attrQName(a html.Attribute) string {
	if p := e.attrPrefix[attrKey{a.Namespace, a.Key}]; p != "" {
		return p + ":" + a.Key
	}
	return a.Key
}

// findByName returns the index of the first attribute whose qualified name is name.
func (e *Element) findByName(name string) int {
	for i, a := range e.hn.Attr {
		if e.attrQName(a) == name {
			return i
		}
	}
	return -1
}

func (e *Element) findNS(ns, local string) int {
	for i, a := range e.hn.Attr {
		if a.Namespace == ns && a.Key == local {
			return i
		}
	}
	return -1
}

// SetAttribute sets a plain (no namespace) attribute.
func (e *Element) SetAttribute(name, value string) error {
	if err := validateName(name); err != nil {
		return err
	}
	name = e.normalizeName(name)
	if i := e.findByName(name); i >= 0 {
		old := e.hn.Attr[i].Val
		e.hn.Attr[i].Val = value
		e.changed(e.hn.Attr[i].Namespace, name, old, value)
		return nil
	}
	e.hn.Attr = append(e.hn.Attr, html.Attribute{Key: name, Val: value})
	e.changed("", name, "", value)
	return nil
}

// SetAttributeNS sets a namespaced attribute.
func (e *Element) SetAttributeNS(namespaceURI, qualifiedName, value string) error {
	prefix, local, err := validateAndExtract(namespaceURI, qualifiedName)
	if err != nil {
		return err
	}
	key := attrKey{namespaceURI, local}
	if i := e.findNS(namespaceURI, local); i >= 0 {
		old := e.hn.Attr[i].Val
		e.hn.Attr[i].Val = value
		e.changed(namespaceURI, e.attrQName(e.hn.Attr[i]), old, value)
		return nil
	}
	if prefix != "" {
		e.attrPrefix[key] = prefix
	}
	e.hn.Attr = append(e.hn.Attr, html.Attribute{Namespace: namespaceURI, Key: local, Val: value})
	e.changed(namespaceURI, qualifiedName, "", value)
	return nil
}

// GetAttribute returns the value of the first attribute named name.
func (e *Element) GetAttribute(name string) (string, bool) {
	if i := e.findByName(e.normalizeName(name)); i >= 0 {
		return e.hn.Attr[i].Val, true
	}
	return "", false
}

// GetAttributeNS returns the value of the attribute (namespaceURI, localName).
func (e *Element) GetAttributeNS(namespaceURI, localName string) (string, bool) {
	if i := e.findNS(namespaceURI, localName); i >= 0 {
		return e.hn.Attr[i].Val, true
	}
	return "", false
}

func (e *Element) HasAttribute(name string) bool {
	return e.findByName(e.normalizeName(name)) >= 0
}

func (e *Element) HasAttributeNS(namespaceURI, localName string) bool {
	return e.findNS(namespaceURI, localName) >= 0
}

// RemoveAttribute removes the first attribute named name. Removing a
// missing attribute is not an error.
func (e *Element) RemoveAttribute(name string) error {
	name = e.normalizeName(name)
	i := e.findByName(name)
	if i < 0 {
		return nil
	}
	e.removeAt(i, name)
	return nil
}

// RemoveAttributeNS removes the attribute (namespaceURI, localName).
func (e *Element) RemoveAttributeNS(namespaceURI, localName string) error {
	i := e.findNS(namespaceURI, localName)
	if i < 0 {
		return nil
	}
	e.removeAt(i, e.attrQName(e.hn.Attr[i]))
	return nil
}

func (e *Element) removeAt(i int, qname string) {
	a := e.hn.Attr[i]
	e.hn.Attr = append(e.hn.Attr[:i], e.hn.Attr[i+1:]...)
	delete(e.attrPrefix, attrKey{a.Namespace, a.Key})
	e.doc.notify(Mutation{
		Type:      MutationAttributes,
		Target:    e.id,
		Node:      e.qualifiedName(),
		Name:      qname,
		Namespace: a.Namespace,
		OldValue:  a.Val,
		Deleted:   true,
	})
}

// SetClassName is the className setter. Only HTML elements expose a
// writable className string.
func (e *Element) SetClassName(value string) error {
	if !e.isHTML() {
		return dom.NewException(dom.NotSupportedError, "className is not a string on %s elements", e.hn.Namespace)
	}
	return e.SetAttribute("class", value)
}

// Attributes returns the element's attributes in insertion order as
// (namespace, qualified name, value) triples.
func (e *Element) Attributes() []Attr {
	out := make([]Attr, 0, len(e.hn.Attr))
	for _, a := range e.hn.Attr {
		out = append(out, Attr{Namespace: a.Namespace, Name: e.attrQName(a), Value: a.Val})
	}
	return out
}

// Attr is a snapshot of one attribute.
type Attr struct {
	Namespace string
	Name      string
	Value     string
}

func (e *Element) changed(ns, name, old, value string) {
	e.doc.notify(Mutation{
		Type:      MutationAttributes,
		Target:    e.id,
		Node:      e.qualifiedName(),
		Name:      name,
		Namespace: ns,
		OldValue:  old,
		Value:     value,
	})
}
