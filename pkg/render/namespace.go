package render

import (
	"github.com/vango-dev/nsdom/pkg/dom"
	"github.com/vango-dev/nsdom/pkg/vdom"
)

// ResolveNamespace returns the namespace an element with the given tag
// and attributes is created in, given the namespace its parent resolved
// to. An explicit xmlns attribute wins, then an svg tag, then inherited.
// The empty string means the default HTML namespace.
func ResolveNamespace(tag string, attrs vdom.Attrs, inherited string) string {
	if xmlns := attrs.Get("xmlns"); xmlns.IsSet() {
		return xmlns.Serialize()
	}
	if tag == "svg" {
		return dom.SVGNamespace
	}
	return inherited
}

// effectiveNamespace maps the namespace of a live element back to the
// form ResolveNamespace uses, so HTML elements report "".
func effectiveNamespace(el dom.Element) string {
	ns := el.NamespaceURI()
	if ns == dom.HTMLNamespace {
		return ""
	}
	return ns
}
