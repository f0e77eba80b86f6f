// Package vdom describes UI trees for the namespace-aware renderer.
//
// A VNode is a lightweight, data-only description of one DOM node: a tag,
// an attribute mapping and at most one child, plus a slot (DOM) that the
// renderer fills with the real node once it is mounted.
//
// # Core Types
//
// VNode is either an element (KindElement) or a text node (KindText). A
// text node with no content is the placeholder mounted for "no tag".
// Props holds raw attribute values as supplied by callers; AttrValue is the
// normalized form the renderer works with: Unset, Scalar or List.
//
// # Element API
//
// Elements are created with H, the plain element builder:
//
//	H("svg", Props{"height": 200}, H("circle", nil, nil))
//
// or with variadic factory functions:
//
//	SVG(Width(200), Height(200),
//	    Image(XlinkHref("test.jpg")),
//	)
//
// # Attribute Values
//
// Only the class attribute accepts a list; it serializes comma-joined in
// order, so Class("bar", "zoo") becomes "bar,zoo". A nil value means the
// attribute is unset.
//
// # JSON
//
// VNode reads and writes the object form
// {"tag": "svg", "attrs": {...}, "children": {...}}, so render scenarios
// can be stored as files.
package vdom
