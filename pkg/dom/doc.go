// Package dom defines the DOM surface the reconciler drives.
//
// The render package never creates container nodes and never inspects
// markup; it only needs to create elements (plain or namespace-qualified),
// create text nodes, move nodes in and out of a parent, and read and write
// attributes in both their plain and namespace-qualified forms. Those
// operations are captured by the Document, Node, Element and Text
// interfaces so that the same engine can drive an in-memory tree (see
// package memdom) or a browser DOM.
//
// Failures are reported as *Exception values named after the DOM
// exception they model (InvalidCharacterError, NamespaceError,
// NotFoundError, HierarchyRequestError).
package dom
