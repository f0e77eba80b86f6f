// Package memdom is an in-memory implementation of the dom interfaces.
//
// Nodes live in golang.org/x/net/html trees, so parent and sibling links,
// insertion and removal behave exactly as they do for parsed documents.
// On top of that tree memdom keeps what html.Node cannot express:
// element namespace URIs, attribute prefixes, and a stable node ID.
//
// Names are validated the way a browser validates them: CreateElement and
// SetAttribute require an XML Name, CreateElementNS and SetAttributeNS run
// the DOM "validate and extract" steps and reject mismatched
// prefix/namespace pairs with a NamespaceError.
//
// Every mutation is reported to observers registered with
// Document.Observe, which is how tests prove that a render touched nothing
// and how the inspection server streams changes to websocket clients.
package memdom
