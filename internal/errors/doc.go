// Package errors provides structured, coded errors for nsdom.
//
// Every failure that reaches the caller of Render, the CLI or the
// inspection server is an *Error carrying:
//   - a stable code (e.g. "E100") registered in this package
//   - a category (vnode, dom, root, config, scenario, server)
//   - the position in the vnode tree where it happened, when known
//   - an optional hint and the wrapped cause
//
// # Error Codes
//
//	E100-E119  vnode shape errors (bad attribute values, bad tags)
//	E120-E139  DOM and root-state errors
//	E140-E159  configuration and scenario errors
//	E160-E179  inspection server errors
//
// # Usage
//
//	err := errors.New("E100").
//	    WithPath("div > svg").
//	    WithDetail(`attribute "width" has unsupported type []string`).
//	    WithSuggestion("Only the class attribute accepts a list value")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E100: Invalid vnode shape
//	//
//	//   at div > svg
//	//
//	//   attribute "width" has unsupported type []string
//	//
//	//   Hint: Only the class attribute accepts a list value
//
// Errors compare by code, so the standard library works as expected:
//
//	if errors.Is(err, render.ErrInvalidVNode) { ... }
package errors
