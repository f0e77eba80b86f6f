// Package render reconciles vnode trees into a live DOM.
//
// A Renderer owns the root state of every container it has rendered
// into. Each call to Render compares the new vnode with the one rendered
// last time and applies the smallest set of DOM operations that makes the
// container match:
//
//	r := render.NewRenderer(doc, render.RendererConfig{})
//	err := r.Render(vdom.SVG(vdom.Height(200)), container)
//	err = r.Render(vdom.SVG(vdom.Height(300)), container) // one setAttribute
//	err = r.Render(nil, container)                        // removes the svg
//
// # Namespaces
//
// Every element is created in the namespace ResolveNamespace picks for it:
// an explicit xmlns attribute wins, an svg tag opens the SVG namespace,
// and anything else inherits from its parent. The namespace of a live
// element never changes; patching only affects what later-created
// descendants inherit.
//
// # Strategies
//
// Decide chooses between mounting, patching in place, replacing and
// removing. Two vnodes with the same kind and tag are patched in place and
// the DOM reference moves from the old vnode to the new one.
//
// # Attributes
//
// ReconcileAttrs writes only the attributes whose serialized value
// changed. Names with the xlink: or xml: prefix go through the
// namespace-qualified attribute calls, and class on an HTML element is set
// through the className property.
//
// # Errors
//
// Render validates the vnode before touching the DOM. When a render fails
// part way the container keeps its previous vnode, which still owns every
// live node, so the next render reconciles against it.
//
// # Middleware
//
// Middleware wraps each Render call and sees its Context, including the
// strategies chosen and the attribute operations performed. The
// middleware package provides Prometheus and OpenTelemetry middleware.
package render
