// Package vtest provides testing helpers for code that renders vnodes.
//
// A Harness bundles an in-memory document, a container element and a
// renderer, so a test can render and inspect in a few lines:
//
//	func TestChart(t *testing.T) {
//	    h := vtest.New(t)
//	    h.MustRender(vdom.SVG(vdom.Height(200)))
//
//	    svg := h.First()
//	    vtest.ExpectNamespace(t, svg, dom.SVGNamespace)
//	    vtest.ExpectAttribute(t, svg, "height", "200")
//	}
//
// # Mutation Counting
//
// Record captures the DOM mutations one render performs:
//
//	muts := h.Record(func() { h.MustRender(sameTree) })
//	if len(muts) != 0 {
//	    t.Errorf("re-render mutated the DOM: %v", muts)
//	}
//
// # Assertions
//
// The Expect helpers check a DOM node's namespace, tag, attributes and
// markup and report failures with t.Errorf, so one test can surface
// several problems at once.
package vtest
