// Package scenario replays recorded render sequences against an in-memory
// document and checks the resulting DOM.
//
// A scenario is a JSON file:
//
//	{
//	  "name": "svg-height-cycle",
//	  "container": "div",
//	  "steps": [
//	    {"render": {"tag": "svg", "attrs": {"height": null}}},
//	    {
//	      "render": {"tag": "svg", "attrs": {"height": 200}},
//	      "expect": [
//	        {"expr": "container.firstChild.namespaceURI", "equals": "http://www.w3.org/2000/svg"},
//	        {"expr": "container.firstChild.getAttribute('height')", "equals": "200"}
//	      ]
//	    }
//	  ]
//	}
//
// Each step renders its vnode (null unmounts) and then evaluates its
// expectations as JavaScript with goja. The global `container` is the
// container element; nodes expose the read side of the DOM API
// (firstChild, namespaceURI, getAttributeNS, hasAttributeNS, ...).
// An expectation without "equals" must be truthy.
//
// Scenarios are read from a directory (FileSource) or an S3 bucket
// (S3Source) and executed by a Runner.
package scenario
