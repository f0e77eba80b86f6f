package scenario

import (
	"encoding/json"
	"reflect"

	"github.com/dop251/goja"

	"github.com/vango-dev/nsdom/pkg/dom"
	"github.com/vango-dev/nsdom/pkg/dom/memdom"
)

// nodeKeys are the properties a node proxy answers.
var nodeKeys = []string{
	"nodeType", "nodeName", "tagName", "localName", "namespaceURI",
	"parentNode", "firstChild", "nextSibling", "childNodes",
	"data", "nodeValue", "textContent", "className", "outerHTML", "innerHTML",
	"getAttribute", "getAttributeNS", "hasAttribute", "hasAttributeNS",
}

// evaluator runs expectations against one container. Proxies are cached
// per node so `a.firstChild === b` compares node identity.
type evaluator struct {
	vm    *goja.Runtime
	cache map[dom.Node]goja.Value
}

func newEvaluator(container dom.Node) *evaluator {
	ev := &evaluator{
		vm:    goja.New(),
		cache: make(map[dom.Node]goja.Value),
	}
	ev.vm.Set("container", ev.wrap(container))
	ev.vm.Set("HTML_NS", dom.HTMLNamespace)
	ev.vm.Set("SVG_NS", dom.SVGNamespace)
	ev.vm.Set("XLINK_NS", dom.XLinkNamespace)
	ev.vm.Set("XML_NS", dom.XMLNamespace)
	return ev
}

// wrap returns the proxy for n, or null.
func (ev *evaluator) wrap(n dom.Node) goja.Value {
	if n == nil {
		return goja.Null()
	}
	if v, ok := ev.cache[n]; ok {
		return v
	}
	v := ev.vm.NewDynamicObject(&nodeAccessor{ev: ev, node: n})
	ev.cache[n] = v
	return v
}

// eval runs exp and returns the exported result and whether it matched.
func (ev *evaluator) eval(exp *Expectation) (got any, ok bool, err error) {
	v, err := ev.vm.RunProgram(exp.program)
	if err != nil {
		return nil, false, err
	}
	got = v.Export()
	if len(exp.Equals) == 0 {
		return got, v.ToBoolean(), nil
	}
	match, err := jsonEqual(got, exp.Equals)
	return got, match, err
}

// jsonEqual compares a value to JSON by round-tripping the value.
func jsonEqual(got any, want json.RawMessage) (bool, error) {
	gotJSON, err := json.Marshal(got)
	if err != nil {
		return false, err
	}
	var a, b any
	if err := json.Unmarshal(gotJSON, &a); err != nil {
		return false, err
	}
	if err := json.Unmarshal(want, &b); err != nil {
		return false, err
	}
	return reflect.DeepEqual(a, b), nil
}

// nodeAccessor is a read-only goja.DynamicObject over a dom.Node.
type nodeAccessor struct {
	ev   *evaluator
	node dom.Node
}

func (a *nodeAccessor) Get(key string) goja.Value {
	vm := a.ev.vm
	el, isElement := a.node.(dom.Element)
	text, isText := a.node.(dom.Text)

	switch key {
	case "nodeType":
		return vm.ToValue(int(a.node.NodeType()))
	case "nodeName", "tagName":
		if isElement {
			return vm.ToValue(el.TagName())
		}
		if key == "tagName" {
			return goja.Undefined()
		}
		return vm.ToValue("#text")
	case "localName":
		if isElement {
			return vm.ToValue(el.LocalName())
		}
		return goja.Null()
	case "namespaceURI":
		if isElement {
			return vm.ToValue(el.NamespaceURI())
		}
		return goja.Null()
	case "parentNode":
		return a.ev.wrap(a.node.ParentNode())
	case "firstChild":
		return a.ev.wrap(a.node.FirstChild())
	case "nextSibling":
		return a.ev.wrap(a.node.NextSibling())
	case "childNodes":
		children := dom.Children(a.node)
		items := make([]any, len(children))
		for i, c := range children {
			items[i] = a.ev.wrap(c)
		}
		return vm.NewArray(items...)
	case "data", "nodeValue":
		if isText {
			return vm.ToValue(text.Data())
		}
		return goja.Null()
	case "textContent":
		return vm.ToValue(textContent(a.node))
	case "className":
		if isElement {
			v, _ := el.GetAttribute("class")
			return vm.ToValue(v)
		}
		return goja.Undefined()
	case "outerHTML":
		return vm.ToValue(memdom.OuterHTML(a.node))
	case "innerHTML":
		return vm.ToValue(memdom.InnerHTML(a.node))
	}

	if !isElement {
		return goja.Undefined()
	}
	switch key {
	case "getAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			v, ok := el.GetAttribute(call.Argument(0).String())
			if !ok {
				return goja.Null()
			}
			return vm.ToValue(v)
		})
	case "getAttributeNS":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			v, ok := el.GetAttributeNS(nsArg(call.Argument(0)), call.Argument(1).String())
			if !ok {
				return goja.Null()
			}
			return vm.ToValue(v)
		})
	case "hasAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(el.HasAttribute(call.Argument(0).String()))
		})
	case "hasAttributeNS":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(el.HasAttributeNS(nsArg(call.Argument(0)), call.Argument(1).String()))
		})
	}
	return goja.Undefined()
}

// nsArg maps a null namespace argument to "".
func nsArg(v goja.Value) string {
	if goja.IsNull(v) || goja.IsUndefined(v) {
		return ""
	}
	return v.String()
}

func textContent(n dom.Node) string {
	if t, ok := n.(dom.Text); ok {
		return t.Data()
	}
	var out string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out += textContent(c)
	}
	return out
}

func (a *nodeAccessor) Set(key string, val goja.Value) bool { return false }

func (a *nodeAccessor) Has(key string) bool {
	for _, k := range nodeKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (a *nodeAccessor) Delete(key string) bool { return false }

func (a *nodeAccessor) Keys() []string { return nodeKeys }
