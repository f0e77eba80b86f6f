package vdom

import "fmt"

// H creates an element vnode from a tag, a prop mapping and an optional
// child. It is the plain builder behind the tag helpers.
func H(tag string, props Props, child *VNode) *VNode {
	if props == nil {
		props = Props{}
	}
	return &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: props,
		Child: child,
	}
}

// El creates an element with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, Props, *VNode or string (a text child).
// A second child is kept out of the tree and reported by Validate.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: make(Props),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			if !v.IsEmpty() {
				node.Props[v.Key] = v.Value
			}

		case []Attr:
			for _, a := range v {
				if !a.IsEmpty() {
					node.Props[a.Key] = a.Value
				}
			}

		case Props:
			for k, val := range v {
				node.Props[k] = val
			}

		case *VNode:
			if v != nil {
				node.addChild(v)
			}

		case string:
			node.addChild(Text(v))

		default:
			if node.invalid == "" {
				node.invalid = fmt.Sprintf("unsupported argument of type %T", v)
			}
		}
	}

	return node
}

func (v *VNode) addChild(child *VNode) {
	if v.Child == nil {
		v.Child = child
		return
	}
	v.extra++
}

// HTML elements

func Div(args ...any) *VNode  { return El("div", args...) }
func Span(args ...any) *VNode { return El("span", args...) }
func P(args ...any) *VNode    { return El("p", args...) }

// SVG elements

func SVG(args ...any) *VNode    { return El("svg", args...) }
func G(args ...any) *VNode      { return El("g", args...) }
func Path(args ...any) *VNode   { return El("path", args...) }
func Circle(args ...any) *VNode { return El("circle", args...) }
func Rect(args ...any) *VNode   { return El("rect", args...) }
func Image(args ...any) *VNode  { return El("image", args...) }
func Use(args ...any) *VNode    { return El("use", args...) }

// MathML elements

func Math(args ...any) *VNode { return El("math", args...) }
