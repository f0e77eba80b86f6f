package render

import (
	"github.com/vango-dev/nsdom/internal/errors"
	"github.com/vango-dev/nsdom/pkg/dom"
	"github.com/vango-dev/nsdom/pkg/vdom"
)

// patch turns the DOM owned by prev into the DOM for next under parent
// and returns the node now representing next (nil when removed).
//
// Ownership moves from prev to next only after next's attributes and
// child chain were reconciled, and a replaced node is swapped in only
// after its subtree mounted. When patch fails, prev still owns every live
// node it owned before.
func (e *engine) patch(prev, next *vdom.VNode, parent dom.Node, inherited string) (dom.Node, error) {
	strategy := Decide(prev, next)

	switch strategy {
	case StrategyNone:
		return nil, nil

	case StrategyMount:
		return e.mount(next, parent, inherited)

	case StrategyRemove:
		old, err := liveChild(prev, parent)
		if err != nil {
			return nil, err
		}
		e.stats.record(StrategyRemove)
		if err := parent.RemoveChild(old); err != nil {
			return nil, errors.New("E120").WithPath(prev.Name()).
				WithDetail("removing child").Wrap(err)
		}
		prev.ClearDOM()
		e.logger.Debug("removed node", "node", prev.Name())
		return nil, nil

	case StrategyReplace:
		old, err := liveChild(prev, parent)
		if err != nil {
			return nil, err
		}
		e.stats.record(StrategyReplace)
		owned := ownedSlots(prev)
		created, err := e.mount(next, nil, inherited)
		if err != nil {
			next.ClearDOM()
			owned.restore()
			return nil, err
		}
		if err := parent.ReplaceChild(created, old); err != nil {
			next.ClearDOM()
			owned.restore()
			return nil, errors.New("E120").WithPath(next.Name()).
				WithDetail("replacing child").Wrap(err)
		}
		owned.release()
		e.logger.Debug("replaced node", "from", prev.Name(), "to", next.Name())
		return created, nil
	}

	return e.patchInPlace(prev, next, parent, inherited)
}

func (e *engine) patchInPlace(prev, next *vdom.VNode, parent dom.Node, inherited string) (dom.Node, error) {
	live, err := liveChild(prev, parent)
	if err != nil {
		return nil, err
	}
	e.stats.record(StrategyPatch)

	if next.Kind == vdom.KindText {
		text, ok := live.(dom.Text)
		if !ok {
			return nil, errors.New("E121").WithPath(prev.Name()).
				WithDetail("the live node of a text vnode is not a text node")
		}
		if text.Data() != next.Text {
			text.SetData(next.Text)
		}
		transfer(prev, next)
		return live, nil
	}

	el, ok := live.(dom.Element)
	if !ok {
		return nil, errors.New("E121").WithPath(prev.Name()).
			WithDetail("the live node of an element vnode is not an element")
	}

	prevAttrs, err := vdom.NormalizeProps(prev.Props)
	if err != nil {
		return nil, errors.FromError(err, "E100").WithPath(prev.Name())
	}
	nextAttrs, err := vdom.NormalizeProps(next.Props)
	if err != nil {
		return nil, errors.FromError(err, "E100").WithPath(next.Name())
	}

	ns := ResolveNamespace(next.Tag, nextAttrs, inherited)
	stats, err := ReconcileAttrs(el, prevAttrs, nextAttrs, effectiveNamespace(el))
	e.stats.Attrs.Add(stats)
	if err != nil {
		return nil, err
	}

	if _, err := e.patch(prev.Child, next.Child, el, ns); err != nil {
		return nil, err
	}

	transfer(prev, next)
	return el, nil
}

// transfer moves the DOM reference from prev to next. Rendering the same
// vnode again keeps it.
func transfer(prev, next *vdom.VNode) {
	if prev == next {
		return
	}
	next.DOM = prev.DOM
	prev.DOM = nil
}

// slots records the DOM references held by a vnode chain. A vnode can
// appear in both the old and the new chain, and mounting the new chain
// overwrites its slot.
type slot struct {
	node *vdom.VNode
	dom  dom.Node
}

type slots []slot

func ownedSlots(v *vdom.VNode) slots {
	var s slots
	for n := v; n != nil; n = n.Child {
		s = append(s, slot{node: n, dom: n.DOM})
	}
	return s
}

// restore puts the recorded references back.
func (s slots) restore() {
	for _, slot := range s {
		slot.node.DOM = slot.dom
	}
}

// release clears every slot that still holds its recorded node.
func (s slots) release() {
	for _, slot := range s {
		if slot.node.DOM == slot.dom {
			slot.node.DOM = nil
		}
	}
}

// liveChild returns prev's DOM node after checking it is a child of
// parent. Anything else means the root state no longer describes the DOM.
func liveChild(prev *vdom.VNode, parent dom.Node) (dom.Node, error) {
	if prev.DOM == nil {
		return nil, errors.New("E121").WithPath(prev.Name()).
			WithDetail("the previous vnode has no DOM node")
	}
	if parent == nil {
		return nil, errors.New("E121").WithPath(prev.Name()).
			WithDetail("no parent to reconcile under")
	}
	p := prev.DOM.ParentNode()
	if p == nil || !p.IsSameNode(parent) {
		return nil, errors.New("E121").WithPath(prev.Name()).
			WithDetail("the previous vnode's DOM node is not a child of the expected parent")
	}
	return prev.DOM, nil
}
