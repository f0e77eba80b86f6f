package render

import (
	"log/slog"

	"github.com/vango-dev/nsdom/internal/errors"
	"github.com/vango-dev/nsdom/pkg/dom"
	"github.com/vango-dev/nsdom/pkg/vdom"
)

// engine carries one render through the tree.
type engine struct {
	doc    dom.Document
	stats  *Stats
	logger *slog.Logger
}

// mount creates the DOM for node and its child chain and appends it to
// parent. A nil parent leaves the new node detached. node.DOM is set only
// once the whole subtree is built, so a failure leaves no DOM reference
// on node or its descendants.
func (e *engine) mount(node *vdom.VNode, parent dom.Node, inherited string) (dom.Node, error) {
	e.stats.record(StrategyMount)

	if node.Kind == vdom.KindText {
		text := e.doc.CreateTextNode(node.Text)
		e.stats.Created++
		if err := appendTo(parent, text); err != nil {
			return nil, err
		}
		node.DOM = text
		return text, nil
	}

	attrs, err := vdom.NormalizeProps(node.Props)
	if err != nil {
		return nil, errors.FromError(err, "E100").WithPath(node.Name())
	}

	ns := ResolveNamespace(node.Tag, attrs, inherited)
	el, err := e.createElement(node.Tag, ns)
	if err != nil {
		return nil, err
	}
	e.stats.Created++

	stats, err := ReconcileAttrs(el, nil, attrs, effectiveNamespace(el))
	e.stats.Attrs.Add(stats)
	if err != nil {
		return nil, err
	}

	if node.Child != nil {
		if _, err := e.mount(node.Child, el, ns); err != nil {
			return nil, err
		}
	}

	if err := appendTo(parent, el); err != nil {
		node.Child.ClearDOM()
		return nil, err
	}
	node.DOM = el

	e.logger.Debug("mounted element", "tag", node.Tag, "namespace", ns)
	return el, nil
}

func (e *engine) createElement(tag, ns string) (dom.Element, error) {
	var (
		el  dom.Element
		err error
	)
	if ns == "" {
		el, err = e.doc.CreateElement(tag)
	} else {
		el, err = e.doc.CreateElementNS(ns, tag)
	}
	if err != nil {
		return nil, errors.New("E120").
			WithDetailf("creating <%s> in namespace %q", tag, ns).Wrap(err)
	}
	return el, nil
}

func appendTo(parent, child dom.Node) error {
	if parent == nil {
		return nil
	}
	if err := parent.AppendChild(child); err != nil {
		return errors.New("E120").WithDetail("appending child").Wrap(err)
	}
	return nil
}
