package render

import (
	"sort"

	"github.com/vango-dev/nsdom/internal/errors"
	"github.com/vango-dev/nsdom/pkg/dom"
	"github.com/vango-dev/nsdom/pkg/vdom"
)

// AttrStats counts the attribute operations a reconcile performed.
type AttrStats struct {
	Sets    int
	Removes int
}

// Add adds other to s.
func (s *AttrStats) Add(other AttrStats) {
	s.Sets += other.Sets
	s.Removes += other.Removes
}

// Total returns the number of DOM attribute operations.
func (s AttrStats) Total() int {
	return s.Sets + s.Removes
}

// ReconcileAttrs updates el so its attributes go from prev to next. Keys
// are visited in sorted order and only changed values touch the DOM. ns
// is the namespace el was created in, "" for HTML; it decides whether
// class is written through the className property.
//
// The first failing DOM call stops the reconcile and is returned as E120.
// Attributes written before it stay written.
func ReconcileAttrs(el dom.Element, prev, next vdom.Attrs, ns string) (AttrStats, error) {
	var stats AttrStats

	for _, key := range unionKeys(prev, next) {
		pv, nv := prev.Get(key), next.Get(key)
		if pv.Equal(nv) {
			continue
		}
		if !nv.IsSet() {
			if err := removeAttr(el, key); err != nil {
				return stats, errors.New("E120").
					WithDetailf("removing attribute %q", key).Wrap(err)
			}
			stats.Removes++
			continue
		}
		if err := setAttr(el, key, nv.Serialize(), ns); err != nil {
			return stats, errors.New("E120").
				WithDetailf("setting attribute %q", key).Wrap(err)
		}
		stats.Sets++
	}

	return stats, nil
}

func setAttr(el dom.Element, key, value, ns string) error {
	if key == "class" && ns == "" {
		return el.SetClassName(value)
	}
	if prefix, _ := dom.SplitQualifiedName(key); prefix != "" {
		if uri, ok := dom.PrefixNamespace(prefix); ok {
			return el.SetAttributeNS(uri, key, value)
		}
	}
	return el.SetAttribute(key, value)
}

func removeAttr(el dom.Element, key string) error {
	if prefix, local := dom.SplitQualifiedName(key); prefix != "" {
		if uri, ok := dom.PrefixNamespace(prefix); ok {
			return el.RemoveAttributeNS(uri, local)
		}
	}
	return el.RemoveAttribute(key)
}

func unionKeys(prev, next vdom.Attrs) []string {
	keys := make([]string, 0, len(prev)+len(next))
	for k := range prev {
		keys = append(keys, k)
	}
	for k := range next {
		if _, ok := prev[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
