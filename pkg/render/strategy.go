package render

import "github.com/vango-dev/nsdom/pkg/vdom"

// Strategy is the way a previous vnode is turned into the next one.
type Strategy uint8

const (
	StrategyNone    Strategy = iota // Both absent
	StrategyMount                   // Create the next node
	StrategyPatch                   // Update the live node in place
	StrategyReplace                 // Create the next node where the old one is
	StrategyRemove                  // Detach the old node

	strategyCount
)

// String returns the string representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyMount:
		return "mount"
	case StrategyPatch:
		return "patch"
	case StrategyReplace:
		return "replace"
	case StrategyRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Strategies returns every strategy in order.
func Strategies() []Strategy {
	out := make([]Strategy, 0, strategyCount)
	for s := StrategyNone; s < strategyCount; s++ {
		out = append(out, s)
	}
	return out
}

// Decide picks the strategy for turning prev into next. Nodes of the same
// kind and tag are patched; anything else is replaced.
func Decide(prev, next *vdom.VNode) Strategy {
	switch {
	case prev == nil && next == nil:
		return StrategyNone
	case prev == nil:
		return StrategyMount
	case next == nil:
		return StrategyRemove
	case prev.Kind != next.Kind || prev.Tag != next.Tag:
		return StrategyReplace
	default:
		return StrategyPatch
	}
}
