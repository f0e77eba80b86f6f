package vdom

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Placeholder creates the node mounted when there is no tag: an empty
// text node.
func Placeholder() *VNode {
	return Text("")
}

// Chain nests nodes so each is the single child of the one before it and
// returns the outermost. Nil entries are skipped.
func Chain(nodes ...*VNode) *VNode {
	var root, last *VNode
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if root == nil {
			root = n
		} else {
			last.Child = n
		}
		last = n
	}
	return root
}
