package tree

// Visitor is invoked once per node during a walk, before the node's children.
// depth is 0 for the first visited level.
type Visitor func(node *Node, depth int)

// Walk performs a deterministic pre-order depth-first traversal of the tree.
//
// With skipRoot true the root itself is not visited and its direct children
// are reported at depth 0 (the usual case: the root is synthetic). With
// skipRoot false the root is visited at depth 0 and its children at depth 1.
// Walk has no side effects of its own; rendering belongs to the visitor.
func Walk(t *Tree, visit Visitor, skipRoot bool) {
	if t == nil || t.Root == nil {
		return
	}
	if skipRoot {
		for _, child := range t.Root.Children {
			walkNode(child, 0, visit)
		}
		return
	}
	walkNode(t.Root, 0, visit)
}

func walkNode(n *Node, depth int, visit Visitor) {
	visit(n, depth)
	for _, child := range n.Children {
		walkNode(child, depth+1, visit)
	}
}

// FlatNode is one entry of a flattened walk.
type FlatNode struct {
	Node  *Node
	Depth int
}

// Flatten collects the walk into a slice, for callers that want the ordered
// sequence rather than a callback.
func Flatten(t *Tree, skipRoot bool) []FlatNode {
	var out []FlatNode
	Walk(t, func(n *Node, depth int) {
		out = append(out, FlatNode{Node: n, Depth: depth})
	}, skipRoot)
	return out
}
