package tree

import (
	"github.com/ritzau/lockgraph/pkg/model"
)

// Node is one node of a dependency tree. A node either carries the locked
// record for a module, or stands in for a requires target absent from the
// lock graph (a placeholder leaf: name only, no version or dist).
type Node struct {
	Record      *model.ModuleRecord
	Placeholder bool
	Children    []*Node
}

// Tree is a rooted dependency tree. The root is synthetic unless the tree was
// built from a single explicit module; its children are the top-level modules
// (or the explicitly requested roots).
type Tree struct {
	Root *Node
}

// Build converts the flat lock graph into a rooted dependency tree.
//
// When roots is nil the direct children of the synthetic root are the
// top-level modules: those never appearing as a requires target anywhere in
// the graph, in lexical order. When roots is supplied (e.g., the superfluous
// set from a check) those modules become the children instead, in the given
// order, regardless of dependent discovery.
//
// Requires targets missing from the graph become placeholder leaves rather
// than failing the build. A requires edge back to a module already on the
// current root-to-node path stops descending and leaves the module as a leaf,
// so cyclic lock data always yields a finite tree. The guard is per descent
// path, not global: the same module legitimately appears in multiple
// independent branches.
func Build(modules *model.LockGraph, roots []string) *Tree {
	if roots == nil {
		roots = modules.TopLevelModules()
	}

	root := &Node{}
	onPath := make(map[string]bool)
	for _, name := range roots {
		root.Children = append(root.Children, buildNode(modules, name, onPath))
	}
	return &Tree{Root: root}
}

func buildNode(modules *model.LockGraph, name string, onPath map[string]bool) *Node {
	rec := modules.Lookup(name)
	if rec == nil {
		// Inconsistent lock data; degrade to a placeholder leaf
		return &Node{
			Record:      &model.ModuleRecord{Name: name},
			Placeholder: true,
		}
	}

	node := &Node{Record: rec}

	onPath[name] = true
	for _, dep := range rec.RequiredModules() {
		if onPath[dep] {
			// Cycle back into the current path; terminate this branch
			node.Children = append(node.Children, &Node{Record: modules.Lookup(dep)})
			continue
		}
		node.Children = append(node.Children, buildNode(modules, dep, onPath))
	}
	delete(onPath, name)

	return node
}
