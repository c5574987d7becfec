package graph

import (
	"github.com/ritzau/lockgraph/pkg/model"
	"gonum.org/v1/gonum/graph/simple"
)

// ModuleGraph projects a lock graph onto a gonum directed graph, for
// algorithms (SCC, reachability) that want the generic graph interfaces.
// Requires edges pointing outside the lock are dropped here: a missing
// module cannot participate in a cycle.
type ModuleGraph struct {
	graph  *simple.DirectedGraph
	names  map[int64]string // graph ID -> module name
	ids    map[string]int64 // module name -> graph ID
	nextID int64
}

// NewModuleGraph creates an empty module graph.
func NewModuleGraph() *ModuleGraph {
	return &ModuleGraph{
		graph: simple.NewDirectedGraph(),
		names: make(map[int64]string),
		ids:   make(map[string]int64),
	}
}

// FromLock builds a module graph from the lock graph's requires edges.
func FromLock(lock *model.LockGraph) *ModuleGraph {
	mg := NewModuleGraph()

	// Deterministic node IDs: insert in lexical name order
	for _, name := range lock.ModuleNames() {
		mg.AddModule(name)
	}
	for _, name := range lock.ModuleNames() {
		rec := lock.Lookup(name)
		for _, dep := range rec.RequiredModules() {
			if lock.Lookup(dep) == nil {
				continue
			}
			mg.AddDependency(name, dep)
		}
	}
	return mg
}

// AddModule adds a module node to the graph if not already present.
func (mg *ModuleGraph) AddModule(name string) {
	if _, exists := mg.ids[name]; exists {
		return
	}

	mg.names[mg.nextID] = name
	mg.ids[name] = mg.nextID
	mg.graph.AddNode(simple.Node(mg.nextID))
	mg.nextID++
}

// AddDependency adds a requires edge from one module to another. Self-loops
// are ignored; simple.DirectedGraph rejects them and a self-requires carries
// no information for cycle analysis anyway.
func (mg *ModuleGraph) AddDependency(from, to string) {
	if from == to {
		return
	}
	mg.AddModule(from)
	mg.AddModule(to)

	fromID := mg.ids[from]
	toID := mg.ids[to]
	if !mg.graph.HasEdgeFromTo(fromID, toID) {
		mg.graph.SetEdge(mg.graph.NewEdge(mg.graph.Node(fromID), mg.graph.Node(toID)))
	}
}

// Name returns the module name for a graph node ID, or "" if unknown.
func (mg *ModuleGraph) Name(id int64) string {
	return mg.names[id]
}

// Graph returns the underlying directed graph.
func (mg *ModuleGraph) Graph() *simple.DirectedGraph {
	return mg.graph
}
