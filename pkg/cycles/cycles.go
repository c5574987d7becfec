package cycles

import (
	"sort"

	"github.com/ritzau/lockgraph/pkg/graph"
	"github.com/ritzau/lockgraph/pkg/model"
	"gonum.org/v1/gonum/graph/topo"
)

// ModuleCycle represents a circular requires chain among locked modules.
type ModuleCycle struct {
	Modules []string // Module names in the cycle, lexically sorted
}

// FindModuleCycles reports every group of locked modules whose requires
// edges form a cycle. The tree builder truncates these structurally during
// display; this is the diagnostic view that names them explicitly.
func FindModuleCycles(lock *model.LockGraph) []ModuleCycle {
	mg := graph.FromLock(lock)
	sccs := topo.TarjanSCC(mg.Graph())

	var cycles []ModuleCycle
	for _, scc := range sccs {
		if len(scc) < 2 {
			continue
		}

		names := make([]string, 0, len(scc))
		for _, node := range scc {
			names = append(names, mg.Name(node.ID()))
		}
		sort.Strings(names)
		cycles = append(cycles, ModuleCycle{Modules: names})
	}

	// Deterministic report order across runs
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i].Modules[0] < cycles[j].Modules[0]
	})
	return cycles
}
