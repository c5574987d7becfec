package cycles

import (
	"reflect"
	"testing"

	"github.com/ritzau/lockgraph/pkg/model"
)

func graphOf(t *testing.T, recs ...*model.ModuleRecord) *model.LockGraph {
	t.Helper()
	g := model.NewLockGraph()
	for _, rec := range recs {
		g.AddModule(rec)
	}
	return g
}

func TestFindModuleCyclesNone(t *testing.T) {
	g := graphOf(t,
		&model.ModuleRecord{Name: "A", Requires: map[string]string{"B": ""}},
		&model.ModuleRecord{Name: "B", Requires: map[string]string{"C": ""}},
		&model.ModuleRecord{Name: "C"},
	)

	if cycles := FindModuleCycles(g); len(cycles) != 0 {
		t.Errorf("expected no cycles in a chain, got %v", cycles)
	}
}

func TestFindModuleCyclesSimple(t *testing.T) {
	g := graphOf(t,
		&model.ModuleRecord{Name: "A", Requires: map[string]string{"B": ""}},
		&model.ModuleRecord{Name: "B", Requires: map[string]string{"A": ""}},
	)

	cycles := FindModuleCycles(g)
	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(cycles))
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(cycles[0].Modules, want) {
		t.Errorf("cycle = %v, want %v", cycles[0].Modules, want)
	}
}

func TestFindModuleCyclesMultiple(t *testing.T) {
	g := graphOf(t,
		&model.ModuleRecord{Name: "A", Requires: map[string]string{"B": ""}},
		&model.ModuleRecord{Name: "B", Requires: map[string]string{"C": ""}},
		&model.ModuleRecord{Name: "C", Requires: map[string]string{"A": ""}},
		&model.ModuleRecord{Name: "X", Requires: map[string]string{"Y": ""}},
		&model.ModuleRecord{Name: "Y", Requires: map[string]string{"X": ""}},
		&model.ModuleRecord{Name: "Solo"},
	)

	cycles := FindModuleCycles(g)
	if len(cycles) != 2 {
		t.Fatalf("expected 2 cycles, got %d: %v", len(cycles), cycles)
	}
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(cycles[0].Modules, want) {
		t.Errorf("first cycle = %v, want %v", cycles[0].Modules, want)
	}
	if want := []string{"X", "Y"}; !reflect.DeepEqual(cycles[1].Modules, want) {
		t.Errorf("second cycle = %v, want %v", cycles[1].Modules, want)
	}
}

func TestFindModuleCyclesIgnoresMissingTargets(t *testing.T) {
	// A requires Ghost which is not locked; no cycle can involve it
	g := graphOf(t,
		&model.ModuleRecord{Name: "A", Requires: map[string]string{"Ghost": ""}},
	)

	if cycles := FindModuleCycles(g); len(cycles) != 0 {
		t.Errorf("expected no cycles, got %v", cycles)
	}
}
