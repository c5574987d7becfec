package output

import (
	"reflect"
	"testing"

	"github.com/ritzau/lockgraph/pkg/model"
	"github.com/ritzau/lockgraph/pkg/tree"
)

func TestTreeLines(t *testing.T) {
	g := model.NewLockGraph()
	g.AddModule(&model.ModuleRecord{
		Name:     "Plack",
		Version:  "1.0039",
		Dist:     "MIYAGAWA/Plack-1.0039.tar.gz",
		Requires: map[string]string{"HTTP::Message": "", "Missing::Dep": ""},
	})
	g.AddModule(&model.ModuleRecord{
		Name:    "HTTP::Message",
		Version: "6.06",
		Dist:    "GAAS/HTTP-Message-6.06.tar.gz",
	})

	lines := TreeLines(tree.Build(g, nil), "  ")

	want := []string{
		"MIYAGAWA/Plack-1.0039.tar.gz",
		"  GAAS/HTTP-Message-6.06.tar.gz",
		"  Missing::Dep", // placeholder renders as bare name
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("TreeLines = %v, want %v", lines, want)
	}
}

func TestTreeLinesCustomIndent(t *testing.T) {
	g := model.NewLockGraph()
	g.AddModule(&model.ModuleRecord{Name: "A", Requires: map[string]string{"B": ""}})
	g.AddModule(&model.ModuleRecord{Name: "B"})

	lines := TreeLines(tree.Build(g, nil), "....")

	want := []string{"A", "....B"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("TreeLines = %v, want %v", lines, want)
	}
}
