package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/ritzau/lockgraph/pkg/check"
	"github.com/ritzau/lockgraph/pkg/cycles"
	"github.com/ritzau/lockgraph/pkg/model"
	"github.com/ritzau/lockgraph/pkg/tree"
)

// Label returns the display text for a tree node: the distribution the
// module came from, or the bare name for placeholders and version-less
// records.
func Label(n *tree.Node) string {
	if n.Record == nil {
		return ""
	}
	if n.Record.Dist != "" {
		return n.Record.Dist
	}
	return n.Record.Name
}

// TreeLines renders the tree as indented lines: indent repeated depth times,
// then the node label. The root is synthetic and not rendered.
func TreeLines(t *tree.Tree, indent string) []string {
	var lines []string
	tree.Walk(t, func(n *tree.Node, depth int) {
		lines = append(lines, strings.Repeat(indent, depth)+Label(n))
	}, true)
	return lines
}

// PrintTree prints the locked dependency tree.
func PrintTree(t *tree.Tree, indent string) {
	for _, line := range TreeLines(t, indent) {
		fmt.Println(line)
	}
}

// PrintList prints a flat lexical listing of every locked distribution.
func PrintList(lock *model.LockGraph) {
	for _, name := range lock.ModuleNames() {
		rec := lock.Lookup(name)
		if rec.Dist != "" {
			fmt.Println(rec.Dist)
		} else {
			fmt.Println(rec.Name)
		}
	}
}

// PrintCheckReport prints the reconciliation outcome with colors.
func PrintCheckReport(result *check.Result, indent string) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	if result.OK() {
		green.Println("✓ All dependencies are satisfied and nothing is superfluous")
		return
	}

	if len(result.Unsatisfied) > 0 {
		bold.Println("Unsatisfied dependencies:")
		for _, req := range result.Unsatisfied {
			if req.Minimum != "" {
				red.Printf("  %s (>= %s)\n", req.Module, req.Minimum)
			} else {
				red.Printf("  %s\n", req.Module)
			}
		}
	}

	if result.Superfluous != nil {
		if len(result.Unsatisfied) > 0 {
			fmt.Println()
		}
		bold.Println("Superfluous modules (installed but not required):")
		for _, line := range TreeLines(result.Superfluous, indent) {
			yellow.Printf("  %s\n", line)
		}
	}
}

// PrintCycles prints the dependency-cycle diagnostic report.
func PrintCycles(found []cycles.ModuleCycle) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	if len(found) == 0 {
		green.Println("✓ No dependency cycles in the lock graph")
		return
	}

	red.Printf("Found %d dependency cycle(s):\n", len(found))
	for i, cycle := range found {
		fmt.Printf("  %d. %s\n", i+1, strings.Join(cycle.Modules, " -> "))
	}
}
