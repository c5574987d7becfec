package check

import (
	"sort"

	"github.com/ritzau/lockgraph/pkg/logging"
	"github.com/ritzau/lockgraph/pkg/model"
	"github.com/ritzau/lockgraph/pkg/tree"
	"github.com/ritzau/lockgraph/pkg/version"
)

// Result is the outcome of reconciling declared dependencies against the
// lock graph and the installed module set.
type Result struct {
	// Unsatisfied holds the declared requirements the lock graph cannot
	// prove satisfied, in declaration order.
	Unsatisfied []model.Requirement

	// Superfluous is the tree of installed modules unreachable from any
	// declared dependency, rooted at the unreachable set. Nil when nothing
	// is superfluous; an empty tree is never returned, so callers can
	// distinguish "nothing to report" without inspecting the tree.
	Superfluous *tree.Tree
}

// OK reports whether the reconciliation found nothing to complain about.
func (r *Result) OK() bool {
	return len(r.Unsatisfied) == 0 && r.Superfluous == nil
}

// Check reconciles the declared direct dependencies against the lock graph
// and the installed module inventory. It mutates none of its inputs; the same
// inputs always produce the same result.
//
// A requirement is unsatisfied when its module is absent from the lock, or
// locked at a version that does not meet the declared minimum. Separately,
// every installed module not reachable from the declared set through the
// lock's requires edges is superfluous.
func Check(modules *model.LockGraph, declared []model.Requirement, installed map[string]bool) *Result {
	result := &Result{}

	for _, req := range declared {
		rec := modules.Lookup(req.Module)
		if rec == nil || !version.Satisfies(rec.Version, req.Minimum) {
			result.Unsatisfied = append(result.Unsatisfied, req)
		}
	}

	reachable := closure(modules, declared)

	var orphans []string
	for name := range installed {
		if !reachable[name] {
			orphans = append(orphans, name)
		}
	}
	sort.Strings(orphans)

	if len(orphans) > 0 {
		logging.Debug("found superfluous modules", "count", len(orphans))
		result.Superfluous = tree.Build(modules, orphans)
	}

	return result
}

// closure computes the set of module names reachable from the declared
// dependencies by following requires edges through the lock graph. Names
// absent from the lock contribute nothing beyond themselves being skipped;
// they are reported through the unsatisfied pass instead.
func closure(modules *model.LockGraph, declared []model.Requirement) map[string]bool {
	reachable := make(map[string]bool)

	var visit func(name string)
	visit = func(name string) {
		if reachable[name] {
			return
		}
		rec := modules.Lookup(name)
		if rec == nil {
			return
		}
		reachable[name] = true
		for _, dep := range rec.RequiredModules() {
			visit(dep)
		}
	}

	for _, req := range declared {
		visit(req.Module)
	}
	return reachable
}
