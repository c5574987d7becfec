package model

import "sort"

// ModuleRecord represents one resolved third-party module in the lock graph.
type ModuleRecord struct {
	Name     string            `json:"-"`                  // Map key in the lock file, not serialized inline
	Version  string            `json:"version,omitempty"`  // Normalized version string; empty means unknown
	Dist     string            `json:"dist,omitempty"`     // Originating distribution (e.g., "AUTHOR/Foo-Bar-1.2.tar.gz")
	Requires map[string]string `json:"requires,omitempty"` // Required module name -> minimum version ("" = any)
}

// RequiredModules returns the names in Requires in lexical order.
// JSON objects carry no ordering, so lexical order is the stable iteration
// order used everywhere a deterministic result matters.
func (r *ModuleRecord) RequiredModules() []string {
	names := make([]string, 0, len(r.Requires))
	for name := range r.Requires {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LockGraph is the authoritative mapping of module name to resolved record.
// Requires edges may reference names absent from the graph; consumers must
// tolerate that (externally authored lock data), not fail on it.
type LockGraph struct {
	Modules map[string]*ModuleRecord `json:"modules"`
}

// NewLockGraph creates a new empty lock graph.
func NewLockGraph() *LockGraph {
	return &LockGraph{
		Modules: make(map[string]*ModuleRecord),
	}
}

// AddModule adds a record to the graph, replacing any record with the same name.
func (g *LockGraph) AddModule(rec *ModuleRecord) {
	if rec.Requires == nil {
		rec.Requires = make(map[string]string)
	}
	g.Modules[rec.Name] = rec
}

// Lookup returns the record for name, or nil if the graph does not contain it.
func (g *LockGraph) Lookup(name string) *ModuleRecord {
	return g.Modules[name]
}

// ModuleNames returns all locked module names in lexical order.
func (g *LockGraph) ModuleNames() []string {
	names := make([]string, 0, len(g.Modules))
	for name := range g.Modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TopLevelModules returns the names of modules with no discovered dependent
// within the graph, in lexical order. These are the roots of the dependency
// forest.
func (g *LockGraph) TopLevelModules() []string {
	required := make(map[string]bool)
	for _, rec := range g.Modules {
		for dep := range rec.Requires {
			required[dep] = true
		}
	}

	var roots []string
	for name := range g.Modules {
		if !required[name] {
			roots = append(roots, name)
		}
	}
	sort.Strings(roots)
	return roots
}

// Requirement is one entry of a project's direct-dependency declaration.
type Requirement struct {
	Module  string `json:"module"`
	Minimum string `json:"minimum,omitempty"` // "" means any version
}
