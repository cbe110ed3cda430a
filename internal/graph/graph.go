// Package graph holds the backend module dependency graph and resolves a
// module's declared dependencies. Resolution is one level deep: the
// dependencies of a dependency are never followed.
package graph

import (
	"sort"

	"github.com/modpack/cli/internal/module"
)

// Graph maps a backend module name to its descriptor.
// It is built fresh for every invocation and never mutated afterwards.
type Graph map[string]module.Backend

// Build indexes modules by name. A later module with the same name replaces
// an earlier one.
func Build(modules []module.Backend) Graph {
	g := make(Graph, len(modules))
	for _, m := range modules {
		g[m.Name] = m
	}
	return g
}

// Get returns the module with the given name.
func (g Graph) Get(name string) (module.Backend, bool) {
	m, ok := g[name]
	return m, ok
}

// Names returns the module names in lexical order.
func (g Graph) Names() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the direct dependencies of name. An unknown name yields an
// empty result, not an error. With ScopeFull every returned edge is promoted
// to full; with ScopeAPI each edge keeps its declared scope. Declared order
// and duplicates are preserved, and names missing from the graph are kept.
func (g Graph) Resolve(name string, scope module.Scope) []module.Dependency {
	m, ok := g[name]
	if !ok {
		return []module.Dependency{}
	}

	resolved := make([]module.Dependency, 0, len(m.Dependencies))
	for _, dep := range m.Dependencies {
		effective := dep.Scope
		if scope == module.ScopeFull {
			effective = module.ScopeFull
		}
		resolved = append(resolved, module.Dependency{Module: dep.Module, Scope: effective})
	}
	return resolved
}

// Dependents returns the names of modules that declare a dependency on name,
// in lexical order.
func (g Graph) Dependents(name string) []string {
	var out []string
	for _, other := range g.Names() {
		for _, dep := range g[other].Dependencies {
			if dep.Module == name {
				out = append(out, other)
				break
			}
		}
	}
	return out
}
