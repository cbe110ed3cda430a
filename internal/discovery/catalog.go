package discovery

import (
	"context"

	"github.com/modpack/cli/internal/config"
	"github.com/modpack/cli/internal/graph"
	"github.com/modpack/cli/internal/module"
	"github.com/modpack/cli/internal/output"
)

// Catalog is the result of running every discoverer once.
type Catalog struct {
	Backend        []module.Backend
	Frontend       []module.Frontend
	Infrastructure []module.Infrastructure
	DBMigration    module.DBMigration

	// Graph indexes Backend by name.
	Graph graph.Graph
}

// Option configures Discover.
type Option func(*options)

type options struct {
	extractor FactsExtractor
}

// WithExtractor replaces the backend metadata extractor.
func WithExtractor(e FactsExtractor) Option {
	return func(o *options) {
		o.extractor = e
	}
}

// Discover runs all discoverers against projectRoot. A category that cannot
// be scanned is logged and left empty; only cancellation is returned as an error.
func Discover(ctx context.Context, projectRoot string, cfg *config.Config, opts ...Option) (*Catalog, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	c := &Catalog{
		DBMigration: DBMigration(cfg),
	}

	backend, err := NewBackendDiscoverer(projectRoot, cfg, o.extractor).Discover(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		output.Warn("backend discovery failed", "error", err)
	}
	c.Backend = backend

	frontend, err := NewFrontendDiscoverer(projectRoot, cfg).Discover(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		output.Error("frontend discovery failed", "error", err)
	}
	c.Frontend = frontend

	infra, err := NewInfrastructureDiscoverer(projectRoot, cfg).Discover(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		output.Warn("infrastructure discovery failed", "error", err)
	}
	c.Infrastructure = infra

	c.Graph = graph.Build(c.Backend)

	output.Debug("discovery complete",
		"backend", len(c.Backend),
		"frontend", len(c.Frontend),
		"infrastructure", len(c.Infrastructure),
	)
	return c, nil
}

// BackendModule returns the backend module with the given name.
func (c *Catalog) BackendModule(name string) (module.Backend, bool) {
	return c.Graph.Get(name)
}

// FrontendModule returns the frontend module with the given name.
func (c *Catalog) FrontendModule(name string) (module.Frontend, bool) {
	for _, m := range c.Frontend {
		if m.Name == name {
			return m, true
		}
	}
	return module.Frontend{}, false
}

// InfrastructureModule returns the infrastructure module with the given name.
func (c *Catalog) InfrastructureModule(name string) (module.Infrastructure, bool) {
	for _, m := range c.Infrastructure {
		if m.Name == name {
			return m, true
		}
	}
	return module.Infrastructure{}, false
}

// PackableInfrastructure returns the infrastructure modules that have files
// beyond the compose manifest.
func (c *Catalog) PackableInfrastructure() []module.Infrastructure {
	var out []module.Infrastructure
	for _, m := range c.Infrastructure {
		if m.HasDedicatedFiles() {
			out = append(out, m)
		}
	}
	return out
}

// TargetFilter selects categories for Targets. The zero value selects all.
type TargetFilter struct {
	Backend        bool
	Frontend       bool
	Infrastructure bool
}

func (f TargetFilter) all() bool {
	return !f.Backend && !f.Frontend && !f.Infrastructure
}

// Targets returns every pack target address, in the order: backend modules,
// backend/dbmigration, frontend modules, frontend, infrastructure, then
// infrastructure modules with dedicated files.
func (c *Catalog) Targets(f TargetFilter) []string {
	targets := []string{}

	if f.all() || f.Backend {
		for _, m := range c.Backend {
			targets = append(targets, m.Address())
		}
		targets = append(targets, c.DBMigration.Address())
	}
	if f.all() || f.Frontend {
		for _, m := range c.Frontend {
			targets = append(targets, m.Address())
		}
		targets = append(targets, string(module.CategoryFrontend))
	}
	if f.all() || f.Infrastructure {
		targets = append(targets, string(module.CategoryInfrastructure))
		for _, m := range c.PackableInfrastructure() {
			targets = append(targets, m.Address())
		}
	}

	return targets
}
