// Package plan turns a pack request into the ordered list of specs to run.
package plan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/modpack/cli/internal/discovery"
	oerrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/module"
	"github.com/modpack/cli/internal/packspec"
)

// ErrNoTarget is returned when neither a target nor an --all flag was given.
var ErrNoTarget = errors.New("no target specified")

// Request describes what to pack.
type Request struct {
	Target string

	All               bool
	AllBackend        bool
	AllFrontend       bool
	AllInfrastructure bool

	Deps   packspec.DepsMode
	Layers []module.Layer
}

// Pack is one spec together with the target it was built for.
type Pack struct {
	Target string
	Spec   packspec.Spec
}

// Plan is an ordered batch of packs.
type Plan struct {
	// Title describes the batch, e.g. "Packing all backend modules".
	Title string
	Packs []Pack
}

// NotFoundError reports an unknown target or module.
type NotFoundError struct {
	// Kind is "backend", "frontend", "infrastructure" or empty for an
	// unrecognized target.
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Kind == "" {
		return "unknown target: " + e.Name
	}
	return fmt.Sprintf("%s module not found: %s", e.Kind, e.Name)
}

// Unwrap lets errors.Is match oerrors.ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	return oerrors.ErrNotFound
}

// Build resolves req against the catalog. The --all flags take precedence
// over a target, in the order all, all-backend, all-frontend,
// all-infrastructure.
func Build(cat *discovery.Catalog, b *packspec.Builder, req Request) (*Plan, error) {
	deps := req.Deps
	if deps == "" {
		deps = packspec.DepsNone
	}

	switch {
	case req.All:
		p := &Plan{Title: "Packing all modules"}
		p.addBackend(cat, b, deps, req.Layers)
		p.addFrontend(cat, b)
		p.add("infrastructure", b.FullInfrastructure())
		return p, nil

	case req.AllBackend:
		p := &Plan{Title: "Packing all backend modules"}
		p.addBackend(cat, b, deps, req.Layers)
		return p, nil

	case req.AllFrontend:
		p := &Plan{Title: "Packing all frontend modules"}
		p.addFrontend(cat, b)
		return p, nil

	case req.AllInfrastructure:
		p := &Plan{Title: "Packing all infrastructure modules"}
		for _, m := range cat.PackableInfrastructure() {
			p.add(m.Address(), b.Infrastructure(m))
		}
		p.add("infrastructure", b.FullInfrastructure())
		return p, nil

	case req.Target != "":
		return target(cat, b, req.Target, deps, req.Layers)

	default:
		return nil, ErrNoTarget
	}
}

func target(cat *discovery.Catalog, b *packspec.Builder, t string, deps packspec.DepsMode, layers []module.Layer) (*Plan, error) {
	category, name, qualified := strings.Cut(t, "/")
	if !qualified {
		category, name = "", t
	}

	switch {
	case t == string(module.CategoryFrontend):
		return single("Packing all frontend", "frontend", b.FullFrontend()), nil

	case t == string(module.CategoryInfrastructure):
		return single("Packing all infrastructure", "infrastructure", b.FullInfrastructure()), nil

	case name == discovery.DBMigrationName && (category == "" || category == string(module.CategoryBackend)):
		m := cat.DBMigration
		return single("Packing "+m.Address()+" ("+m.DisplayName+")", m.Address(), b.DBMigration(m)), nil

	case category == string(module.CategoryBackend) || category == "" && isBackend(cat, name):
		m, ok := cat.BackendModule(name)
		if !ok {
			return nil, &NotFoundError{Kind: "backend", Name: name}
		}
		title := fmt.Sprintf("Packing %s (deps: %s", m.Address(), deps)
		if len(layers) > 0 {
			title += " layers: " + joinLayers(layers)
		}
		title += ")"
		return single(title, m.Address(), b.Backend(m, cat.Graph, deps, layers)), nil

	case category == string(module.CategoryFrontend):
		m, ok := cat.FrontendModule(name)
		if !ok {
			return nil, &NotFoundError{Kind: "frontend", Name: name}
		}
		return single("Packing "+m.Address(), m.Address(), b.Frontend(m)), nil

	case category == string(module.CategoryInfrastructure):
		m, ok := cat.InfrastructureModule(name)
		if !ok {
			return nil, &NotFoundError{Kind: "infrastructure", Name: name}
		}
		return single("Packing "+m.Address(), m.Address(), b.Infrastructure(m)), nil

	default:
		return nil, &NotFoundError{Name: t}
	}
}

func isBackend(cat *discovery.Catalog, name string) bool {
	_, ok := cat.BackendModule(name)
	return ok
}

func single(title, target string, s packspec.Spec) *Plan {
	return &Plan{Title: title, Packs: []Pack{{Target: target, Spec: s}}}
}

func (p *Plan) add(target string, s packspec.Spec) {
	p.Packs = append(p.Packs, Pack{Target: target, Spec: s})
}

func (p *Plan) addBackend(cat *discovery.Catalog, b *packspec.Builder, deps packspec.DepsMode, layers []module.Layer) {
	for _, m := range cat.Backend {
		p.add(m.Address(), b.Backend(m, cat.Graph, deps, layers))
	}
}

func (p *Plan) addFrontend(cat *discovery.Catalog, b *packspec.Builder) {
	for _, m := range cat.Frontend {
		p.add(m.Address(), b.Frontend(m))
	}
}

func joinLayers(layers []module.Layer) string {
	parts := make([]string, len(layers))
	for i, l := range layers {
		parts[i] = string(l)
	}
	return strings.Join(parts, ",")
}
