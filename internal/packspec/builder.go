package packspec

import (
	"fmt"
	"path"
	"strings"

	"github.com/modpack/cli/internal/config"
	"github.com/modpack/cli/internal/graph"
	"github.com/modpack/cli/internal/module"
)

const packedSuffix = "-packed.txt"

// fullInfrastructureExtensions are the file types in the full infrastructure pack.
var fullInfrastructureExtensions = []string{"*.yaml", "*.yml", "*.json", "*.sql", "*.sh", "*.md", ".env*"}

// Builder turns module descriptors into specs using the output and ignore
// settings of one configuration.
type Builder struct {
	cfg *config.Config
}

// NewBuilder creates a Builder. cfg must have defaults applied.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg}
}

// Build dispatches on the descriptor's category. mode and layers only apply
// to backend modules.
func (b *Builder) Build(d module.Descriptor, g graph.Graph, mode DepsMode, layers []module.Layer) (Spec, error) {
	switch m := d.(type) {
	case module.Backend:
		return b.Backend(m, g, mode, layers), nil
	case module.Frontend:
		return b.Frontend(m), nil
	case module.Infrastructure:
		return b.Infrastructure(m), nil
	case module.DBMigration:
		return b.DBMigration(m), nil
	default:
		return Spec{}, fmt.Errorf("unsupported module type %T", d)
	}
}

// Backend builds the spec for a bounded context.
//
// Includes the module's api package always, then either its whole core tree
// or only the selected layers, then each resolved dependency (api package or
// whole tree by scope), then the application config files.
func (b *Builder) Backend(mod module.Backend, g graph.Graph, mode DepsMode, layers []module.Layer) Spec {
	var deps []module.Dependency
	suffix := ""

	if len(mod.Dependencies) > 0 {
		switch mode {
		case DepsAPI:
			deps = g.Resolve(mod.Name, module.ScopeAPI)
			suffix = "-deps"
		case DepsFull:
			deps = g.Resolve(mod.Name, module.ScopeFull)
			suffix = "-deps-full"
		}
	}

	if len(layers) > 0 {
		suffix += "-" + joinLayers(layers, "-")
	}

	header := "Bounded Context: " + mod.DisplayName
	if len(layers) > 0 {
		header += "\n\n⚠️ PARTIAL VIEW - Only " + joinLayers(layers, ", ") + " layer(s) included."
		if missing := missingLayers(layers); len(missing) > 0 {
			header += " Missing: " + joinLayers(missing, ", ") + "."
		}
		header += " API package always included."
	}
	header += dependencySummary(deps)

	src := b.cfg.Backend.SourceRoot
	include := []string{path.Join(src, mod.Name, "api") + "/**/*.java"}
	if len(layers) > 0 {
		for _, l := range layers {
			pattern, ok := mod.Layers[l]
			if !ok {
				pattern = mod.Name + "/core/" + string(l) + "/**/*.java"
			}
			include = append(include, src+"/"+pattern)
		}
	} else {
		include = append(include, path.Join(src, mod.Name, "core")+"/**/*.java")
	}
	for _, dep := range deps {
		if dep.Scope == module.ScopeAPI {
			include = append(include, path.Join(src, dep.Module, "api")+"/**/*.java")
		} else {
			include = append(include, path.Join(src, dep.Module)+"/**/*.java")
		}
	}
	include = append(include, b.cfg.Backend.ResourcesRoot+"/application*.yml")

	return b.spec(module.CategoryBackend, mod.Name+suffix, header, include, b.cfg.Backend.Ignore)
}

// Frontend builds the spec for one frontend module plus the shared code.
func (b *Builder) Frontend(mod module.Frontend) Spec {
	include := []string{
		mod.Path + "/**/*.tsx",
		mod.Path + "/**/*.ts",
	}
	if mod.IncludeShared {
		include = append(include, b.SharedPaths()...)
	}
	include = append(include, b.ProjectConfigPaths()...)

	header := "Frontend: " + mod.DisplayName + " Module + Shared"
	return b.spec(module.CategoryFrontend, mod.Name, header, include, b.cfg.Frontend.Ignore)
}

// FullFrontend builds the spec covering the whole frontend application.
func (b *Builder) FullFrontend() Spec {
	src := b.cfg.Frontend.SourceRoot
	include := []string{
		src + "/**/*.tsx",
		src + "/**/*.ts",
	}
	include = append(include, b.ProjectConfigPaths()...)

	return b.spec(module.CategoryFrontend, "all", "Frontend: Complete Application", include, b.cfg.Frontend.Ignore)
}

// Infrastructure builds the spec for one service module.
func (b *Builder) Infrastructure(mod module.Infrastructure) Spec {
	header := "Infrastructure: " + mod.DisplayName + " - " + mod.Description
	return b.spec(module.CategoryInfrastructure, mod.Name, header, clone(mod.Patterns), b.cfg.Infrastructure.Ignore)
}

// FullInfrastructure builds the spec covering the whole infrastructure tree.
func (b *Builder) FullInfrastructure() Spec {
	include := make([]string, 0, len(fullInfrastructureExtensions))
	for _, ext := range fullInfrastructureExtensions {
		include = append(include, b.cfg.Infrastructure.Root+"/**/"+ext)
	}
	header := "Infrastructure: Complete Docker & Services Setup"
	return b.spec(module.CategoryInfrastructure, "all", header, include, b.cfg.Infrastructure.Ignore)
}

// DBMigration builds the spec for the migration changelogs. The output goes
// to the backend folder.
func (b *Builder) DBMigration(mod module.DBMigration) Spec {
	header := mod.DisplayName + " - " + mod.Description +
		"\n\nLiquibase/Flyway migration files from " + mod.BasePath
	return b.spec(module.CategoryBackend, mod.Name, header, clone(mod.Patterns), b.cfg.DBMigration.Ignore)
}

// SharedPaths returns the shared frontend globs included with every module.
func (b *Builder) SharedPaths() []string {
	src := b.cfg.Frontend.SourceRoot
	return []string{
		src + "/shared/**/*.tsx",
		src + "/shared/**/*.ts",
		src + "/App.tsx",
		src + "/main.tsx",
	}
}

// ProjectConfigPaths returns the frontend build configuration globs.
func (b *Builder) ProjectConfigPaths() []string {
	dir := b.cfg.Frontend.ProjectDir
	return []string{
		dir + "/package.json",
		dir + "/vite.config.*",
		dir + "/tailwind.config.*",
	}
}

// OutputPath returns <output.dir>/<category>/<stem>-packed.txt.
func (b *Builder) OutputPath(category module.Category, stem string) string {
	return path.Join(b.cfg.Output.Dir, string(category), stem+packedSuffix)
}

func (b *Builder) spec(category module.Category, stem, header string, include, ignore []string) Spec {
	out := b.cfg.Output
	topFiles := config.DefaultTopFilesLength
	if out.TopFilesLength != nil {
		topFiles = *out.TopFilesLength
	}

	return Spec{
		Output: Output{
			FilePath:         b.OutputPath(category, stem),
			Style:            out.Style,
			HeaderText:       header,
			RemoveComments:   deref(out.RemoveComments, true),
			RemoveEmptyLines: deref(out.RemoveEmptyLines, true),
			TopFilesLength:   topFiles,
			ShowLineNumbers:  out.ShowLineNumbers,
			CopyToClipboard:  out.CopyToClipboard,
		},
		Include: include,
		Ignore: Ignore{
			UseGitignore:       true,
			UseDefaultPatterns: true,
			CustomPatterns:     clone(ignore),
		},
		Security: Security{EnableSecurityCheck: true},
	}
}

// dependencySummary renders " + Dependencies (API: a, b; Full: c)".
func dependencySummary(deps []module.Dependency) string {
	if len(deps) == 0 {
		return ""
	}

	var api, full []string
	for _, d := range deps {
		if d.Scope == module.ScopeAPI {
			api = append(api, d.Module)
		} else {
			full = append(full, d.Module)
		}
	}

	var parts []string
	if len(api) > 0 {
		parts = append(parts, "API: "+strings.Join(api, ", "))
	}
	if len(full) > 0 {
		parts = append(parts, "Full: "+strings.Join(full, ", "))
	}
	return " + Dependencies (" + strings.Join(parts, "; ") + ")"
}

func missingLayers(selected []module.Layer) []module.Layer {
	var missing []module.Layer
	for _, l := range module.AllLayers() {
		found := false
		for _, s := range selected {
			if s == l {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, l)
		}
	}
	return missing
}

func joinLayers(layers []module.Layer, sep string) string {
	parts := make([]string, len(layers))
	for i, l := range layers {
		parts[i] = string(l)
	}
	return strings.Join(parts, sep)
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func deref(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
