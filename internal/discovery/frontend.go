package discovery

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/modpack/cli/internal/config"
	"github.com/modpack/cli/internal/module"
	"github.com/modpack/cli/internal/output"
)

// FrontendDiscoverer lists the feature folders below <sourceRoot>/modules.
type FrontendDiscoverer struct {
	projectRoot string
	cfg         config.FrontendConfig
}

// NewFrontendDiscoverer creates a discoverer rooted at projectRoot.
func NewFrontendDiscoverer(projectRoot string, cfg *config.Config) *FrontendDiscoverer {
	return &FrontendDiscoverer{projectRoot: projectRoot, cfg: cfg.Frontend}
}

// ModulesDir returns the project-relative directory holding the modules.
func (d *FrontendDiscoverer) ModulesDir() string {
	return path.Join(d.cfg.SourceRoot, "modules")
}

// Discover returns one module per subdirectory, sorted by name. Symlinks to
// directories count as modules; plain files are skipped.
func (d *FrontendDiscoverer) Discover(ctx context.Context) ([]module.Frontend, error) {
	dir := filepath.Join(d.projectRoot, filepath.FromSlash(d.ModulesDir()))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading frontend modules %s: %w", d.ModulesDir(), err)
	}

	modules := make([]module.Frontend, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil {
			output.Warn("skipping frontend entry", "name", entry.Name(), "error", err)
			continue
		}
		if !info.IsDir() {
			continue
		}

		name := entry.Name()
		meta, ok := d.cfg.Modules[name]
		if !ok {
			meta = config.FrontendModuleConfig{
				DisplayName: module.Capitalize(name),
				Description: name + " module",
			}
		}

		modules = append(modules, module.Frontend{
			Info: module.Info{
				Name:        name,
				DisplayName: meta.DisplayName,
				Description: meta.Description,
				Category:    module.CategoryFrontend,
			},
			Path:          path.Join(d.ModulesDir(), name),
			IncludeShared: true,
		})
	}

	sort.Slice(modules, func(i, j int) bool { return modules[i].Name < modules[j].Name })
	return modules, nil
}
