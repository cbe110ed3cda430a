package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/modpack/cli/internal/config"
	"github.com/modpack/cli/internal/module"
	"github.com/modpack/cli/internal/output"
)

// BackendDiscoverer finds backend bounded contexts by their metadata files.
type BackendDiscoverer struct {
	projectRoot string
	cfg         config.BackendConfig
	extractor   FactsExtractor
}

// NewBackendDiscoverer creates a discoverer rooted at projectRoot.
// A nil extractor selects RegexExtractor.
func NewBackendDiscoverer(projectRoot string, cfg *config.Config, extractor FactsExtractor) *BackendDiscoverer {
	if extractor == nil {
		extractor = RegexExtractor{}
	}
	return &BackendDiscoverer{
		projectRoot: projectRoot,
		cfg:         cfg.Backend,
		extractor:   extractor,
	}
}

// Discover scans <sourceRoot>/*/<metadataFile> one level deep and returns the
// modules sorted by name. Unreadable files and files without a package
// declaration are skipped.
func (d *BackendDiscoverer) Discover(ctx context.Context) ([]module.Backend, error) {
	srcDir := filepath.Join(d.projectRoot, filepath.FromSlash(d.cfg.SourceRoot))
	if info, err := os.Stat(srcDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("backend source root %s: %w", d.cfg.SourceRoot, fs.ErrNotExist)
	}

	fsys := os.DirFS(srcDir)
	matches, err := doublestar.Glob(fsys, "*/"+d.cfg.MetadataFile)
	if err != nil {
		return nil, fmt.Errorf("globbing backend metadata: %w", err)
	}
	sort.Strings(matches)

	modules := make([]module.Backend, 0, len(matches))
	for _, match := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := fs.ReadFile(fsys, match)
		if err != nil {
			output.Warn("skipping unreadable metadata file", "path", path.Join(d.cfg.SourceRoot, match), "error", err)
			continue
		}

		m, ok := d.parse(content)
		if !ok {
			output.Debug("no package declaration, skipping", "path", path.Join(d.cfg.SourceRoot, match))
			continue
		}
		modules = append(modules, m)
	}

	sort.SliceStable(modules, func(i, j int) bool { return modules[i].Name < modules[j].Name })
	return modules, nil
}

// parse builds the descriptor for one metadata file.
func (d *BackendDiscoverer) parse(content []byte) (module.Backend, bool) {
	facts, ok := d.extractor.Extract(content)
	if !ok {
		return module.Backend{}, false
	}

	return module.Backend{
		Info: module.Info{
			Name:        facts.Name,
			DisplayName: facts.DisplayName,
			Description: facts.Description,
			Category:    module.CategoryBackend,
		},
		Path:         path.Join(d.cfg.SourceRoot, facts.Name),
		Dependencies: facts.Dependencies,
		Type:         ClassifyType(facts.Name, facts.TypeToken),
		Layers:       LayerPatterns(facts.Name),
	}, true
}

// LayerPatterns returns the per-layer globs of a module, relative to the
// backend source root.
func LayerPatterns(name string) map[module.Layer]string {
	layers := make(map[module.Layer]string, 3)
	for _, l := range module.AllLayers() {
		layers[l] = name + "/core/" + string(l) + "/**/*.java"
	}
	return layers
}
