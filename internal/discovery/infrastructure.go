package discovery

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/modpack/cli/internal/config"
	"github.com/modpack/cli/internal/module"
)

// defaultServicePattern applies when a mapping names folders but no patterns.
const defaultServicePattern = "**/*"

// Service is one entry of the compose manifest's services mapping.
type Service struct {
	Name  string
	Image string
}

// InfrastructureDiscoverer maps compose services to infrastructure modules.
type InfrastructureDiscoverer struct {
	projectRoot string
	cfg         *config.Config
}

// NewInfrastructureDiscoverer creates a discoverer rooted at projectRoot.
func NewInfrastructureDiscoverer(projectRoot string, cfg *config.Config) *InfrastructureDiscoverer {
	return &InfrastructureDiscoverer{projectRoot: projectRoot, cfg: cfg}
}

// Discover parses the manifest and returns one module per display name,
// sorted by name. Services flagged skip never appear; when several services
// share a display name the first in manifest order wins.
func (d *InfrastructureDiscoverer) Discover(ctx context.Context) ([]module.Infrastructure, error) {
	manifest := d.cfg.InfrastructureManifestPath()
	data, err := os.ReadFile(filepath.Join(d.projectRoot, filepath.FromSlash(manifest)))
	if err != nil {
		return nil, fmt.Errorf("reading compose manifest: %w", err)
	}

	services, err := ParseServices(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", manifest, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.fromServices(services), nil
}

func (d *InfrastructureDiscoverer) fromServices(services []Service) []module.Infrastructure {
	root := d.cfg.Infrastructure.Root
	manifest := d.cfg.InfrastructureManifestPath()

	seen := make(map[string]bool)
	modules := make([]module.Infrastructure, 0, len(services))

	for _, svc := range services {
		mapping := d.cfg.Infrastructure.Services[svc.Name]
		if mapping.Skip {
			continue
		}

		name := mapping.DisplayName
		if name == "" {
			name, _, _ = strings.Cut(svc.Name, "-")
		}
		if seen[name] {
			continue
		}
		seen[name] = true

		patterns := mapping.Patterns
		if len(patterns) == 0 {
			patterns = []string{defaultServicePattern}
		}
		var include []string
		for _, folder := range mapping.Folders {
			for _, p := range patterns {
				include = append(include, path.Join(root, folder)+"/"+p)
			}
		}
		include = append(include, manifest)

		image := svc.Image
		if image == "" {
			image = "custom"
		}

		modules = append(modules, module.Infrastructure{
			Info: module.Info{
				Name:        name,
				DisplayName: module.Capitalize(name),
				Description: "Docker service: " + image,
				Category:    module.CategoryInfrastructure,
			},
			ServiceName: svc.Name,
			BasePath:    root,
			Patterns:    include,
		})
	}

	sort.SliceStable(modules, func(i, j int) bool { return modules[i].Name < modules[j].Name })
	return modules
}

// ParseServices returns the services of a compose document in document order.
// A service without an image, or with an empty body, has an empty Image.
func ParseServices(data []byte) ([]Service, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty manifest")
	}

	top := resolveAlias(doc.Content[0])
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("manifest is not a mapping")
	}

	servicesNode := mappingValue(top, "services")
	if servicesNode == nil || servicesNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("manifest has no services mapping")
	}

	services := make([]Service, 0, len(servicesNode.Content)/2)
	for i := 0; i+1 < len(servicesNode.Content); i += 2 {
		svc := Service{Name: servicesNode.Content[i].Value}
		if body := resolveAlias(servicesNode.Content[i+1]); body.Kind == yaml.MappingNode {
			if img := mappingValue(body, "image"); img != nil && img.Kind == yaml.ScalarNode {
				svc.Image = img.Value
			}
		}
		services = append(services, svc)
	}
	return services, nil
}

// mappingValue returns the value node for key in a mapping node, with
// aliases resolved. Keys merged in with "<<" are looked up last.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	var merges []*yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch node.Content[i].Value {
		case key:
			return resolveAlias(node.Content[i+1])
		case "<<":
			merges = append(merges, resolveAlias(node.Content[i+1]))
		}
	}

	for _, m := range merges {
		sources := []*yaml.Node{m}
		if m.Kind == yaml.SequenceNode {
			sources = m.Content
		}
		for _, src := range sources {
			if src = resolveAlias(src); src.Kind != yaml.MappingNode {
				continue
			}
			if v := mappingValue(src, key); v != nil {
				return v
			}
		}
	}
	return nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
