// Package module defines the descriptors of the modules discovered in a
// monorepo: backend bounded contexts, frontend feature folders,
// infrastructure services and the database migration set.
package module

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category identifies which part of the monorepo a module belongs to.
type Category string

const (
	CategoryBackend        Category = "backend"
	CategoryFrontend       Category = "frontend"
	CategoryInfrastructure Category = "infrastructure"
	CategoryDBMigration    Category = "dbmigration"
)

// Info holds the fields common to every module category.
type Info struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
}

// Descriptor is implemented by every module variant. The set of
// implementations is closed: Backend, Frontend, Infrastructure and DBMigration.
type Descriptor interface {
	// Meta returns the common module fields.
	Meta() Info

	// Address returns the category-qualified name used on the command line.
	Address() string

	sealed()
}

// Address builds the "category/name" address for a module.
func Address(category Category, name string) string {
	return string(category) + "/" + name
}

// Type classifies a backend module.
type Type string

const (
	TypeBoundedContext Type = "bounded-context"
	TypeShared         Type = "shared"
	TypeBootstrap      Type = "bootstrap"
)

// Layer is an architectural stratum inside a backend module.
type Layer string

const (
	LayerDomain      Layer = "domain"
	LayerApplication Layer = "application"
	LayerAdapter     Layer = "adapter"
)

// AllLayers returns the layers in their canonical order.
func AllLayers() []Layer {
	return []Layer{LayerDomain, LayerApplication, LayerAdapter}
}

// ParseLayers parses a comma-separated layer list such as "domain,adapter".
// Empty and repeated items are dropped; unknown layers are an error.
func ParseLayers(s string) ([]Layer, error) {
	var layers []Layer
	seen := make(map[Layer]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		l := Layer(part)
		if !l.Valid() {
			return nil, fmt.Errorf("unknown layer %q (valid: domain, application, adapter)", part)
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		layers = append(layers, l)
	}
	return layers, nil
}

// Valid reports whether l is one of the known layers.
func (l Layer) Valid() bool {
	switch l {
	case LayerDomain, LayerApplication, LayerAdapter:
		return true
	}
	return false
}

// Scope is the visibility a dependency edge grants.
type Scope string

const (
	// ScopeAPI limits a dependency to its public api package.
	ScopeAPI Scope = "api"
	// ScopeFull grants the dependency's whole source tree.
	ScopeFull Scope = "full"
)

// Dependency is a declared edge from one backend module to another.
type Dependency struct {
	Module string `json:"module"`
	Scope  Scope  `json:"scope"`
}

// Backend is a backend bounded context.
type Backend struct {
	Info
	Path         string           `json:"path"`
	Dependencies []Dependency     `json:"dependencies"`
	Type         Type             `json:"type"`
	Layers       map[Layer]string `json:"layers"`
}

// Frontend is a frontend feature module.
type Frontend struct {
	Info
	Path          string `json:"path"`
	IncludeShared bool   `json:"includeShared"`
}

// Infrastructure is a service, or group of services, from the compose manifest.
type Infrastructure struct {
	Info
	ServiceName string   `json:"serviceName"`
	BasePath    string   `json:"basePath"`
	Patterns    []string `json:"patterns"`
}

// HasDedicatedFiles reports whether the module includes more than the
// compose manifest itself.
func (m Infrastructure) HasDedicatedFiles() bool {
	return len(m.Patterns) > 1
}

// DBMigration is the database migration changelog set.
type DBMigration struct {
	Info
	BasePath string   `json:"basePath"`
	Patterns []string `json:"patterns"`
}

func (m Backend) Meta() Info        { return m.Info }
func (m Frontend) Meta() Info       { return m.Info }
func (m Infrastructure) Meta() Info { return m.Info }
func (m DBMigration) Meta() Info    { return m.Info }

func (m Backend) Address() string        { return Address(CategoryBackend, m.Name) }
func (m Frontend) Address() string       { return Address(CategoryFrontend, m.Name) }
func (m Infrastructure) Address() string { return Address(CategoryInfrastructure, m.Name) }

// Address returns backend/<name>: migrations are packed with the backend.
func (m DBMigration) Address() string { return Address(CategoryBackend, m.Name) }

func (Backend) sealed()        {}
func (Frontend) sealed()       {}
func (Infrastructure) sealed() {}
func (DBMigration) sealed()    {}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
