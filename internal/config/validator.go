package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// validStyles are the output styles the packer understands.
var validStyles = map[string]bool{
	"xml":      true,
	"markdown": true,
	"plain":    true,
	"json":     true,
}

// Validate checks the configuration for values that would make packing fail.
// It expects defaults to have been applied.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if !validStyles[c.Output.Style] {
		errs = append(errs, ValidationError{
			Field:   "output.style",
			Message: fmt.Sprintf("unknown style %q (valid: json, markdown, plain, xml)", c.Output.Style),
		})
	}
	if c.Output.TopFilesLength != nil && *c.Output.TopFilesLength < 0 {
		errs = append(errs, ValidationError{
			Field:   "output.topFilesLength",
			Message: "must not be negative",
		})
	}
	if strings.TrimSpace(c.Packer.Command) == "" {
		errs = append(errs, ValidationError{
			Field:   "packer.command",
			Message: "must not be empty",
		})
	}
	if c.Packer.MaxOutputBytes < 0 {
		errs = append(errs, ValidationError{
			Field:   "packer.maxOutputBytes",
			Message: "must not be negative",
		})
	}

	for field, value := range map[string]string{
		"output.dir":               c.Output.Dir,
		"backend.sourceRoot":       c.Backend.SourceRoot,
		"frontend.sourceRoot":      c.Frontend.SourceRoot,
		"infrastructure.root":      c.Infrastructure.Root,
		"dbmigration.changelogDir": c.DBMigration.ChangelogDir,
	} {
		if filepath.IsAbs(value) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "must be relative to the project root",
			})
		}
	}

	if len(errs) > 0 {
		sort.Slice(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
		return errs
	}

	return nil
}

// Lint returns non-fatal findings: service mappings that have no effect and
// configured paths missing below projectRoot.
func (c *Config) Lint(projectRoot string) []string {
	var warnings []string

	names := make([]string, 0, len(c.Infrastructure.Services))
	for name := range c.Infrastructure.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := c.Infrastructure.Services[name]
		if m.Skip && (len(m.Folders) > 0 || len(m.Patterns) > 0 || m.DisplayName != "") {
			warnings = append(warnings, fmt.Sprintf("infrastructure.services.%s: skip is set, other fields are ignored", name))
		}
		if len(m.Folders) == 0 && len(m.Patterns) > 0 {
			warnings = append(warnings, fmt.Sprintf("infrastructure.services.%s: patterns without folders are ignored", name))
		}
	}

	for _, p := range []struct {
		field string
		path  string
	}{
		{"backend.sourceRoot", c.Backend.SourceRoot},
		{"backend.resourcesRoot", c.Backend.ResourcesRoot},
		{"frontend.sourceRoot", c.Frontend.SourceRoot},
		{"infrastructure.manifest", c.InfrastructureManifestPath()},
	} {
		if _, err := os.Stat(filepath.Join(projectRoot, filepath.FromSlash(p.path))); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %s not found under %s", p.field, p.path, projectRoot))
		}
	}

	return warnings
}
