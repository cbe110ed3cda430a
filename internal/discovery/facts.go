// Package discovery finds the modules of a monorepo: backend bounded
// contexts from their package-info.java metadata, frontend feature folders,
// services from the compose manifest and the database migration set.
package discovery

import (
	"regexp"
	"strings"

	"github.com/modpack/cli/internal/module"
)

// Facts are the module metadata extracted from one metadata file.
type Facts struct {
	Name         string
	DisplayName  string
	Description  string
	Dependencies []module.Dependency

	// TypeToken is the enum constant named by the type attribute, e.g. OPEN.
	TypeToken string
}

// FactsExtractor pulls module metadata out of a metadata file's content.
// It reports false when the content declares no module.
type FactsExtractor interface {
	Extract(content []byte) (Facts, bool)
}

// RegexExtractor extracts facts with pattern matching on the raw text.
type RegexExtractor struct{}

var (
	packageRe      = regexp.MustCompile(`package\s+[\w.]+\.(\w+);`)
	displayNameRe  = regexp.MustCompile(`displayName\s*=\s*"([^"]+)"`)
	docCommentRe   = regexp.MustCompile(`/\*\*\s*([\s\S]*?)\s*\*/`)
	docLinePrefix  = regexp.MustCompile(`^\s*\*\s?`)
	allowedDepsRe  = regexp.MustCompile(`allowedDependencies\s*=\s*\{([^}]*)\}`)
	quotedTokenRe  = regexp.MustCompile(`"([^"]+)"`)
	moduleTypeRe   = regexp.MustCompile(`type\s*=\s*[\w.]+\.Type\.(\w+)`)
	apiScopeSuffix = "::api"
)

// Extract implements FactsExtractor.
func (RegexExtractor) Extract(content []byte) (Facts, bool) {
	text := string(content)

	m := packageRe.FindStringSubmatch(text)
	if m == nil {
		return Facts{}, false
	}

	facts := Facts{
		Name:         m[1],
		DisplayName:  m[1],
		Description:  extractDescription(text),
		Dependencies: extractDependencies(text),
	}
	if dm := displayNameRe.FindStringSubmatch(text); dm != nil {
		facts.DisplayName = dm[1]
	}
	if tm := moduleTypeRe.FindStringSubmatch(text); tm != nil {
		facts.TypeToken = tm[1]
	}

	return facts, true
}

// extractDescription returns the first two content lines of the first doc
// comment, skipping blank lines, tag lines and paragraph markup.
func extractDescription(text string) string {
	m := docCommentRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	var lines []string
	for _, line := range strings.Split(m[1], "\n") {
		line = strings.TrimSpace(docLinePrefix.ReplaceAllString(line, ""))
		if line == "" || strings.HasPrefix(line, "@") ||
			strings.HasPrefix(line, "<p>") || strings.HasPrefix(line, "</p>") {
			continue
		}
		lines = append(lines, line)
		if len(lines) == 2 {
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines, " "))
}

func extractDependencies(text string) []module.Dependency {
	deps := []module.Dependency{}

	m := allowedDepsRe.FindStringSubmatch(text)
	if m == nil {
		return deps
	}

	for _, tok := range quotedTokenRe.FindAllStringSubmatch(m[1], -1) {
		deps = append(deps, ParseDependency(tok[1]))
	}
	return deps
}

// ParseDependency turns an allowedDependencies token into an edge.
// "warenbestand::api" is an api edge on warenbestand; anything else is a
// full edge on the raw token.
func ParseDependency(token string) module.Dependency {
	if strings.Contains(token, apiScopeSuffix) {
		return module.Dependency{
			Module: strings.Replace(token, apiScopeSuffix, "", 1),
			Scope:  module.ScopeAPI,
		}
	}
	return module.Dependency{Module: token, Scope: module.ScopeFull}
}

// ClassifyType derives the module type. OPEN modules are shared; the module
// named bootstrap is the bootstrap module; everything else is a bounded context.
func ClassifyType(name, typeToken string) module.Type {
	switch {
	case typeToken == "OPEN":
		return module.TypeShared
	case name == "bootstrap":
		return module.TypeBootstrap
	default:
		return module.TypeBoundedContext
	}
}
