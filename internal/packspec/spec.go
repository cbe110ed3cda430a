// Package packspec builds the packer configurations ("specs") for modules.
// Builders are pure: every call returns a new Spec with freshly allocated
// slices, and a Spec is never modified after it is built.
package packspec

import (
	"fmt"
	"strings"
)

// Spec is the configuration document handed to the packer.
type Spec struct {
	Output   Output   `json:"output"`
	Include  []string `json:"include"`
	Ignore   Ignore   `json:"ignore"`
	Security Security `json:"security"`
}

// Output controls the packed file.
type Output struct {
	FilePath         string `json:"filePath"`
	Style            string `json:"style"`
	HeaderText       string `json:"headerText"`
	RemoveComments   bool   `json:"removeComments"`
	RemoveEmptyLines bool   `json:"removeEmptyLines"`
	TopFilesLength   int    `json:"topFilesLength"`
	ShowLineNumbers  bool   `json:"showLineNumbers"`
	CopyToClipboard  bool   `json:"copyToClipboard"`
}

// Ignore lists the exclusions applied on top of Include.
type Ignore struct {
	UseGitignore       bool     `json:"useGitignore"`
	UseDefaultPatterns bool     `json:"useDefaultPatterns"`
	CustomPatterns     []string `json:"customPatterns"`
}

// Security toggles the packer's secret scanning.
type Security struct {
	EnableSecurityCheck bool `json:"enableSecurityCheck"`
}

// DepsMode selects which dependencies a backend pack includes.
type DepsMode string

const (
	DepsNone DepsMode = "none"
	DepsAPI  DepsMode = "api"
	DepsFull DepsMode = "full"
)

// ParseDepsMode parses a --deps value. An empty value means api, matching a
// bare --deps flag.
func ParseDepsMode(s string) (DepsMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "api", "true":
		return DepsAPI, nil
	case "full":
		return DepsFull, nil
	case "none", "false":
		return DepsNone, nil
	default:
		return "", fmt.Errorf("invalid dependency mode %q (valid: api, full, none)", s)
	}
}
