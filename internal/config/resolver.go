package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/modpack/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceConfigDir indicates the directory holding the config file.
	SourceConfigDir ConfigSource = "config-dir"
	// SourceSearch indicates the config file was found by searching upward.
	SourceSearch ConfigSource = "search"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a configuration value with its source and the
// lower-precedence values it shadowed.
type ResolvedValue struct {
	Key      string
	Value    string
	Source   ConfigSource
	Shadowed map[ConfigSource]string
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
	// WorkDir is where the upward search starts.
	WorkDir string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) MODPACK_CONFIG env, (3) upward search for .modpack.yaml.
// Value is empty when no config file is in use.
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolvedValue, error) {
	result := ResolvedValue{
		Key:      "config",
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv("MODPACK_CONFIG")

	switch {
	case opts.FlagValue != "":
		result.Value = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
	case envValue != "":
		result.Value = envValue
		result.Source = SourceEnv
	default:
		found, err := FindConfigFile(opts.WorkDir)
		if err != nil {
			return result, fmt.Errorf("searching for config file: %w", err)
		}
		result.Value = found
		result.Source = SourceSearch
		if found == "" {
			result.Source = SourceDefault
		}
	}

	return result, nil
}

// ResolveProjectRootOptions contains options for project root resolution.
type ResolveProjectRootOptions struct {
	// FlagValue is the --root flag value (empty if not set).
	FlagValue string
	// ConfigValue is projectRoot from the config file (empty if not set).
	ConfigValue string
	// ConfigPath is the config file in use (empty if none).
	ConfigPath string
	// WorkDir is the current working directory.
	WorkDir string
}

// ResolveProjectRoot resolves the monorepo root using precedence:
// (1) --root flag, (2) MODPACK_ROOT env, (3) config projectRoot relative to
// the config file, (4) the config file's directory, (5) the working directory.
// The returned value is absolute.
func ResolveProjectRoot(opts ResolveProjectRootOptions) (ResolvedValue, error) {
	result := ResolvedValue{
		Key:      "projectRoot",
		Shadowed: make(map[ConfigSource]string),
	}

	configDir := ""
	if opts.ConfigPath != "" {
		configDir = filepath.Dir(opts.ConfigPath)
	}
	configValue := ""
	if opts.ConfigValue != "" {
		configValue = opts.ConfigValue
		if !filepath.IsAbs(configValue) && configDir != "" {
			configValue = filepath.Join(configDir, configValue)
		}
	}
	envValue := os.Getenv("MODPACK_ROOT")

	// Ordered by precedence; the first non-empty candidate wins and the
	// remaining non-empty ones are recorded as shadowed.
	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, envValue},
		{SourceConfig, configValue},
		{SourceConfigDir, configDir},
		{SourceDefault, opts.WorkDir},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}

	if result.Value == "" {
		return result, fmt.Errorf("cannot determine project root: no working directory")
	}

	abs, err := filepath.Abs(result.Value)
	if err != nil {
		return result, fmt.Errorf("resolving project root %q: %w", result.Value, err)
	}
	result.Value = abs

	return result, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
