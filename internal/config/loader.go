package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Environment variable prefix for modpack configuration.
const envPrefix = "MODPACK"

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees keys viper knows about, so scalar overrides are bound explicitly.
	_ = v.BindEnv("output.dir", "MODPACK_OUTPUT_DIR")
	_ = v.BindEnv("output.style", "MODPACK_OUTPUT_STYLE")
	_ = v.BindEnv("packer.command", "MODPACK_PACKER_COMMAND")
	_ = v.BindEnv("packer.maxOutputBytes", "MODPACK_PACKER_MAX_OUTPUT_BYTES")

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// An empty path or a missing file yields an empty config; environment
// variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	read := ""
	if configFile != "" {
		expandedPath, err := ExpandPath(configFile)
		if err != nil {
			return nil, fmt.Errorf("expanding config path: %w", err)
		}

		l.v.SetConfigFile(expandedPath)
		l.v.SetConfigType("yaml")

		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config file %s: %w", expandedPath, err)
			}
		} else {
			read = expandedPath
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if read != "" {
		if err := decodeNamedTables(read, &cfg); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// namedTables are the config maps keyed by folder or service names.
// Viper lowercases keys, so they are decoded again from the file.
type namedTables struct {
	Frontend struct {
		Modules map[string]FrontendModuleConfig `yaml:"modules"`
	} `yaml:"frontend"`
	Infrastructure struct {
		Services map[string]ServiceMapping `yaml:"services"`
	} `yaml:"infrastructure"`
}

func decodeNamedTables(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	var tables namedTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return fmt.Errorf("decoding config file %s: %w", path, err)
	}

	if tables.Frontend.Modules != nil {
		cfg.Frontend.Modules = tables.Frontend.Modules
	}
	if tables.Infrastructure.Services != nil {
		cfg.Infrastructure.Services = tables.Infrastructure.Services
	}
	return nil
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}

	return cfg.WithDefaults(), nil
}

// LoadGlobalConfig resolves the config file, loads it with defaults applied
// and resolves the project root. It is called once per invocation.
func LoadGlobalConfig(flags GlobalFlags, workDir string) (*GlobalConfig, error) {
	configPath, err := ResolveConfigPath(ResolveConfigPathOptions{
		FlagValue: flags.Config,
		WorkDir:   workDir,
	})
	if err != nil {
		return nil, err
	}

	absConfig := ""
	if configPath.Value != "" {
		expanded, err := ExpandPath(configPath.Value)
		if err != nil {
			return nil, fmt.Errorf("expanding config path: %w", err)
		}
		absConfig, err = filepath.Abs(expanded)
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
		if configPath.Source == SourceFlag || configPath.Source == SourceEnv {
			exists, err := ConfigFileExists(absConfig)
			if err != nil {
				return nil, fmt.Errorf("checking config file: %w", err)
			}
			if !exists {
				return nil, fmt.Errorf("config file not found: %s", absConfig)
			}
		}
	}

	cfg, err := NewLoader().LoadWithDefaults(absConfig)
	if err != nil {
		return nil, err
	}

	root, err := ResolveProjectRoot(ResolveProjectRootOptions{
		FlagValue:   flags.Root,
		ConfigValue: cfg.ProjectRoot,
		ConfigPath:  absConfig,
		WorkDir:     workDir,
	})
	if err != nil {
		return nil, err
	}

	return &GlobalConfig{
		Config:      cfg,
		ConfigPath:  absConfig,
		ProjectRoot: root.Value,
		Resolved:    []ResolvedValue{configPath, root},
		Flags:       flags,
	}, nil
}
