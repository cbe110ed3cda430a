package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/modpack/cli/internal/cmdtypes"
	"github.com/modpack/cli/internal/config"
	oerrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/output"
)

const configHeader = `# modpack configuration.
# Paths are relative to the project root (the directory of this file unless
# projectRoot is set).
`

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *config.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file with the defaults",
		Long: `Create .modpack.yaml with every default written out.

The file is created in the directory given by --root, or in the current
directory.

Examples:
  # Create .modpack.yaml here
  modpack config init

  # Overwrite an existing file
  modpack config init --force`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration")

	return c
}

func runInit(c *cobra.Command, cfg *config.GlobalConfig, force bool) error {
	dir := cfg.Flags.Root
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return cmdtypes.Fail(err)
		}
		dir = wd
	}
	path := filepath.Join(dir, config.ConfigFileNames[0])

	if _, err := os.Stat(path); err == nil && !force {
		return cmdtypes.Fail(&oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		})
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return cmdtypes.Fail(fmt.Errorf("encoding default config: %w", err))
	}

	if err := os.WriteFile(path, append([]byte(configHeader), data...), 0o644); err != nil {
		return cmdtypes.Fail(fmt.Errorf("writing %s: %w", path, err))
	}

	output.Debug("wrote config", "path", path)
	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Configuration initialized at "+path))
	fmt.Fprintln(c.OutOrStdout(), "Validate with: modpack config vet")
	return nil
}
