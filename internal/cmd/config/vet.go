package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modpack/cli/internal/cmdtypes"
	"github.com/modpack/cli/internal/config"
	oerrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the modpack configuration file.

Checks performed:
  1. Config file is valid YAML and decodes into the expected shape
  2. Output style, limits and packer settings are valid
  3. Configured directories are relative to the project root
  4. Service mappings have an effect and configured paths exist (warnings)

The config path is resolved using precedence:
  --config flag > MODPACK_CONFIG env > .modpack.yaml searched upward`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVet(c, cfg)
		},
	}
}

func runVet(c *cobra.Command, cfg *config.GlobalConfig) error {
	wd, err := os.Getwd()
	if err != nil {
		return cmdtypes.Fail(err)
	}

	loaded, err := config.LoadGlobalConfig(cfg.Flags, wd)
	if err != nil {
		return cmdtypes.Fail(oerrors.NewConfigError(err.Error(), cfg.Flags.Config, err))
	}

	location := loaded.ConfigPath
	if location == "" {
		output.Info("no config file found, checking built-in defaults")
		location = "(built-in defaults)"
	}
	output.Debug("validating config", "path", location, "root", loaded.ProjectRoot)

	if err := loaded.Config.Validate(); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			errOut := c.ErrOrStderr()
			fmt.Fprintln(errOut, "Error: config validation failed")
			fmt.Fprintf(errOut, "  File: %s\n\n", location)
			for _, e := range verrs {
				fmt.Fprintf(errOut, "  %s: %s\n", e.Field, e.Message)
			}
			return cmdtypes.Reported(fmt.Errorf("%w: %w", oerrors.ErrValidation, err))
		}
		return cmdtypes.Fail(err)
	}

	for _, warning := range loaded.Config.Lint(loaded.ProjectRoot) {
		output.Warn(warning)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Configuration is valid: "+location))
	return nil
}
