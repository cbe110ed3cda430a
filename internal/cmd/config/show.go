package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/modpack/cli/internal/cmdtypes"
	"github.com/modpack/cli/internal/cmdutil"
	"github.com/modpack/cli/internal/config"
	oerrors "github.com/modpack/cli/internal/errors"
)

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration in effect, with every default filled in, as YAML.

The config file and project root in use are printed as comments.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if err := cmdutil.EnsureConfig(cfg); err != nil {
				return cmdtypes.Fail(oerrors.NewConfigError(err.Error(), cfg.Flags.Config, err))
			}

			data, err := yaml.Marshal(cfg.Config)
			if err != nil {
				return cmdtypes.Fail(fmt.Errorf("encoding config: %w", err))
			}

			source := cfg.ConfigPath
			if source == "" {
				source = "(none, built-in defaults)"
			}

			w := c.OutOrStdout()
			fmt.Fprintf(w, "# config: %s\n", source)
			fmt.Fprintf(w, "# root:   %s\n", cfg.ProjectRoot)
			_, err = w.Write(data)
			return err
		},
	}
}
