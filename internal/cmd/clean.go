package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modpack/cli/internal/cmdtypes"
	"github.com/modpack/cli/internal/cmdutil"
	"github.com/modpack/cli/internal/config"
	"github.com/modpack/cli/internal/output"
	"github.com/modpack/cli/internal/runner"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove all generated outputs",
		Long: `Remove the output directory and recreate it empty.

Cleaning is best effort: failures are reported as warnings and the command
still succeeds.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if err := cmdutil.EnsureConfig(cfg); err != nil {
				return cmdtypes.Fail(err)
			}

			output.Info("cleaning outputs", "dir", cfg.Config.Output.Dir)
			dir, err := runner.Clean(cfg.ProjectRoot, cfg.Config.Output.Dir)
			if err != nil {
				output.Warn("could not clean outputs", "error", err)
				return nil
			}
			fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Outputs cleaned: "+dir))
			return nil
		},
	}
}
