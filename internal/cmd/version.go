package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modpack/cli/internal/cmdtypes"
	"github.com/modpack/cli/internal/config"
	"github.com/modpack/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show modpack version information.

Displays:
  - modpack version, commit, and build date
  - CUE SDK version used for spec validation
  - the packer binary found in PATH and its version`,
		Args:        cobra.NoArgs,
		Annotations: cmdtypes.ConfigOptional(),
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			command := config.DefaultPackerCommand
			if cfg.Config != nil && cfg.Config.Packer.Command != "" {
				command = cfg.Config.Packer.Command
			}

			w := c.OutOrStdout()
			fmt.Fprintln(w, version.Get().String())
			fmt.Fprintln(w)

			packer := version.DetectPacker(ctx, command)
			fmt.Fprintln(w, "Packer:")
			fmt.Fprintf(w, "  Command:  %s\n", packer.Command)
			if !packer.Found {
				fmt.Fprintf(w, "  Status:   %s\n", packer.Message)
				return nil
			}
			fmt.Fprintf(w, "  Path:     %s\n", packer.Path)
			if packer.Version != "" {
				fmt.Fprintf(w, "  Version:  %s\n", packer.Version)
			} else {
				fmt.Fprintf(w, "  Status:   %s\n", packer.Message)
			}
			return nil
		},
	}
}
