// Package config provides CLI command implementations for the config command group.
package config

import (
	"github.com/spf13/cobra"

	"github.com/modpack/cli/internal/cmdtypes"
	"github.com/modpack/cli/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *config.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:         "config",
		Short:       "Configuration management",
		Long:        `Inspect, validate and create the modpack configuration file.`,
		Annotations: cmdtypes.ConfigOptional(),
	}

	c.AddCommand(NewConfigShowCmd(cfg))
	c.AddCommand(NewConfigVetCmd(cfg))
	c.AddCommand(NewConfigInitCmd(cfg))

	return c
}
