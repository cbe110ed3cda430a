// Package cmd provides CLI command implementations.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	configcmd "github.com/modpack/cli/internal/cmd/config"
	"github.com/modpack/cli/internal/cmdtypes"
	"github.com/modpack/cli/internal/config"
	oerrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/output"
)

// NewRootCmd creates the root command for the modpack CLI.
func NewRootCmd() *cobra.Command {
	cfg := &config.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "modpack",
		Short: "Pack monorepo modules for AI context",
		Long: `modpack discovers the modules of a monorepo (backend bounded contexts,
frontend feature folders, infrastructure services and database migrations),
generates a packer configuration per module and runs the packer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfg.Flags.Config, "config", "", "Path to config file (env: MODPACK_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&cfg.Flags.Root, "root", "", "Monorepo root directory (env: MODPACK_ROOT)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Flags.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&cfg.Flags.Timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(
		NewPackCmd(cfg),
		NewListCmd(cfg),
		NewDepsCmd(cfg),
		NewCleanCmd(cfg),
		configcmd.NewConfigCmd(cfg),
		NewVersionCmd(cfg),
	)

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
func initializeGlobals(c *cobra.Command, cfg *config.GlobalConfig) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	loaded, loadErr := config.LoadGlobalConfig(cfg.Flags, wd)
	if loadErr == nil {
		*cfg = *loaded
	}

	logCfg := output.LogConfig{Verbose: cfg.Flags.Verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(cfg.Flags.Timestamps)
	} else if cfg.Config != nil && cfg.Config.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Config.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if loadErr != nil {
		if configOptional(c) {
			output.Debug("config load error", "error", loadErr)
			return nil
		}
		return oerrors.NewConfigError(loadErr.Error(), cfg.Flags.Config, loadErr)
	}

	config.LogResolvedValues(cfg.Resolved)

	if configOptional(c) {
		return nil
	}
	if err := cfg.Config.Validate(); err != nil {
		return oerrors.NewConfigError(err.Error(), cfg.ConfigPath, err)
	}
	return nil
}

func configOptional(c *cobra.Command) bool {
	for cur := c; cur != nil; cur = cur.Parent() {
		if cur.Annotations[cmdtypes.AnnotationConfigOptional] == "true" {
			return true
		}
		if cur.Name() == "completion" || cur.Name() == cobra.ShellCompRequestCmd {
			return true
		}
	}
	return false
}
