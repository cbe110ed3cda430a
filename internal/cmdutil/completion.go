package cmdutil

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modpack/cli/internal/config"
	"github.com/modpack/cli/internal/discovery"
	"github.com/modpack/cli/internal/output"
)

// TargetCompletion completes pack targets discovered in the project.
func TargetCompletion(cfg *config.GlobalConfig) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		cat, ok := completionCatalog(cmd, cfg)
		if !ok {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return filterPrefix(cat.Targets(discovery.TargetFilter{}), toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// BackendModuleCompletion completes backend module names.
func BackendModuleCompletion(cfg *config.GlobalConfig) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		cat, ok := completionCatalog(cmd, cfg)
		if !ok {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return filterPrefix(cat.Graph.Names(), toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

func completionCatalog(cmd *cobra.Command, cfg *config.GlobalConfig) (*discovery.Catalog, bool) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	output.SetOutput(io.Discard)
	cat, err := LoadCatalog(ctx, cfg)
	if err != nil {
		cobra.CompDebugln("loading modules: "+err.Error(), true)
		return nil, false
	}
	return cat, true
}

func filterPrefix(candidates []string, prefix string) []cobra.Completion {
	var out []cobra.Completion
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
