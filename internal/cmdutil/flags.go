// Package cmdutil provides shared command utilities for the modpack commands.
// It centralizes flag groups, catalog loading, result printing and shell
// completion of targets.
package cmdutil

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modpack/cli/internal/module"
	"github.com/modpack/cli/internal/output"
	"github.com/modpack/cli/internal/packspec"
	"github.com/modpack/cli/internal/plan"
)

// PackFlags holds the flags of the pack command.
type PackFlags struct {
	Deps              string
	Layers            string
	All               bool
	AllBackend        bool
	AllFrontend       bool
	AllInfrastructure bool
	DryRun            bool
	Format            string
}

// AddTo registers the pack flags on the given cobra command.
func (f *PackFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Deps, "deps", "d", string(packspec.DepsNone),
		"Include dependencies: api or full (bare --deps means api)")
	cmd.Flags().Lookup("deps").NoOptDefVal = string(packspec.DepsAPI)
	cmd.Flags().StringVarP(&f.Layers, "layers", "l", "",
		"Backend layers to include (domain,application,adapter)")
	cmd.Flags().BoolVar(&f.All, "all", false,
		"Pack all backend and frontend modules plus the full infrastructure")
	cmd.Flags().BoolVar(&f.AllBackend, "all-backend", false,
		"Pack all backend modules")
	cmd.Flags().BoolVar(&f.AllFrontend, "all-frontend", false,
		"Pack all frontend modules")
	cmd.Flags().BoolVar(&f.AllInfrastructure, "all-infrastructure", false,
		"Pack infrastructure services with dedicated files plus the full infrastructure")
	cmd.Flags().BoolVar(&f.DryRun, "dry-run", false,
		"Print the generated specs without running the packer")
	cmd.Flags().StringVarP(&f.Format, "format", "o", string(output.FormatJSON),
		"Dry-run spec format: json, yaml")

	_ = cmd.RegisterFlagCompletionFunc("deps", cobra.FixedCompletions(
		[]string{string(packspec.DepsAPI), string(packspec.DepsFull), string(packspec.DepsNone)},
		cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		output.ValidSpecFormats(), cobra.ShellCompDirectiveNoFileComp))
}

// Request validates the flag values and builds the plan request for target.
func (f *PackFlags) Request(target string) (plan.Request, error) {
	deps, err := packspec.ParseDepsMode(f.Deps)
	if err != nil {
		return plan.Request{}, err
	}

	layers, err := module.ParseLayers(f.Layers)
	if err != nil {
		return plan.Request{}, err
	}

	return plan.Request{
		Target:            target,
		All:               f.All,
		AllBackend:        f.AllBackend,
		AllFrontend:       f.AllFrontend,
		AllInfrastructure: f.AllInfrastructure,
		Deps:              deps,
		Layers:            layers,
	}, nil
}

// SpecFormat validates the --format value.
func (f *PackFlags) SpecFormat() (output.OutputFormat, error) {
	format, ok := output.ParseOutputFormat(f.Format)
	if !ok || format == output.FormatTable {
		return "", fmt.Errorf("invalid format %q (valid: json, yaml)", f.Format)
	}
	return format, nil
}

// ListFlags holds the category filters of the list command.
type ListFlags struct {
	Backend        bool
	Frontend       bool
	Infrastructure bool
	JSON           bool
}

// AddTo registers the list flags on the given cobra command.
func (f *ListFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.Backend, "backend", "b", false, "Show only backend modules")
	cmd.Flags().BoolVarP(&f.Frontend, "frontend", "f", false, "Show only frontend modules")
	cmd.Flags().BoolVarP(&f.Infrastructure, "infrastructure", "i", false, "Show only infrastructure modules")
	cmd.Flags().BoolVar(&f.JSON, "json", false, "Output the pack targets as a JSON array")
}

// ShowAll reports whether no category filter is set.
func (f *ListFlags) ShowAll() bool {
	return !f.Backend && !f.Frontend && !f.Infrastructure
}
