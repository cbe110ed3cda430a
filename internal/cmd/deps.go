package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modpack/cli/internal/cmdtypes"
	"github.com/modpack/cli/internal/cmdutil"
	"github.com/modpack/cli/internal/config"
	"github.com/modpack/cli/internal/module"
	"github.com/modpack/cli/internal/output"
	"github.com/modpack/cli/internal/plan"
)

// NewDepsCmd creates the deps command.
func NewDepsCmd(cfg *config.GlobalConfig) *cobra.Command {
	var full bool

	c := &cobra.Command{
		Use:   "deps <module>",
		Short: "Show the dependencies of a backend module",
		Long: `Show the direct dependencies a backend module declares.

By default each dependency keeps its declared scope (api or full). With
--full every dependency is shown as a full-code dependency, which is what
"pack --deps=full" includes.

Examples:
  modpack deps buchung
  modpack deps buchung --full`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: cmdutil.BackendModuleCompletion(cfg),
		RunE: func(c *cobra.Command, args []string) error {
			return runDeps(c, args[0], cfg, full)
		},
	}

	c.Flags().BoolVarP(&full, "full", "f", false, "Show full dependencies (not just API)")

	return c
}

func runDeps(c *cobra.Command, name string, cfg *config.GlobalConfig, full bool) error {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cat, err := cmdutil.LoadCatalog(ctx, cfg)
	if err != nil {
		return cmdtypes.Fail(err)
	}

	mod, ok := cat.BackendModule(name)
	if !ok {
		nf := &plan.NotFoundError{Kind: "backend", Name: name}
		output.Error(nf.Error())
		fmt.Fprintln(c.ErrOrStderr(), output.StyleDim.Render("Available backend modules:"))
		for _, n := range cat.Graph.Names() {
			fmt.Fprintln(c.ErrOrStderr(), output.StyleDim.Render("  - "+n))
		}
		return cmdtypes.Reported(nf)
	}

	scope, mode := module.ScopeAPI, "API only"
	if full {
		scope, mode = module.ScopeFull, "Full code"
	}

	root := &output.TreeNode{
		Name:        mod.DisplayName,
		Description: "Mode: " + mode,
	}
	for _, dep := range cat.Graph.Resolve(name, scope) {
		node := &output.TreeNode{
			Name: dep.Module,
			Tag:  output.ScopeStyle(string(dep.Scope)).Render("[" + string(dep.Scope) + "]"),
		}
		if d, ok := cat.BackendModule(dep.Module); ok {
			node.Name = d.DisplayName
		} else {
			node.Tag += " " + output.FormatStatus(output.StatusMissing)
		}
		root.Children = append(root.Children, node)
	}

	w := c.OutOrStdout()
	fmt.Fprint(w, output.RenderTree(root))
	if len(root.Children) == 0 {
		fmt.Fprintln(w, output.StyleDim.Render("  No dependencies"))
	}
	if users := cat.Graph.Dependents(name); len(users) > 0 {
		fmt.Fprintln(w, output.StyleDim.Render("  Used by: "+strings.Join(users, ", ")))
	}
	return nil
}
