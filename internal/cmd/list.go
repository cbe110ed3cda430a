package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modpack/cli/internal/cmdtypes"
	"github.com/modpack/cli/internal/cmdutil"
	"github.com/modpack/cli/internal/config"
	"github.com/modpack/cli/internal/discovery"
	"github.com/modpack/cli/internal/module"
	"github.com/modpack/cli/internal/output"
)

// NewListCmd creates the list command.
func NewListCmd(cfg *config.GlobalConfig) *cobra.Command {
	var lf cmdutil.ListFlags

	c := &cobra.Command{
		Use:   "list",
		Short: "List all available modules",
		Long: `List the modules discovered in the monorepo.

With --json the pack targets are printed as a JSON array, which is what
shell completion scripts consume. Infrastructure services without files of
their own are left out of the JSON output.

Examples:
  # Everything
  modpack list

  # Backend only
  modpack list -b

  # Targets for tooling
  modpack list --json`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runList(c, cfg, &lf)
		},
	}

	lf.AddTo(c)

	return c
}

func runList(c *cobra.Command, cfg *config.GlobalConfig, lf *cmdutil.ListFlags) error {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cat, err := cmdutil.LoadCatalog(ctx, cfg)
	if err != nil {
		return cmdtypes.Fail(err)
	}

	w := c.OutOrStdout()

	if lf.JSON {
		targets := cat.Targets(discovery.TargetFilter{
			Backend:        lf.Backend,
			Frontend:       lf.Frontend,
			Infrastructure: lf.Infrastructure,
		})
		data, err := json.Marshal(targets)
		if err != nil {
			return cmdtypes.Fail(fmt.Errorf("encoding targets: %w", err))
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	if lf.ShowAll() || lf.Backend {
		writeBackendList(w, cat)
	}
	if lf.ShowAll() || lf.Frontend {
		writeFrontendList(w, cat)
	}
	if lf.ShowAll() || lf.Infrastructure {
		writeInfrastructureList(w, cat)
	}
	return nil
}

func writeBackendList(w io.Writer, cat *discovery.Catalog) {
	rows := []output.ModuleRow{{
		Name:        cat.DBMigration.Address(),
		DisplayName: cat.DBMigration.DisplayName,
		Detail:      "migrations",
		Description: cat.DBMigration.Description,
	}}
	for _, m := range cat.Backend {
		rows = append(rows, output.ModuleRow{
			Name:        m.Address(),
			DisplayName: m.DisplayName,
			Detail:      string(m.Type),
			Description: describeBackend(m),
		})
	}
	fmt.Fprintln(w, output.RenderModuleTable("Backend Bounded Contexts", "TYPE", rows))
	fmt.Fprintln(w)
}

// describeBackend renders the description followed by one line per
// declared dependency.
func describeBackend(m module.Backend) string {
	lines := []string{}
	if m.Description != "" {
		lines = append(lines, m.Description)
	}
	for _, dep := range m.Dependencies {
		scope := output.ScopeStyle(string(dep.Scope)).Render(string(dep.Scope))
		lines = append(lines, "→ "+dep.Module+" ["+scope+"]")
	}
	return strings.Join(lines, "\n")
}

func writeFrontendList(w io.Writer, cat *discovery.Catalog) {
	rows := make([]output.ModuleRow, 0, len(cat.Frontend))
	for _, m := range cat.Frontend {
		rows = append(rows, output.ModuleRow{
			Name:        m.Address(),
			DisplayName: m.DisplayName,
			Detail:      m.Path,
			Description: m.Description,
		})
	}
	fmt.Fprintln(w, output.RenderModuleTable("Frontend Modules", "PATH", rows))
	fmt.Fprintln(w, output.StyleDim.Render(`Tip: Use "frontend" without module name to pack everything.`))
	fmt.Fprintln(w)
}

func writeInfrastructureList(w io.Writer, cat *discovery.Catalog) {
	rows := make([]output.ModuleRow, 0, len(cat.Infrastructure))
	for _, m := range cat.Infrastructure {
		files := "dedicated"
		if !m.HasDedicatedFiles() {
			files = "compose only"
		}
		rows = append(rows, output.ModuleRow{
			Name:        m.Address(),
			DisplayName: m.DisplayName,
			Detail:      files,
			Description: m.Description,
		})
	}
	fmt.Fprintln(w, output.RenderModuleTable("Infrastructure Services", "FILES", rows))
	fmt.Fprintln(w, output.StyleDim.Render(`Tip: Use "infrastructure" without module name to pack everything.`))
	fmt.Fprintln(w)
}
