package cmdutil

import (
	"fmt"
	"io"
	"strings"

	"github.com/modpack/cli/internal/discovery"
	"github.com/modpack/cli/internal/output"
	"github.com/modpack/cli/internal/runner"
)

// WriteAvailableTargets prints every valid pack target grouped by category.
func WriteAvailableTargets(w io.Writer, cat *discovery.Catalog) {
	var b strings.Builder

	b.WriteString(output.StyleDim.Render("\nAvailable targets:") + "\n")

	b.WriteString(output.StyleSummary.Render("  Backend:") + "\n")
	b.WriteString("    " + cat.DBMigration.Address() + "\n")
	for _, m := range cat.Backend {
		b.WriteString("    " + m.Address() + "\n")
	}

	b.WriteString(output.StyleSummary.Render("  Frontend:") + "\n")
	b.WriteString("    frontend " + output.StyleDim.Render("(all)") + "\n")
	for _, m := range cat.Frontend {
		b.WriteString("    " + m.Address() + "\n")
	}

	b.WriteString(output.StyleSummary.Render("  Infrastructure:") + "\n")
	b.WriteString("    infrastructure " + output.StyleDim.Render("(all)") + "\n")
	for _, m := range cat.Infrastructure {
		b.WriteString("    " + m.Address() + "\n")
	}

	fmt.Fprint(w, b.String())
}

// WriteResults prints one line per pack result. Batches also get a summary.
func WriteResults(w io.Writer, batch *runner.Batch, dryRun bool) {
	success, verb := output.StatusPacked, "Generated: "
	if dryRun {
		success, verb = output.StatusPlanned, "Would generate: "
	}

	for _, res := range batch.Results {
		if res.Success {
			fmt.Fprintln(w, output.FormatModuleLine(res.Target, success))
			if batch.Total() == 1 {
				fmt.Fprintln(w, output.FormatCheckmark(verb+res.OutputPath))
				fmt.Fprintln(w, output.StyleDim.Render(fmt.Sprintf("  Duration: %dms", res.Duration.Milliseconds())))
			}
			continue
		}
		fmt.Fprintln(w, output.FormatModuleLine(res.Target, output.StatusFailed))
		output.ModuleLogger(res.Target).Error("pack failed", "error", res.Err)
	}

	if batch.Total() > 1 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, output.FormatSummary(batch.Succeeded, batch.Total()))
	}
}
