package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/modpack/cli/internal/cmdtypes"
	"github.com/modpack/cli/internal/cmdutil"
	"github.com/modpack/cli/internal/config"
	oerrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/output"
	"github.com/modpack/cli/internal/packspec"
	"github.com/modpack/cli/internal/plan"
	"github.com/modpack/cli/internal/preview"
	"github.com/modpack/cli/internal/runner"
)

// NewPackCmd creates the pack command.
func NewPackCmd(cfg *config.GlobalConfig) *cobra.Command {
	var pf cmdutil.PackFlags

	c := &cobra.Command{
		Use:   "pack [target]",
		Short: "Pack a module or group of modules",
		Long: `Generate a packer configuration for a module and run the packer.

Targets:
  backend/<name>           Backend bounded context (bare <name> also works)
  backend/dbmigration      Database migration changelogs
  frontend                 The complete frontend application
  frontend/<name>          Frontend module plus shared code
  infrastructure           The complete infrastructure tree
  infrastructure/<name>    One infrastructure service

Examples:
  # Pack a backend module
  modpack pack backend/buchung

  # Include the API packages of its dependencies
  modpack pack backend/buchung --deps

  # Include the full code of its dependencies
  modpack pack backend/buchung --deps=full

  # Only the domain layer
  modpack pack buchung --layers domain

  # Everything, printing the specs instead of running the packer
  modpack pack --all --dry-run`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: cmdutil.TargetCompletion(cfg),
		RunE: func(c *cobra.Command, args []string) error {
			return runPack(c, args, cfg, &pf)
		},
	}

	pf.AddTo(c)

	return c
}

func runPack(c *cobra.Command, args []string, cfg *config.GlobalConfig, pf *cmdutil.PackFlags) error {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	target := ""
	if len(args) > 0 {
		target = args[0]
	}

	req, err := pf.Request(target)
	if err != nil {
		return cmdtypes.Fail(oerrors.NewValidationError(err.Error(), "",
			"--deps takes api, full or none; --layers takes domain, application, adapter."))
	}
	format, err := pf.SpecFormat()
	if err != nil {
		return cmdtypes.Fail(oerrors.NewValidationError(err.Error(), "--format", "Use json or yaml."))
	}

	cat, err := cmdutil.LoadCatalog(ctx, cfg)
	if err != nil {
		return cmdtypes.Fail(err)
	}

	p, err := plan.Build(cat, packspec.NewBuilder(cfg.Config), req)
	if err != nil {
		var nf *plan.NotFoundError
		switch {
		case errors.Is(err, plan.ErrNoTarget):
			output.Warn("no target specified, use --help for usage")
			cmdutil.WriteAvailableTargets(c.OutOrStdout(), cat)
			return nil
		case errors.As(err, &nf):
			output.Error(nf.Error())
			cmdutil.WriteAvailableTargets(c.ErrOrStderr(), cat)
			return cmdtypes.Reported(err)
		default:
			return cmdtypes.Fail(err)
		}
	}

	if len(p.Packs) == 0 {
		output.Warn("no packs to run")
		return nil
	}

	output.Info(p.Title)

	r, err := runner.New(cfg.ProjectRoot, cfg.Config, runner.Options{
		DryRun: pf.DryRun,
		Wrap: func(ctx context.Context, target string, run func(context.Context) error) error {
			return output.RunWithSpinner(ctx, run, output.WithTitle("Packing "+target))
		},
	})
	if err != nil {
		return cmdtypes.Fail(err)
	}

	if pf.DryRun {
		if err := writeDryRun(ctx, c.OutOrStdout(), cfg.ProjectRoot, p.Packs, format); err != nil {
			return cmdtypes.Fail(err)
		}
	}

	batch := r.RunAll(ctx, p.Packs)
	cmdutil.WriteResults(c.OutOrStdout(), batch, pf.DryRun)

	if batch.Failed() {
		return cmdtypes.Reported(fmt.Errorf("%w: %d of %d packs failed",
			oerrors.ErrPacker, batch.Total()-batch.Succeeded, batch.Total()))
	}
	return nil
}

// writeDryRun prints each spec and logs how many files its globs select.
func writeDryRun(ctx context.Context, w io.Writer, root string, packs []plan.Pack, format output.OutputFormat) error {
	for i, pk := range packs {
		if i > 0 && format == output.FormatYAML {
			fmt.Fprintln(w, "---")
		}
		if err := output.WriteStructured(w, pk.Spec, format); err != nil {
			return fmt.Errorf("writing spec for %s: %w", pk.Target, err)
		}

		res, err := preview.Spec(ctx, root, pk.Spec)
		if err != nil {
			output.ModuleLogger(pk.Target).Warn("could not preview includes", "error", err)
			continue
		}
		modLog := output.ModuleLogger(pk.Target)
		for _, pc := range res.Patterns {
			modLog.Debug("include", "pattern", pc.Pattern, "files", pc.Files)
		}
		if res.Empty() {
			modLog.Warn("no files match the include patterns")
		} else {
			modLog.Info(fmt.Sprintf("%d files selected", len(res.Files)))
		}
	}
	return nil
}
