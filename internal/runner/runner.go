// Package runner executes pack plans with the external packer, one spec at a
// time.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/modpack/cli/internal/config"
	"github.com/modpack/cli/internal/output"
	"github.com/modpack/cli/internal/packspec"
	"github.com/modpack/cli/internal/plan"
)

// Result is the outcome of a single pack.
type Result struct {
	Target     string
	OutputPath string
	Success    bool
	Err        error
	Output     string
	Duration   time.Duration
}

// Batch is the outcome of a plan.
type Batch struct {
	Results   []Result
	Succeeded int
}

// Total returns the number of packs attempted.
func (b *Batch) Total() int {
	return len(b.Results)
}

// Failed reports whether any pack failed.
func (b *Batch) Failed() bool {
	return b.Succeeded < len(b.Results)
}

// Options configures a Runner.
type Options struct {
	// DryRun validates specs without writing files or starting the packer.
	DryRun bool

	// Wrap decorates each packer run, e.g. with a spinner. Nil runs directly.
	Wrap func(ctx context.Context, target string, run func(context.Context) error) error
}

// Runner validates specs and hands them to the packer.
type Runner struct {
	projectRoot string
	packer      *Packer
	validator   *packspec.Validator
	opts        Options
}

// New creates a Runner for the project root and configuration.
func New(projectRoot string, cfg *config.Config, opts Options) (*Runner, error) {
	v, err := packspec.NewValidator()
	if err != nil {
		return nil, err
	}
	return &Runner{
		projectRoot: projectRoot,
		packer:      NewPacker(projectRoot, cfg.Packer),
		validator:   v,
		opts:        opts,
	}, nil
}

// Run executes one pack. Failures are reported in the Result.
func (r *Runner) Run(ctx context.Context, p plan.Pack) Result {
	start := time.Now()
	res := Result{Target: p.Target, OutputPath: p.Spec.Output.FilePath}

	finish := func(out string, err error) Result {
		res.Output = out
		res.Err = err
		res.Success = err == nil
		res.Duration = time.Since(start)
		return res
	}

	if err := r.validator.Validate(p.Spec); err != nil {
		return finish("", err)
	}
	if r.opts.DryRun {
		return finish("", nil)
	}

	// Wrap may return before run does, so the output is handed over
	// through a channel instead of a shared variable.
	outCh := make(chan string, 1)
	run := func(ctx context.Context) error {
		out, err := r.execute(ctx, p.Spec)
		outCh <- out
		return err
	}

	var err error
	if r.opts.Wrap != nil {
		err = r.opts.Wrap(ctx, p.Target, run)
	} else {
		err = run(ctx)
	}

	var out string
	select {
	case out = <-outCh:
	default:
	}
	return finish(out, err)
}

// RunAll executes the packs in order. A failed pack does not stop the batch.
func (r *Runner) RunAll(ctx context.Context, packs []plan.Pack) *Batch {
	b := &Batch{Results: make([]Result, 0, len(packs))}
	for _, p := range packs {
		res := r.Run(ctx, p)
		if res.Success {
			b.Succeeded++
		}
		b.Results = append(b.Results, res)
	}
	return b
}

func (r *Runner) execute(ctx context.Context, s packspec.Spec) (string, error) {
	outDir := filepath.Join(r.projectRoot, filepath.FromSlash(path.Dir(s.Output.FilePath)))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := writeTempSpec(s)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
			output.Debug("removing temp spec", "path", tmp, "error", err)
		}
	}()

	output.Debug("running packer", "command", r.packer.CommandLine(tmp), "dir", r.projectRoot)
	out, err := r.packer.Run(ctx, tmp)
	if out != "" {
		output.Debug("packer output", "target", s.Output.FilePath, "output", strings.TrimSpace(out))
	}
	return out, err
}

func writeTempSpec(s packspec.Spec) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding spec: %w", err)
	}

	f, err := os.CreateTemp("", "modpack-*.json")
	if err != nil {
		return "", fmt.Errorf("creating temp spec: %w", err)
	}
	name := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("writing temp spec: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("writing temp spec: %w", err)
	}
	return name, nil
}

// Clean removes and recreates the output directory below projectRoot.
// Directories outside the project, or the project root itself, are refused.
func Clean(projectRoot, outputDir string) (string, error) {
	dir := filepath.Join(projectRoot, filepath.FromSlash(outputDir))
	rel, err := filepath.Rel(projectRoot, dir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return dir, fmt.Errorf("refusing to clean %s: not inside the project root", dir)
	}

	if err := os.RemoveAll(dir); err != nil {
		return dir, fmt.Errorf("removing %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return dir, fmt.Errorf("creating %s: %w", dir, err)
	}
	return dir, nil
}
