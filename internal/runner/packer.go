package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/modpack/cli/internal/config"
	oerrors "github.com/modpack/cli/internal/errors"
)

// ErrOutputLimit is returned when the packer writes more than the capture limit.
var ErrOutputLimit = errors.New("packer output exceeded limit")

// Packer wraps calls to the external packer binary.
type Packer struct {
	// Command is the executable name or path.
	Command string

	// Args are passed before "--config <file>".
	Args []string

	// Dir is the working directory, normally the project root.
	Dir string

	// MaxOutputBytes caps captured stdout and stderr combined. Zero means
	// no limit.
	MaxOutputBytes int64
}

// NewPacker creates a Packer from the packer configuration.
func NewPacker(dir string, cfg config.PackerConfig) *Packer {
	return &Packer{
		Command:        cfg.Command,
		Args:           append([]string(nil), cfg.Args...),
		Dir:            dir,
		MaxOutputBytes: cfg.MaxOutputBytes,
	}
}

// CommandLine renders the invocation for a config file, for logging.
func (p *Packer) CommandLine(configFile string) string {
	return strings.Join(append([]string{p.path()}, p.args(configFile)...), " ")
}

// Run executes the packer with the given config file and returns its
// combined output.
func (p *Packer) Run(ctx context.Context, configFile string) (string, error) {
	args := p.args(configFile)
	cmd := exec.CommandContext(ctx, p.path(), args...)
	cmd.Dir = p.Dir

	out := &cappedBuffer{limit: p.MaxOutputBytes}
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out.String(), fmt.Errorf("%w: %s failed with exit code %d: %s",
				oerrors.ErrPacker, p.path(), exitErr.ExitCode(), lastLine(out.String()))
		}
		return out.String(), fmt.Errorf("%w: %s: %w", oerrors.ErrPacker, p.path(), err)
	}

	if out.overflow {
		return out.String(), fmt.Errorf("%w: %w (%d bytes)", oerrors.ErrPacker, ErrOutputLimit, p.MaxOutputBytes)
	}

	return out.String(), nil
}

func (p *Packer) args(configFile string) []string {
	args := make([]string, 0, len(p.Args)+2)
	args = append(args, p.Args...)
	return append(args, "--config", configFile)
}

func (p *Packer) path() string {
	if p.Command != "" {
		return p.Command
	}
	return config.DefaultPackerCommand
}

// cappedBuffer keeps at most limit bytes and records whether more arrived.
// Writes never fail so the child is not blocked on a full pipe.
type cappedBuffer struct {
	buf      strings.Builder
	limit    int64
	overflow bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if b.limit <= 0 {
		b.buf.Write(p)
		return len(p), nil
	}

	remaining := b.limit - int64(b.buf.Len())
	if int64(len(p)) > remaining {
		b.overflow = true
		if remaining > 0 {
			b.buf.Write(p[:remaining])
		}
		return len(p), nil
	}
	b.buf.Write(p)
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	return b.buf.String()
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
