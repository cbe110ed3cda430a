package version

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// packerVersionRegex matches version output like "1.4.2" or "v0.2.41".
var packerVersionRegex = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?`)

const detectTimeout = 5 * time.Second

// PackerInfo describes the installed packer binary.
type PackerInfo struct {
	Command string `json:"command"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Found   bool   `json:"found"`
	Message string `json:"message,omitempty"`
}

// DetectPacker looks up command in PATH and asks it for its version.
func DetectPacker(ctx context.Context, command string) PackerInfo {
	info := PackerInfo{Command: command}

	path, err := exec.LookPath(command)
	if err != nil {
		info.Message = command + " not found in PATH"
		return info
	}
	info.Path = path
	info.Found = true

	v, err := packerVersion(ctx, path)
	if err != nil {
		info.Message = "failed to get version: " + err.Error()
		return info
	}
	info.Version = v
	return info
}

func packerVersion(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return "", err
	}
	return extractVersion(out.String())
}

// extractVersion pulls the first version number out of output and
// normalizes it to a "v" prefix.
func extractVersion(output string) (string, error) {
	match := packerVersionRegex.FindString(output)
	if match == "" {
		return "", fmt.Errorf("failed to parse version from output: %q", strings.TrimSpace(output))
	}
	if !strings.HasPrefix(match, "v") {
		match = "v" + match
	}
	return match, nil
}
