package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/modpack/cli/internal/config"
	oerrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/output"
	"github.com/modpack/cli/internal/testutil"
)

// isolate points every config lookup at a fresh directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("MODPACK_CONFIG", "")
	t.Setenv("MODPACK_ROOT", "")

	var logs bytes.Buffer
	output.SetOutput(&logs)
	t.Cleanup(func() { output.SetOutput(os.Stderr) })
	return dir
}

func execute(t *testing.T, cfg *config.GlobalConfig, args ...string) (string, string, error) {
	t.Helper()
	c := NewConfigCmd(cfg)
	c.SilenceUsage = true
	c.SilenceErrors = true
	var stdout, stderr bytes.Buffer
	c.SetOut(&stdout)
	c.SetErr(&stderr)
	c.SetArgs(args)
	err := c.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewConfigCmd(t *testing.T) {
	c := NewConfigCmd(&config.GlobalConfig{})

	assert.Equal(t, "config", c.Use)
	assert.NotEmpty(t, c.Short)

	names := make([]string, 0, len(c.Commands()))
	for _, sub := range c.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"show", "vet", "init"}, names)
}

func TestConfigInit_WritesDefaults(t *testing.T) {
	dir := isolate(t)

	stdout, _, err := execute(t, &config.GlobalConfig{}, "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration initialized")

	data, err := os.ReadFile(filepath.Join(dir, ".modpack.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# modpack configuration.")

	var written config.Config
	require.NoError(t, yaml.Unmarshal(data, &written))
	assert.Equal(t, config.DefaultBackendSourceRoot, written.Backend.SourceRoot)
	assert.Equal(t, config.DefaultPackerCommand, written.Packer.Command)
	assert.NoError(t, written.Validate())
}

func TestConfigInit_UsesRootFlag(t *testing.T) {
	isolate(t)
	root := t.TempDir()

	cfg := &config.GlobalConfig{Flags: config.GlobalFlags{Root: root}}
	_, _, err := execute(t, cfg, "init")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, ".modpack.yaml"))
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	dir := isolate(t)
	path := testutil.WriteFile(t, dir, ".modpack.yaml", "output:\n  dir: custom\n")

	_, _, err := execute(t, &config.GlobalConfig{}, "init")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrValidation))

	var detail *oerrors.DetailError
	require.True(t, errors.As(err, &detail))
	assert.Contains(t, detail.Hint, "--force")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "output:\n  dir: custom\n", string(data))
}

func TestConfigInit_Force(t *testing.T) {
	dir := isolate(t)
	path := testutil.WriteFile(t, dir, ".modpack.yaml", "output:\n  dir: custom\n")

	_, _, err := execute(t, &config.GlobalConfig{}, "init", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), config.DefaultOutputDir)
}

func TestConfigShow(t *testing.T) {
	dir := isolate(t)
	testutil.WriteFile(t, dir, ".modpack.yaml", "output:\n  style: markdown\n")

	stdout, _, err := execute(t, &config.GlobalConfig{}, "show")
	require.NoError(t, err)

	assert.Contains(t, stdout, "# config: "+filepath.Join(dir, ".modpack.yaml"))
	assert.Contains(t, stdout, "# root:   "+dir)
	assert.Contains(t, stdout, "style: markdown")
	assert.Contains(t, stdout, "dir: "+config.DefaultOutputDir)
}

func TestConfigShow_Defaults(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, &config.GlobalConfig{}, "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "built-in defaults")
	assert.Contains(t, stdout, "command: "+config.DefaultPackerCommand)
}

func TestConfigVet_Defaults(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, &config.GlobalConfig{}, "vet")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration is valid")
}

func TestConfigVet_ValidConfig(t *testing.T) {
	root := testutil.NewMonorepo(t)
	isolate(t)
	path := testutil.WriteFile(t, root, ".modpack.yaml", "output:\n  style: plain\n")

	cfg := &config.GlobalConfig{Flags: config.GlobalFlags{Config: path}}
	stdout, _, err := execute(t, cfg, "vet")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration is valid: "+path)
}

func TestConfigVet_InvalidValues(t *testing.T) {
	dir := isolate(t)
	path := testutil.WriteFile(t, dir, ".modpack.yaml",
		"output:\n  style: html\npacker:\n  maxOutputBytes: -1\n")

	cfg := &config.GlobalConfig{Flags: config.GlobalFlags{Config: path}}
	stdout, stderr, err := execute(t, cfg, "vet")
	require.Error(t, err)

	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "config validation failed")
	assert.Contains(t, stderr, "output.style")
	assert.Contains(t, stderr, "packer.maxOutputBytes")
	assert.True(t, errors.Is(err, oerrors.ErrValidation))

	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.True(t, exitErr.Printed)
}

func TestConfigVet_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	cfg := &config.GlobalConfig{Flags: config.GlobalFlags{Config: filepath.Join(dir, "missing.yaml")}}
	_, _, err := execute(t, cfg, "vet")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrConfig))
	assert.Contains(t, err.Error(), "config file not found")
}

func TestConfigVet_MalformedYAML(t *testing.T) {
	dir := isolate(t)
	path := testutil.WriteFile(t, dir, ".modpack.yaml", "output: [unclosed\n")

	cfg := &config.GlobalConfig{Flags: config.GlobalFlags{Config: path}}
	_, _, err := execute(t, cfg, "vet")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrConfig))
}

func TestSubcommandsRejectArgs(t *testing.T) {
	for _, name := range []string{"show", "vet", "init"} {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			_, _, err := execute(t, &config.GlobalConfig{}, name, "extra")
			assert.Error(t, err)
		})
	}
}
