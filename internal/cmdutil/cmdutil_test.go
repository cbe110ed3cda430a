package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modpack/cli/internal/config"
	"github.com/modpack/cli/internal/output"
	"github.com/modpack/cli/internal/runner"
	"github.com/modpack/cli/internal/testutil"
)

func TestLoadCatalog_LoadsConfigOnDemand(t *testing.T) {
	root := testutil.NewMonorepo(t)
	cfg := &config.GlobalConfig{Flags: config.GlobalFlags{Root: root}}

	cat, err := LoadCatalog(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.ProjectRoot)
	assert.NotNil(t, cfg.Config)
	assert.Len(t, cat.Backend, 4)
}

func TestLoadCatalog_LogsDiscoveryOnce(t *testing.T) {
	root := testutil.NewMonorepo(t)

	var logs bytes.Buffer
	output.SetupLogging(output.LogConfig{Verbose: true})
	output.SetOutput(&logs)
	t.Cleanup(func() { output.SetupLogging(output.LogConfig{}) })

	_, err := LoadCatalog(context.Background(), &config.GlobalConfig{Flags: config.GlobalFlags{Root: root}})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(logs.String(), "discovery complete"))
}

func TestWriteAvailableTargets(t *testing.T) {
	root := testutil.NewMonorepo(t)
	cat, err := LoadCatalog(context.Background(), &config.GlobalConfig{Flags: config.GlobalFlags{Root: root}})
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteAvailableTargets(&buf, cat)

	out := buf.String()
	assert.Contains(t, out, "backend/dbmigration")
	assert.Contains(t, out, "backend/buchung")
	assert.Contains(t, out, "frontend/employee")
	assert.Contains(t, out, "infrastructure/redis")
}

func TestWriteResults(t *testing.T) {
	batch := &runner.Batch{
		Results: []runner.Result{
			{Target: "backend/buchung", OutputPath: "out/backend/buchung-packed.txt", Success: true, Duration: time.Second},
			{Target: "frontend/customer", Err: errors.New("boom")},
		},
		Succeeded: 1,
	}

	var buf bytes.Buffer
	WriteResults(&buf, batch, false)

	out := buf.String()
	assert.Contains(t, out, "backend/buchung")
	assert.Contains(t, out, "packed")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "Completed 1/2 packs")
}

func TestWriteResults_Single(t *testing.T) {
	batch := &runner.Batch{
		Results:   []runner.Result{{Target: "frontend", OutputPath: "out/frontend/all-packed.txt", Success: true}},
		Succeeded: 1,
	}

	var buf bytes.Buffer
	WriteResults(&buf, batch, true)

	out := buf.String()
	assert.Contains(t, out, "planned")
	assert.Contains(t, out, "Would generate: out/frontend/all-packed.txt")
	assert.NotContains(t, out, "Completed")
}

func TestTargetCompletion(t *testing.T) {
	root := testutil.NewMonorepo(t)
	cfg := &config.GlobalConfig{Flags: config.GlobalFlags{Root: root}}
	cmd := &cobra.Command{Use: "pack"}

	got, directive := TargetCompletion(cfg)(cmd, nil, "backend/b")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	assert.Equal(t, []cobra.Completion{"backend/bootstrap", "backend/buchung"}, got)

	got, _ = TargetCompletion(cfg)(cmd, []string{"backend/buchung"}, "")
	assert.Empty(t, got)
}

func TestBackendModuleCompletion(t *testing.T) {
	root := testutil.NewMonorepo(t)
	cfg := &config.GlobalConfig{Flags: config.GlobalFlags{Root: root}}

	got, _ := BackendModuleCompletion(cfg)(&cobra.Command{Use: "deps"}, nil, "")
	assert.Equal(t, []cobra.Completion{"bootstrap", "buchung", "common", "warenbestand"}, got)
}
