package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/testutil"
)

func TestDeps_APIMode(t *testing.T) {
	newMonorepo(t)

	stdout, _, err := execute(t, "deps", "buchung")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Buchung")
	assert.Contains(t, stdout, "Mode: API only")
	assert.Contains(t, stdout, "Warenbestand")
	assert.Contains(t, stdout, "[api]")
}

func TestDeps_FullMode(t *testing.T) {
	newMonorepo(t)

	stdout, _, err := execute(t, "deps", "buchung", "--full")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Mode: Full code")
	assert.Contains(t, stdout, "[full]")
	assert.NotContains(t, stdout, "[api]")
}

func TestDeps_NoDependencies(t *testing.T) {
	newMonorepo(t)

	stdout, _, err := execute(t, "deps", "warenbestand")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No dependencies")
}

func TestDeps_UnknownModule(t *testing.T) {
	newMonorepo(t)

	_, stderr, err := execute(t, "deps", "nope")
	require.Error(t, err)

	assert.Contains(t, stderr, "Available backend modules:")
	assert.Contains(t, stderr, "  - buchung")
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))

	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.True(t, exitErr.Printed)
}

func TestDeps_RequiresModule(t *testing.T) {
	newMonorepo(t)

	_, _, err := execute(t, "deps")
	assert.Error(t, err)
}

func TestDeps_UsedBy(t *testing.T) {
	newMonorepo(t)

	stdout, _, err := execute(t, "deps", "warenbestand")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Used by: buchung")
}

func TestDeps_UnresolvedDependency(t *testing.T) {
	root := newMonorepo(t)
	testutil.WriteFile(t, root, "rental-backend/src/main/java/de/cenglisch/rentalbackend/flotte/package-info.java",
		testutil.PackageInfo("flotte", "", `@ApplicationModule(allowedDependencies = {"ghost::api"})`))

	stdout, _, err := execute(t, "deps", "flotte")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ghost")
	assert.Contains(t, stdout, "missing")
}
