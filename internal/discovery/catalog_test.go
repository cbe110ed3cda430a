package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modpack/cli/internal/config"
	"github.com/modpack/cli/internal/module"
	"github.com/modpack/cli/internal/testutil"
)

func TestDiscover(t *testing.T) {
	root := testutil.NewMonorepo(t)

	c, err := Discover(context.Background(), root, config.DefaultConfig())
	require.NoError(t, err)

	assert.Len(t, c.Backend, 4)
	assert.Len(t, c.Frontend, 3)
	assert.Len(t, c.Infrastructure, 4)
	assert.Equal(t, "dbmigration", c.DBMigration.Name)
	assert.Equal(t, []string{"bootstrap", "buchung", "common", "warenbestand"}, c.Graph.Names())

	m, ok := c.BackendModule("buchung")
	require.True(t, ok)
	assert.Equal(t, "Buchung", m.DisplayName)

	_, ok = c.FrontendModule("employee")
	assert.True(t, ok)
	_, ok = c.InfrastructureModule("authentik")
	assert.True(t, ok)
	_, ok = c.InfrastructureModule("authentik-server")
	assert.False(t, ok)
}

// onlyExtractor declares a single module and renames it.
type onlyExtractor struct {
	name, display string
}

func (e onlyExtractor) Extract(content []byte) (Facts, bool) {
	facts, ok := RegexExtractor{}.Extract(content)
	if !ok || facts.Name != e.name {
		return Facts{}, false
	}
	facts.DisplayName = e.display
	return facts, true
}

func TestDiscover_WithExtractor(t *testing.T) {
	root := testutil.NewMonorepo(t)

	c, err := Discover(context.Background(), root, config.DefaultConfig(),
		WithExtractor(onlyExtractor{name: "buchung", display: "Bookings"}))
	require.NoError(t, err)

	require.Len(t, c.Backend, 1)
	assert.Equal(t, "Bookings", c.Backend[0].DisplayName)
	assert.Equal(t, []string{"buchung"}, c.Graph.Names())
	assert.Len(t, c.Frontend, 3)
}

func TestDiscover_EmptyRepoIsNotAnError(t *testing.T) {
	c, err := Discover(context.Background(), t.TempDir(), config.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, c.Backend)
	assert.Empty(t, c.Frontend)
	assert.Empty(t, c.Infrastructure)
	assert.Empty(t, c.Graph)
}

func TestDiscover_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Discover(ctx, testutil.NewMonorepo(t), config.DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCatalog_Targets(t *testing.T) {
	c, err := Discover(context.Background(), testutil.NewMonorepo(t), config.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"backend/bootstrap",
		"backend/buchung",
		"backend/common",
		"backend/warenbestand",
		"backend/dbmigration",
		"frontend/customer",
		"frontend/employee",
		"frontend/reporting",
		"frontend",
		"infrastructure",
		"infrastructure/authentik",
		"infrastructure/postgres",
	}, c.Targets(TargetFilter{}))

	assert.Equal(t, []string{
		"infrastructure",
		"infrastructure/authentik",
		"infrastructure/postgres",
	}, c.Targets(TargetFilter{Infrastructure: true}))

	assert.Equal(t, []string{
		"frontend/customer",
		"frontend/employee",
		"frontend/reporting",
		"frontend",
	}, c.Targets(TargetFilter{Frontend: true}))
}

func TestDBMigration(t *testing.T) {
	m := DBMigration(config.DefaultConfig())

	assert.Equal(t, "backend/dbmigration", m.Address())
	assert.Equal(t, module.CategoryDBMigration, m.Category)
	assert.Equal(t, "Database Migrations", m.DisplayName)
	assert.Equal(t, "rental-backend/src/main/resources/db/changelog", m.BasePath)
	assert.Equal(t, []string{
		"rental-backend/src/main/resources/db/changelog/**/*.sql",
		"rental-backend/src/main/resources/db/changelog/**/*.xml",
		"rental-backend/src/main/resources/db/changelog/**/*.yaml",
		"rental-backend/src/main/resources/db/changelog/**/*.yml",
		"rental-backend/src/main/resources/db/changelog/**/*.json",
	}, m.Patterns)
}
