package plan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modpack/cli/internal/config"
	"github.com/modpack/cli/internal/discovery"
	oerrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/module"
	"github.com/modpack/cli/internal/packspec"
	"github.com/modpack/cli/internal/testutil"
)

func setup(t *testing.T) (*discovery.Catalog, *packspec.Builder) {
	t.Helper()
	cfg := config.DefaultConfig()
	cat, err := discovery.Discover(context.Background(), testutil.NewMonorepo(t), cfg)
	require.NoError(t, err)
	return cat, packspec.NewBuilder(cfg)
}

func targets(p *Plan) []string {
	out := make([]string, len(p.Packs))
	for i, pk := range p.Packs {
		out[i] = pk.Target
	}
	return out
}

func TestBuild_AllFlags(t *testing.T) {
	cat, b := setup(t)

	tests := []struct {
		name string
		req  Request
		want []string
	}{
		{
			name: "all",
			req:  Request{All: true, AllBackend: true},
			want: []string{
				"backend/bootstrap", "backend/buchung", "backend/common", "backend/warenbestand",
				"frontend/customer", "frontend/employee", "frontend/reporting",
				"infrastructure",
			},
		},
		{
			name: "all backend",
			req:  Request{AllBackend: true, Target: "frontend"},
			want: []string{"backend/bootstrap", "backend/buchung", "backend/common", "backend/warenbestand"},
		},
		{
			name: "all frontend",
			req:  Request{AllFrontend: true},
			want: []string{"frontend/customer", "frontend/employee", "frontend/reporting"},
		},
		{
			name: "all infrastructure",
			req:  Request{AllInfrastructure: true},
			want: []string{"infrastructure/authentik", "infrastructure/postgres", "infrastructure"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Build(cat, b, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, targets(p))
		})
	}
}

func TestBuild_AllBackendUsesDepsAndLayers(t *testing.T) {
	cat, b := setup(t)

	p, err := Build(cat, b, Request{
		AllBackend: true,
		Deps:       packspec.DepsFull,
		Layers:     []module.Layer{module.LayerDomain},
	})
	require.NoError(t, err)

	paths := make(map[string]string)
	for _, pk := range p.Packs {
		paths[pk.Target] = pk.Spec.Output.FilePath
	}
	assert.Equal(t, ".repomix/outputs/backend/buchung-deps-full-domain-packed.txt", paths["backend/buchung"])
	assert.Equal(t, ".repomix/outputs/backend/warenbestand-domain-packed.txt", paths["backend/warenbestand"])
}

func TestBuild_Targets(t *testing.T) {
	cat, b := setup(t)

	tests := []struct {
		target string
		pack   string
		path   string
	}{
		{"backend/buchung", "backend/buchung", ".repomix/outputs/backend/buchung-deps-packed.txt"},
		{"buchung", "backend/buchung", ".repomix/outputs/backend/buchung-deps-packed.txt"},
		{"backend/warenbestand", "backend/warenbestand", ".repomix/outputs/backend/warenbestand-packed.txt"},
		{"backend/dbmigration", "backend/dbmigration", ".repomix/outputs/backend/dbmigration-packed.txt"},
		{"dbmigration", "backend/dbmigration", ".repomix/outputs/backend/dbmigration-packed.txt"},
		{"frontend", "frontend", ".repomix/outputs/frontend/all-packed.txt"},
		{"frontend/employee", "frontend/employee", ".repomix/outputs/frontend/employee-packed.txt"},
		{"infrastructure", "infrastructure", ".repomix/outputs/infrastructure/all-packed.txt"},
		{"infrastructure/redis", "infrastructure/redis", ".repomix/outputs/infrastructure/redis-packed.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			p, err := Build(cat, b, Request{Target: tt.target, Deps: packspec.DepsAPI})
			require.NoError(t, err)
			require.Len(t, p.Packs, 1)
			assert.Equal(t, tt.pack, p.Packs[0].Target)
			assert.Equal(t, tt.path, p.Packs[0].Spec.Output.FilePath)
			assert.NotEmpty(t, p.Title)
		})
	}
}

func TestBuild_BackendTitle(t *testing.T) {
	cat, b := setup(t)

	p, err := Build(cat, b, Request{Target: "buchung", Layers: module.AllLayers()})
	require.NoError(t, err)
	assert.Equal(t, "Packing backend/buchung (deps: none layers: domain,application,adapter)", p.Title)
}

func TestBuild_NotFound(t *testing.T) {
	cat, b := setup(t)

	tests := []struct {
		target string
		kind   string
		msg    string
	}{
		{"backend/missing", "backend", "backend module not found: missing"},
		{"frontend/missing", "frontend", "frontend module not found: missing"},
		{"frontend/dbmigration", "frontend", "frontend module not found: dbmigration"},
		{"infrastructure/authentik-worker", "infrastructure", "infrastructure module not found: authentik-worker"},
		{"missing", "", "unknown target: missing"},
		{"backend", "", "unknown target: backend"},
		{"docs/readme", "", "unknown target: docs/readme"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			_, err := Build(cat, b, Request{Target: tt.target})
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrNotFound))

			var nf *NotFoundError
			require.True(t, errors.As(err, &nf))
			assert.Equal(t, tt.kind, nf.Kind)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestBuild_NoTarget(t *testing.T) {
	cat, b := setup(t)

	_, err := Build(cat, b, Request{})
	assert.ErrorIs(t, err, ErrNoTarget)
}
