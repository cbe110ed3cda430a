package module

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptor_Address(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
		want string
	}{
		{"backend", Backend{Info: Info{Name: "buchung", Category: CategoryBackend}}, "backend/buchung"},
		{"frontend", Frontend{Info: Info{Name: "customer", Category: CategoryFrontend}}, "frontend/customer"},
		{"infrastructure", Infrastructure{Info: Info{Name: "postgres", Category: CategoryInfrastructure}}, "infrastructure/postgres"},
		{"dbmigration packs under backend", DBMigration{Info: Info{Name: "dbmigration", Category: CategoryDBMigration}}, "backend/dbmigration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.Address())
			assert.Equal(t, tt.d.Meta().Name, tt.d.Meta().Name)
		})
	}
}

func TestInfrastructure_HasDedicatedFiles(t *testing.T) {
	manifestOnly := Infrastructure{Patterns: []string{"rental-infrastructure/docker-compose.yaml"}}
	assert.False(t, manifestOnly.HasDedicatedFiles())

	withFolder := Infrastructure{Patterns: []string{
		"rental-infrastructure/postgres/**/*.sql",
		"rental-infrastructure/docker-compose.yaml",
	}}
	assert.True(t, withFolder.HasDedicatedFiles())
}

func TestParseLayers(t *testing.T) {
	tests := []struct {
		input   string
		want    []Layer
		wantErr bool
	}{
		{"domain", []Layer{LayerDomain}, false},
		{"domain,adapter", []Layer{LayerDomain, LayerAdapter}, false},
		{" domain , application ", []Layer{LayerDomain, LayerApplication}, false},
		{"", nil, false},
		{"adapter,domain,adapter", []Layer{LayerAdapter, LayerDomain}, false},
		{"domain,infra", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLayers(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Authentik", Capitalize("authentik"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "X", Capitalize("x"))
	assert.Equal(t, "Übersicht", Capitalize("übersicht"))
	assert.True(t, utf8.ValidString(Capitalize("ärger")))
}
