package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_JSON(t *testing.T) {
	newMonorepo(t)

	stdout, _, err := execute(t, "list", "--json")
	require.NoError(t, err)

	var targets []string
	require.NoError(t, json.Unmarshal([]byte(stdout), &targets))

	assert.Contains(t, targets, "backend/buchung")
	assert.Contains(t, targets, "backend/dbmigration")
	assert.Contains(t, targets, "frontend/customer")
	assert.Contains(t, targets, "frontend")
	assert.Contains(t, targets, "infrastructure")
	assert.Contains(t, targets, "infrastructure/postgres")
	assert.NotContains(t, targets, "infrastructure/redis")
}

func TestList_JSONFilter(t *testing.T) {
	newMonorepo(t)

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name:    "backend only",
			args:    []string{"list", "--json", "-b"},
			want:    []string{"backend/buchung", "backend/dbmigration"},
			notWant: []string{"frontend", "infrastructure"},
		},
		{
			name:    "frontend and infrastructure",
			args:    []string{"list", "--json", "-f", "-i"},
			want:    []string{"frontend", "frontend/employee", "infrastructure"},
			notWant: []string{"backend/buchung"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.NoError(t, err)

			var targets []string
			require.NoError(t, json.Unmarshal([]byte(stdout), &targets))
			for _, w := range tt.want {
				assert.Contains(t, targets, w)
			}
			for _, n := range tt.notWant {
				assert.NotContains(t, targets, n)
			}
		})
	}
}

func TestList_Tables(t *testing.T) {
	newMonorepo(t)

	stdout, _, err := execute(t, "list")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Backend Bounded Contexts")
	assert.Contains(t, stdout, "Frontend Modules")
	assert.Contains(t, stdout, "Infrastructure Services")
	assert.Contains(t, stdout, "backend/dbmigration")
	assert.Contains(t, stdout, "→ warenbestand")
	assert.Contains(t, stdout, "compose only")
}

func TestList_BackendOnly(t *testing.T) {
	newMonorepo(t)

	stdout, _, err := execute(t, "list", "--backend")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Backend Bounded Contexts")
	assert.NotContains(t, stdout, "Frontend Modules")
	assert.NotContains(t, stdout, "Infrastructure Services")
}
