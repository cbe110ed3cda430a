package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})

	t.Run("collects every problem", func(t *testing.T) {
		neg := -1
		cfg := DefaultConfig()
		cfg.Output.Style = "html"
		cfg.Output.TopFilesLength = &neg
		cfg.Packer.Command = "  "
		cfg.Output.Dir = "/abs/out"

		err := cfg.Validate()
		require.Error(t, err)

		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		fields := make([]string, 0, len(verrs))
		for _, e := range verrs {
			fields = append(fields, e.Field)
		}
		assert.ElementsMatch(t, []string{"output.style", "output.topFilesLength", "packer.command", "output.dir"}, fields)
		assert.Contains(t, err.Error(), "config validation failed")
	})
}

func TestConfig_Lint(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "rental-infrastructure"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "rental-infrastructure", "docker-compose.yaml"), []byte("services: {}\n"), 0o644))

	cfg := DefaultConfig()
	cfg.Infrastructure.Services["keycloak"] = ServiceMapping{Patterns: []string{"**/*.json"}}
	cfg.Infrastructure.Services["worker"] = ServiceMapping{Skip: true, Folders: []string{"worker"}}

	warnings := cfg.Lint(root)

	assert.Contains(t, warnings, "infrastructure.services.keycloak: patterns without folders are ignored")
	assert.Contains(t, warnings, "infrastructure.services.worker: skip is set, other fields are ignored")

	joined := ""
	for _, w := range warnings {
		joined += w + "\n"
	}
	assert.Contains(t, joined, "backend.sourceRoot")
	assert.NotContains(t, joined, "infrastructure.manifest")
}
