package discovery

import (
	"github.com/modpack/cli/internal/config"
	"github.com/modpack/cli/internal/module"
)

// DBMigrationName is the fixed name of the migration module.
const DBMigrationName = "dbmigration"

// changelogExtensions are the changelog formats included in the migration pack.
var changelogExtensions = []string{"sql", "xml", "yaml", "yml", "json"}

// DBMigration returns the migration descriptor. It needs no scan: the
// changelog location is fixed by configuration.
func DBMigration(cfg *config.Config) module.DBMigration {
	base := cfg.ChangelogPath()

	patterns := make([]string, 0, len(changelogExtensions))
	for _, ext := range changelogExtensions {
		patterns = append(patterns, base+"/**/*."+ext)
	}

	return module.DBMigration{
		Info: module.Info{
			Name:        DBMigrationName,
			DisplayName: "Database Migrations",
			Description: "Liquibase/Flyway database migration files",
			Category:    module.CategoryDBMigration,
		},
		BasePath: base,
		Patterns: patterns,
	}
}
