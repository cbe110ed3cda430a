package cmdutil

import (
	"context"
	"fmt"
	"os"

	"github.com/modpack/cli/internal/config"
	"github.com/modpack/cli/internal/discovery"
	"github.com/modpack/cli/internal/output"
)

// EnsureConfig loads the global configuration when PersistentPreRunE has not
// run, as happens during shell completion.
func EnsureConfig(cfg *config.GlobalConfig) error {
	if cfg.Config != nil {
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	loaded, err := config.LoadGlobalConfig(cfg.Flags, wd)
	if err != nil {
		return err
	}
	*cfg = *loaded
	return nil
}

// LoadCatalog discovers every module below the project root.
func LoadCatalog(ctx context.Context, cfg *config.GlobalConfig) (*discovery.Catalog, error) {
	if err := EnsureConfig(cfg); err != nil {
		return nil, err
	}

	output.Debug("discovering modules", "root", cfg.ProjectRoot)
	cat, err := discovery.Discover(ctx, cfg.ProjectRoot, cfg.Config)
	if err != nil {
		return nil, fmt.Errorf("discovering modules: %w", err)
	}
	return cat, nil
}
