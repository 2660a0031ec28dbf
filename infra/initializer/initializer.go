// Package initializer assembles the process-wide dependencies: logger,
// database connection, schema, and the UnitOfWork handed to the services.
package initializer

import (
	"fmt"

	"github.com/amirasaad/banking/infra"
	"github.com/amirasaad/banking/pkg/config"
)

// InitializeDependencies builds the config.Deps container from loaded config.
func InitializeDependencies(cfg *config.App) (*config.Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &config.Deps{
		Uow:    infra.NewUoW(db),
		Logger: logger,
		Config: cfg,
	}, nil
}
