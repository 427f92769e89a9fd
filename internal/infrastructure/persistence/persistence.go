// Package persistence opens the store selected by database.driver
package persistence

import (
	"context"
	"fmt"

	"github.com/alchemorsel/recipebox/internal/infrastructure/config"
	gormstore "github.com/alchemorsel/recipebox/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/recipebox/internal/infrastructure/persistence/mongo"
	"github.com/alchemorsel/recipebox/internal/infrastructure/persistence/postgres"
	"github.com/alchemorsel/recipebox/internal/infrastructure/persistence/sqlite"
	"github.com/alchemorsel/recipebox/internal/ports/outbound"
	"go.uber.org/zap"
)

// Repositories is the set of stores the application needs, backed by one driver
type Repositories struct {
	Driver      string
	Users       outbound.UserRepository
	Recipes     outbound.RecipeRepository
	UserRecipes outbound.UserRecipeRepository
	Pinger      outbound.Pinger
	close       func() error
}

// Close releases the underlying connection
func (r *Repositories) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// Open connects to the configured database
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Repositories, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		store, err := mongo.Connect(ctx, cfg.Database.URI, cfg.Database.Name, cfg.Database.ConnectTimeout, logger)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Driver:      cfg.Database.Driver,
			Users:       store.Users,
			Recipes:     store.Recipes,
			UserRecipes: store.UserRecipes,
			Pinger:      store,
			close:       store.Close,
		}, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.Database.Path, gormstore.NewLogger(logger, cfg.App.Debug))
		if err != nil {
			return nil, err
		}
		logger.Info("SQLite database opened", zap.String("path", cfg.Database.Path))
		return FromGorm(cfg.Database.Driver, store), nil

	case config.DriverPostgres:
		store, err := postgres.Open(ctx, cfg, gormstore.NewLogger(logger, cfg.App.Debug), logger)
		if err != nil {
			return nil, err
		}
		return FromGorm(cfg.Database.Driver, store), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// FromGorm exposes a GORM store as Repositories
func FromGorm(driver string, store *gormstore.Store) *Repositories {
	return &Repositories{
		Driver:      driver,
		Users:       store.Users,
		Recipes:     store.Recipes,
		UserRecipes: store.UserRecipes,
		Pinger:      store,
		close:       store.Close,
	}
}
