package gorm

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Store bundles the GORM repositories over one connection
type Store struct {
	db          *gorm.DB
	Users       *UserRepository
	Recipes     *RecipeRepository
	UserRecipes *UserRecipeRepository
}

// NewStore creates the repositories for db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:          db,
		Users:       NewUserRepository(db),
		Recipes:     NewRecipeRepository(db),
		UserRecipes: NewUserRecipeRepository(db),
	}
}

// AutoMigrate creates or updates the tables for every model
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Ping checks the underlying connection
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
