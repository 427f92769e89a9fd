// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"

	gormstore "github.com/alchemorsel/recipebox/internal/infrastructure/persistence/gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InMemory selects a private in-memory database
const InMemory = ":memory:"

// Open opens the SQLite database at dbPath and migrates the schema
func Open(dbPath string, log logger.Interface) (*gormstore.Store, error) {
	if dbPath == "" {
		dbPath = InMemory
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         log,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// A single connection keeps an in-memory database shared across the pool
	if dbPath == InMemory {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	store := gormstore.NewStore(db)
	if err := store.AutoMigrate(); err != nil {
		return nil, err
	}

	return store, nil
}
