package testutils

import (
	"testing"

	"github.com/alchemorsel/recipebox/internal/infrastructure/config"
	"github.com/alchemorsel/recipebox/internal/infrastructure/persistence"
	"github.com/alchemorsel/recipebox/internal/infrastructure/persistence/sqlite"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

// NewSQLiteRepositories opens a private in-memory store that is closed with the test
func NewSQLiteRepositories(t *testing.T) *persistence.Repositories {
	t.Helper()

	store, err := sqlite.Open(sqlite.InMemory, gormlogger.Default.LogMode(gormlogger.Silent))
	require.NoError(t, err)

	repos := persistence.FromGorm(config.DriverSQLite, store)
	t.Cleanup(func() {
		_ = repos.Close()
	})
	return repos
}
