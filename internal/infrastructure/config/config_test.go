package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: RecipeBox\n"))
	require.NoError(t, err)

	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiration)
	assert.Equal(t, developmentJWTSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, "llama3-8b-8192", cfg.AI.Model)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: sqlite
  path: /tmp/recipes.db
server:
  port: 9090
ai:
  timeout: 15s
`)
	t.Setenv("RECIPEBOX_AUTH_JWT_SECRET", "from-env")
	t.Setenv("RECIPEBOX_SERVER_PORT", "9191")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/recipes.db", cfg.Database.Path)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 15*time.Second, cfg.AI.Timeout)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	_, err := Load(writeConfig(t, "app:\n  environment: production\n"))

	assert.ErrorContains(t, err, "jwt_secret")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:        AppConfig{Name: "RecipeBox"},
			Server:     ServerConfig{Port: 8080},
			Database:   DatabaseConfig{Driver: DriverPostgres, Host: "db", Name: "recipebox"},
			Auth:       AuthConfig{JWTSecret: "s", JWTExpiration: time.Hour},
			Monitoring: MonitoringConfig{SamplingRate: 0.5},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"UnknownDriver", func(c *Config) { c.Database.Driver = "oracle" }},
		{"SQLiteWithoutPath", func(c *Config) { c.Database = DatabaseConfig{Driver: DriverSQLite} }},
		{"MongoWithoutURI", func(c *Config) { c.Database = DatabaseConfig{Driver: DriverMongo, Name: "x"} }},
		{"BadPort", func(c *Config) { c.Server.Port = 70000 }},
		{"ZeroExpiration", func(c *Config) { c.Auth.JWTExpiration = 0 }},
		{"SamplingOutOfRange", func(c *Config) { c.Monitoring.SamplingRate = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConnectionStrings(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Database: DatabaseConfig{
			Host:     "db",
			Port:     5432,
			Username: "app",
			Password: "p@ss",
			Name:     "recipebox",
			SSLMode:  "disable",
		},
	}

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
	assert.Equal(t, "host=db port=5432 user=app password=p@ss dbname=recipebox sslmode=disable", cfg.GetDSN())
	assert.Equal(t, "postgres://app:p%40ss@db:5432/recipebox?sslmode=disable", cfg.GetMigrationURL())
}
