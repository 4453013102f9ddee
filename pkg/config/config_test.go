// nolint: funlen
package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviecatalog/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"APP_ENV":          "test",
			"PORT":             "8080",
			"SENTRY_DSN":       "https://test@sentry.io/123",
			"ALLOW_ORIGINS":    "*",
			"RATE_LIMIT":       "5.5",
			"DB_DRIVER":        "mongodb",
			"DB_NAME":          "testdb",
			"DB_HOST":          "localhost",
			"DB_PORT":          "5432",
			"DB_USER":          "testuser",
			"DB_PASS":          "testpass",
			"ENABLE_SSL":       "true",
			"MONGO_URI":        "mongodb://localhost:27017",
			"MONGO_DATABASE":   "catalog",
			"DDB_MOVIES_TABLE": "catalog-movies",
		}
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "https://test@sentry.io/123", cfg.SentryDSN)
		assert.Equal(t, "*", cfg.AllowOrigins)
		assert.Equal(t, 5.5, cfg.RateLimit)
		assert.Equal(t, config.DriverMongoDB, cfg.DB.Driver)
		assert.Equal(t, "testdb", cfg.DB.Name)
		assert.Equal(t, "localhost", cfg.DB.Host)
		assert.Equal(t, 5432, cfg.DB.Port)
		assert.Equal(t, "testuser", cfg.DB.User)
		assert.Equal(t, "testpass", cfg.DB.Pass)
		assert.True(t, cfg.DB.EnableSSL)
		assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
		assert.Equal(t, "catalog", cfg.Mongo.Database)
		assert.Equal(t, "movies", cfg.Mongo.Collection)
		assert.Equal(t, "catalog-movies", cfg.DynamoDB.MoviesTable)
	})

	t.Run("applies defaults", func(t *testing.T) {
		for _, key := range []string{"APP_ENV", "PORT", "RATE_LIMIT", "DB_DRIVER", "LOG_LEVEL"} {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "local", cfg.AppEnv)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, float64(20), cfg.RateLimit)
		assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("handles invalid port number", func(t *testing.T) {
		t.Setenv("PORT", "invalid")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid boolean value", func(t *testing.T) {
		t.Setenv("ENABLE_SSL", "not-a-boolean")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("rejects unknown storage driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "cassandra")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), `unsupported DB_DRIVER "cassandra"`)
	})
}
