package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no config.toml present

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "compras", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "sesion", cfg.Session.CookieName)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "uploads/pdfs", cfg.Storage.UploadDir)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
	assert.Equal(t, 60*time.Second, cfg.Telemetry.MetricsInterval)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("COMPRAS_APP_PORT", "9090")
	t.Setenv("COMPRAS_DATABASE_DBNAME", "compras_test")
	t.Setenv("COMPRAS_STORAGE_BACKEND", "s3")
	t.Setenv("COMPRAS_STORAGE_BUCKET", "facturas")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "compras_test", cfg.Database.DBName)
	assert.Equal(t, "s3", cfg.Storage.Backend)
	assert.Equal(t, "facturas", cfg.Storage.Bucket)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("rejects unknown driver", func(t *testing.T) {
		cfg := base()
		cfg.Database.Driver = "oracle"
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects idle conns above open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 50
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects s3 backend without bucket", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Backend = "s3"
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects out-of-range sampling ratio", func(t *testing.T) {
		cfg := base()
		cfg.Telemetry.SamplingRatio = 1.5
		assert.Error(t, cfg.validate())
	})

	t.Run("production requires session secret", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session.secret")
	})

	t.Run("production rejects sqlite", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Session.Secret = strings.Repeat("s", 32)
		cfg.Database.Driver = "sqlite"
		assert.Error(t, cfg.validate())
	})

	t.Run("production rejects wildcard CORS", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Session.Secret = strings.Repeat("s", 32)
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, cfg.validate())
	})

	t.Run("valid production config passes", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Session.Secret = strings.Repeat("s", 32)
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		assert.NoError(t, cfg.validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := &DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "compras",
		Password: "p@ss/word",
		DBName:   "compras",
		SSLMode:  "require",
	}
	dsn := d.DSN()

	assert.Contains(t, dsn, "db.internal:5433")
	assert.Contains(t, dsn, "sslmode=require")
	// Password must be URL-escaped.
	assert.NotContains(t, dsn, "p@ss/word")
}
