package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so no config or .env file is picked up.
func isolate(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr)
	assert.Equal(t, DriverJSON, cfg.Database.Driver)
	assert.Equal(t, "data/db.json", cfg.Database.Path)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, 5, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("NOTES_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("NOTES_DATABASE_DRIVER", "SQLite")
	t.Setenv("NOTES_DATABASE_PATH", "/tmp/notes.db")
	t.Setenv("NOTES_AUTH_BCRYPTCOST", "10")
	t.Setenv("NOTES_METRICS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/notes.db", cfg.Database.Path)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_LegacyDBPath(t *testing.T) {
	isolate(t)
	t.Setenv("DB_PATH", "/var/lib/notes/db.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/notes/db.json", cfg.Database.Path)
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("NOTES_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("NOTES_LOG_LEVEL") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)

	t.Setenv("NOTES_DATABASE_DRIVER", "mongo")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("NOTES_DATABASE_DRIVER", "json")
	t.Setenv("NOTES_STORAGE_BACKEND", "s3")
	_, err = Load()
	assert.Error(t, err, "s3 backend without a bucket must be rejected")

	t.Setenv("NOTES_STORAGE_BUCKET", "notes")
	_, err = Load()
	assert.NoError(t, err)
}
