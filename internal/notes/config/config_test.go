package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickynotes/internal/notes/config"
	"stickynotes/internal/notes/layout"
	"stickynotes/pkg/logger"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.GetAddress())
	assert.Equal(t, config.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "animated-notes-app-notes", cfg.Storage.NotesKey)
	assert.Equal(t, "animated-notes-app-state", cfg.Storage.AppStateKey)
	assert.Equal(t, 5*time.Second, cfg.Shutdown.GetTimeout())
	assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
	assert.Equal(t, layout.DefaultConfig(), cfg.Layout)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("NOTES_HTTP_PORT", "9090")
	t.Setenv("NOTES_STORAGE_BACKEND", "redis")
	t.Setenv("NOTES_LOGGER_MODE", "production")
	t.Setenv("NOTES_LAYOUT_STEP_X", "45")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, config.BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
	assert.Equal(t, 45, cfg.Layout.StepX)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.yaml")
	content := `
http:
  port: 7070
storage:
  backend: sqlite
  sqlite_path: /tmp/notes-test.db
postgres:
  host: db
  database: stickies
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv(config.EnvConfigPath, path)

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.HTTP.Port)
	assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/notes-test.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "postgres://postgres:postgres@db:5432/stickies?sslmode=disable", cfg.Postgres.GetConnectionURL())
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("NOTES_STORAGE_BACKEND", "localstorage")

	_, err := config.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrUnknownBackend)
}

func TestLoad_NegativeLayout(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("NOTES_LAYOUT_PADDING", "-1")

	_, err := config.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, layout.ErrNegativeValue)
	assert.ErrorContains(t, err, "padding=-1")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := config.Load(context.Background())
	assert.Error(t, err)
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	p := config.PostgresConfig{Host: "h", Port: 5433, User: "u", Password: "p", Database: "d"}
	assert.Equal(t, "host=h port=5433 user=u password=p dbname=d sslmode=disable", p.GetDSN())
}

func TestRedisConfig_ClientConfig(t *testing.T) {
	r := config.RedisConfig{Host: "cache", Port: 6380, DB: 2, PoolSize: 4, Timeout: time.Second}
	c := r.ClientConfig()
	assert.Equal(t, "cache:6380", c.Address())
	assert.Equal(t, 2, c.DB)
	assert.Equal(t, 4, c.PoolSize)
}
