package config

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "3000", cfg.Server.Port)
	require.Equal(t, "0.0.0.0:3000", cfg.Server.Addr())
	require.Equal(t, int64(5_000_000), cfg.Server.MaxBodySize)
	require.Equal(t, BackendFilesystem, cfg.Store.Backend)
	require.Equal(t, "data/cv", cfg.Store.Dir)
	require.Equal(t, 720*time.Hour, cfg.Drafts.TTL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("MAX_BODY_SIZE", "2MB")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/cv")
	t.Setenv("DRAFT_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, int64(2_000_000), cfg.Server.MaxBodySize)
	require.Equal(t, BackendPostgres, cfg.Store.Backend)
	require.Equal(t, time.Hour, cfg.Drafts.TTL)
}

func TestLoadRejectsBadSettings(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	require.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("STORE_BACKEND", "sqlite")
	_, err = Load()
	require.ErrorContains(t, err, "unknown STORE_BACKEND")

	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("MAX_BODY_SIZE", "lots")
	_, err = Load()
	require.ErrorContains(t, err, "MAX_BODY_SIZE")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := LoggingConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	log.Info("hidden")
	log.Warn("shown", "slug", "ada")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"slug":"ada"`)

	require.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	require.Equal(t, slog.LevelInfo, parseLevel("nonsense"))
}
