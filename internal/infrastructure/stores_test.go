package infrastructure

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"cv-generator/internal/adapter/repository"
	"cv-generator/internal/config"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestOpenStoreLocalBackends(t *testing.T) {
	ctx := context.Background()

	s, closeFn, err := OpenStore(ctx, config.StoreConfig{Backend: config.BackendFilesystem, Dir: t.TempDir()}, discard())
	require.NoError(t, err)
	defer closeFn()
	require.IsType(t, &repository.FilesystemStore{}, s)

	s, closeFn, err = OpenStore(ctx, config.StoreConfig{Backend: config.BackendMemory}, discard())
	require.NoError(t, err)
	defer closeFn()
	require.IsType(t, &repository.MemoryStore{}, s)

	_, _, err = OpenStore(ctx, config.StoreConfig{Backend: "tape"}, discard())
	require.Error(t, err)
}

func TestOpenDrafts(t *testing.T) {
	ctx := context.Background()

	d, closeFn, err := OpenDrafts(ctx, config.DraftConfig{}, discard())
	require.NoError(t, err)
	closeFn()
	require.IsType(t, &repository.MemoryDrafts{}, d)

	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	d, closeFn, err = OpenDrafts(ctx, config.DraftConfig{RedisURL: "redis://" + m.Addr() + "/0", TTL: time.Hour}, discard())
	require.NoError(t, err)
	defer closeFn()
	require.IsType(t, &repository.RedisDrafts{}, d)
	require.NoError(t, d.Save(ctx, "k", []byte(`{}`)))
	require.True(t, m.Exists("k"))
}
