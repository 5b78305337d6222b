package repository

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisDraftsSaveLoadDelete(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	drafts := NewRedisDrafts(client, time.Hour)
	ctx := context.Background()

	_, ok, err := drafts.Load(ctx, "cv-generator-draft:s1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, drafts.Save(ctx, "cv-generator-draft:s1", []byte(`{"theme":"rose"}`)))
	b, ok, err := drafts.Load(ctx, "cv-generator-draft:s1")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"theme":"rose"}`, string(b))

	require.NoError(t, drafts.Delete(ctx, "cv-generator-draft:s1"))
	_, ok, err = drafts.Load(ctx, "cv-generator-draft:s1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisDraftsExpire(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	drafts := NewRedisDrafts(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, drafts.Save(ctx, "k", []byte(`{}`)))
	m.FastForward(2 * time.Minute)

	_, ok, err := drafts.Load(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryDraftsCopiesInput(t *testing.T) {
	drafts := NewMemoryDrafts()
	ctx := context.Background()
	in := []byte(`{"a":1}`)
	require.NoError(t, drafts.Save(ctx, "k", in))
	in[2] = 'b'

	b, ok, err := drafts.Load(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"a":1}`, string(b))
}
