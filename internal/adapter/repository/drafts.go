package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DraftCache holds the raw bytes of in-progress CVs. Contents are untrusted
// and get normalized by the caller on load.
type DraftCache interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, b []byte) error
	Delete(ctx context.Context, key string) error
}

// RedisDrafts stores drafts as plain string values with a sliding TTL.
type RedisDrafts struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDrafts returns a Redis-backed cache. A zero ttl keeps drafts forever.
func NewRedisDrafts(client *redis.Client, ttl time.Duration) *RedisDrafts {
	return &RedisDrafts{client: client, ttl: ttl}
}

func (r *RedisDrafts) Load(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load draft: %w", err)
	}
	return b, true, nil
}

func (r *RedisDrafts) Save(ctx context.Context, key string, b []byte) error {
	if err := r.client.Set(ctx, key, b, r.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (r *RedisDrafts) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// MemoryDrafts is the fallback when no Redis is configured.
type MemoryDrafts struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMemoryDrafts() *MemoryDrafts {
	return &MemoryDrafts{items: make(map[string][]byte)}
}

func (m *MemoryDrafts) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.items[key]
	return b, ok, nil
}

func (m *MemoryDrafts) Save(_ context.Context, key string, b []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = append([]byte(nil), b...)
	return nil
}

func (m *MemoryDrafts) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
