package repository

import (
	"context"
	"sync"

	"cv-generator/internal/model"
	"cv-generator/internal/slug"
)

// MemoryStore is an in-process Store for tests and throwaway servers.
// Records are kept encoded so reads go through the same normalization as
// the durable backends.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Put(_ context.Context, key string, cv model.CV) error {
	if err := checkWriteSlug(key); err != nil {
		return err
	}
	b, err := encodeCV(cv)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = b
	return nil
}

func (m *MemoryStore) Create(_ context.Context, key string, cv model.CV) error {
	if err := checkWriteSlug(key); err != nil {
		return err
	}
	b, err := encodeCV(cv)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; ok {
		return taken(key)
	}
	m.data[key] = b
	return nil
}

// PutRaw stores bytes as-is, bypassing encoding.
func (m *MemoryStore) PutRaw(key string, b []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = b
}

func (m *MemoryStore) Get(_ context.Context, key string) (model.CV, error) {
	if !slug.Valid(key) {
		return model.CV{}, notFound(key, nil)
	}
	m.mu.RLock()
	b, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return model.CV{}, notFound(key, nil)
	}
	return decodeCV(key, b)
}

func (m *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok, nil
}
