package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process ObjectStore used in tests and local
// development when no bucket is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// FailPuts, when set, makes every Put fail with the given error.
	// Lets tests exercise the storage-failure path.
	FailPuts error
	// FailPutAfter fails Puts once the store already holds this many
	// objects (0 disables). Used to test atomic-upload rollback.
	FailPutAfter int
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (m *MemoryStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailPuts != nil {
		return m.FailPuts
	}
	if m.FailPutAfter > 0 && len(m.objects) >= m.FailPutAfter {
		return context.DeadlineExceeded
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	m.objects[key] = cp
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.objects[key]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Len reports the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
