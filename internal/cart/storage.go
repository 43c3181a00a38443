package cart

import (
	"context"
	"sync"
)

// Storage is the durable port behind the cart store: one opaque value per
// session, read and written whole. The serialized cart is the source of
// truth; in-memory copies held by consumers are replicas refreshed via
// the Bus.
type Storage interface {
	// Get returns the stored value, or (nil, nil) when no cart exists.
	Get(ctx context.Context, sessionID string) ([]byte, error)
	Set(ctx context.Context, sessionID string, value []byte) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStorage keeps carts in a process-local map. Used by tests and as
// a fallback when no Redis is configured.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string][]byte)}
}

func (m *MemoryStorage) Get(ctx context.Context, sessionID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.items[sessionID]
	if !ok {
		return nil, nil
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

func (m *MemoryStorage) Set(ctx context.Context, sessionID string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]byte, len(value))
	copy(copied, value)
	m.items[sessionID] = copied
	return nil
}

func (m *MemoryStorage) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, sessionID)
	return nil
}
