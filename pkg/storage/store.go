// Package storage provides the durable key-value capability behind the
// learned suggestion store. Implementations hold JSON blobs; callers treat
// any failure as "no durable storage" and carry on in memory.
package storage

import "sync"

// KeyValueStore is the minimal durable storage capability. Get returns ""
// with a nil error when the key is absent.
type KeyValueStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// MemoryStore is an in-process KeyValueStore for tests and for sessions
// where no durable backend is available.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the stored value or "" when absent.
func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
