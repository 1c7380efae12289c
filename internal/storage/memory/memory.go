// Package memory provides an in-process KeyValueStorage implementation.
// Used by tests and by deployments that opt out of durable drain state
// (storage.driver = "memory").
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/xtrnai/toolgate/internal/interfaces"
)

// Manager implements the StorageManager interface in memory.
type Manager struct {
	kv *KVStorage
}

// NewManager creates a new in-memory storage manager.
func NewManager() *Manager {
	return &Manager{kv: NewKVStorage()}
}

// KeyValueStorage returns the KeyValue storage interface.
func (m *Manager) KeyValueStorage() interfaces.KeyValueStorage {
	return m.kv
}

// Close is a no-op for memory storage.
func (m *Manager) Close() error {
	return nil
}

// KVStorage implements interfaces.KeyValueStorage with a mutex-guarded map.
type KVStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKVStorage creates an empty in-memory key-value storage.
func NewKVStorage() *KVStorage {
	return &KVStorage{data: make(map[string]string)}
}

// Get retrieves a value by key.
func (s *KVStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", interfaces.ErrKeyNotFound, key)
	}
	return value, nil
}

// Set stores a key-value pair.
func (s *KVStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Delete removes a key-value pair.
func (s *KVStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
