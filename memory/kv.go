package memory

import (
	"context"
	"sync"

	"github.com/fwojciec/catalog"
)

var _ catalog.KeyValueStore = (*KeyValueStore)(nil)

// KeyValueStore is a catalog.KeyValueStore held in a map.
type KeyValueStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewKeyValueStore returns an empty KeyValueStore.
func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *KeyValueStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return "", catalog.Errorf(catalog.ENOTFOUND, "key %q not found", key)
	}
	return v, nil
}

// Set stores value under key.
func (s *KeyValueStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}
