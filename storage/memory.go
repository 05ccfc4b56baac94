package storage

import (
	"github.com/patrickmn/go-cache"
)

// MemoryStore is a non-persistent Store backed by an in-process cache.
// It is used for tests and ephemeral runs.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cache: cache.New(cache.NoExpiration, 0)}
}

// Get returns the stored value and whether the key exists.
func (s *MemoryStore) Get(key string) (string, bool, error) {
	value, ok := s.cache.Get(key)
	if !ok {
		return "", false, nil
	}
	return value.(string), true, nil
}

// Set stores the value under key.
func (s *MemoryStore) Set(key, value string) error {
	s.cache.Set(key, value, cache.NoExpiration)
	return nil
}

// Delete removes the key.
func (s *MemoryStore) Delete(key string) error {
	s.cache.Delete(key)
	return nil
}

// Keys returns all stored keys.
func (s *MemoryStore) Keys() ([]string, error) {
	items := s.cache.Items()
	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	return keys, nil
}

// Clear removes every key.
func (s *MemoryStore) Clear() error {
	s.cache.Flush()
	return nil
}
