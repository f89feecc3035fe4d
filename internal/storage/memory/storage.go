package memory

import (
	"context"
	"sync"

	"github.com/mcoot/tilescore/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu     sync.RWMutex
	values map[storage.Key][]byte
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		values: make(map[storage.Key][]byte),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) Get(ctx context.Context, key storage.Key) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	// Return a copy to prevent external mutation
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *Storage) Set(ctx context.Context, key storage.Key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

func (s *Storage) Delete(ctx context.Context, key storage.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

func (s *Storage) Close() error {
	return nil
}

// Keys returns the keys currently stored
func (s *Storage) Keys() []storage.Key {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]storage.Key, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}
