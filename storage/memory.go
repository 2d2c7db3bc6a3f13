package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

// MemoryStore is an in-memory Store used in tests and throwaway demos. It
// round-trips values through JSON so it behaves byte-for-byte like the
// durable implementation.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string][]byte{}}
}

func (s *MemoryStore) Read(_ context.Context, key string, out interface{}) (bool, error) {
	s.mu.RLock()
	raw, ok := s.docs[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Write(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to serialize value for key %s", key)
	}
	s.mu.Lock()
	s.docs[key] = raw
	s.mu.Unlock()
	return nil
}

// Corrupt overwrites the document under key with bytes that do not decode
// into any collection type. Tests use it to exercise the absent-on-garbage
// contract of Read.
func (s *MemoryStore) Corrupt(key string) {
	s.mu.Lock()
	s.docs[key] = []byte(`{not json`)
	s.mu.Unlock()
}

var _ Store = (*MemoryStore)(nil)
