package docstore

import (
	"context"
	"sync"
)

// MemoryStore keeps encoded documents in a map. Used for local runs and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[Key][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[Key][]byte{}}
}

func (s *MemoryStore) Get(ctx context.Context, key Key) (Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	body, ok := s.docs[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	rec, err := DecodeRecord(body)
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

func (s *MemoryStore) Put(ctx context.Context, key Key, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := rec.Encode()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.docs[key] = body
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
