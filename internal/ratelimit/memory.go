package ratelimit

import (
	"context"
	"sync"
)

// MemoryStore keeps records in process memory. Expired records are only
// replaced lazily on the next access from the same identifier, so memory
// grows with the number of distinct identifiers. Development use only; a
// multi-instance deployment needs RedisStore.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

// Get returns a copy of the record for key, or nil.
func (s *MemoryStore) Get(ctx context.Context, key string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

// Set replaces the record for key.
func (s *MemoryStore) Set(ctx context.Context, key string, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *rec
	s.records[key] = &copied
	return nil
}

// Incr adds one to key's counter, creating it if absent.
func (s *MemoryStore) Incr(ctx context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	if !ok {
		rec = &Record{}
		s.records[key] = rec
	}
	rec.Count++
	return rec.Count, nil
}
