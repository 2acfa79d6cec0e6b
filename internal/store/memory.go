package store

import (
	"context"
	"sync"
)

// Memory is an in-process Backend. Tests construct isolated instances of
// it instead of sharing ambient durable state.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemory builds an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

// Read implements Backend.
func (s *Memory) Read(_ context.Context, collection string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[collection]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

// Write implements Backend.
func (s *Memory) Write(_ context.Context, collection string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(blob))
	copy(out, blob)
	s.blobs[collection] = out
	return nil
}
