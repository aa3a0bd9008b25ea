package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type memoryRecord struct {
	raw     []byte
	version int64
}

// Memory is an in-process Store used by tests and local development. It
// round-trips values through JSON so records behave exactly like the durable
// implementation, including version conflicts.
type Memory struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
}

// NewMemory creates an empty in-memory entity store
func NewMemory() *Memory {
	return &Memory{records: make(map[string]memoryRecord)}
}

// Get loads and decodes the record for key
func (s *Memory) Get(ctx context.Context, key string, dest any) (Meta, error) {
	s.mu.RLock()
	rec, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return Meta{}, nil
	}
	if err := json.Unmarshal(rec.raw, dest); err != nil {
		return Meta{}, fmt.Errorf("failed to decode entity %q: %w", key, err)
	}
	return Meta{Found: true, Version: rec.version}, nil
}

// Put writes the record for key if the stored version still equals expect
func (s *Memory) Put(ctx context.Context, key string, value any, expect int64) (int64, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return 0, fmt.Errorf("failed to encode entity %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	current := int64(VersionNone)
	if ok {
		current = rec.version
	}
	if current != expect {
		return 0, fmt.Errorf("entity %q: %w", key, ErrVersionConflict)
	}

	next := current + 1
	s.records[key] = memoryRecord{raw: raw, version: next}
	return next, nil
}

// Len returns the number of stored records (test helper)
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
