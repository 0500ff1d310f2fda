package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"kaziid/internal/identity"
	"kaziid/pkg/platform/sentinel"
)

// InMemorySnapshot keeps the slot as serialized bytes so tests exercise the
// same JSON round-trip the durable backends do.
type InMemorySnapshot struct {
	mu   sync.RWMutex
	blob []byte
}

func NewInMemorySnapshot() *InMemorySnapshot {
	return &InMemorySnapshot{}
}

func (s *InMemorySnapshot) Save(_ context.Context, ident identity.Identity) error {
	blob, err := json.Marshal(ident)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = blob
	return nil
}

func (s *InMemorySnapshot) Load(_ context.Context) (identity.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.blob == nil {
		return identity.Identity{}, sentinel.ErrNotFound
	}

	var ident identity.Identity
	if err := json.Unmarshal(s.blob, &ident); err != nil {
		return identity.Identity{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return ident, nil
}

func (s *InMemorySnapshot) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = nil
	return nil
}

// Compile-time assertion that InMemorySnapshot implements SnapshotStore.
var _ SnapshotStore = (*InMemorySnapshot)(nil)
