package audit

import (
	"context"
	"sync"

	"kaziid/pkg/domain"
)

// Store is append-only so sinks can range from an in-memory buffer to a
// broker-backed trail without the publisher caring.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// InMemoryStore keeps events per identity for tests and single-node runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[domain.IdentityID][]Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[domain.IdentityID][]Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.IdentityID] = append(s.events[event.IdentityID], event)
	return nil
}

// ListByIdentity returns a copy of the trail for one identity.
func (s *InMemoryStore) ListByIdentity(_ context.Context, id domain.IdentityID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[id]...), nil
}

var _ Store = (*InMemoryStore)(nil)
