package audit

import (
	"context"
	"sync"
)

// InMemoryStore keeps audit events in memory. It backs development setups and
// tests; production deployments append to Kafka via the sink as well.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryStore) ListByBuddy(_ context.Context, buddyID int64) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.BuddyID == buddyID {
			out = append(out, e)
		}
	}
	return out, nil
}
