package pair

import (
	"context"
	"sync"

	"peopledesk/internal/buddy/models"
	"peopledesk/pkg/platform/sentinel"
)

// InMemory keeps active pairs in memory. It enforces the same uniqueness
// invariants the postgres unique indexes back, re-checked under its lock so
// concurrent pairing requests cannot slip past each other.
type InMemory struct {
	mu     sync.RWMutex
	pairs  map[int64]models.Pair
	order  []int64
	nextID int64
}

func NewInMemory() *InMemory {
	return &InMemory{pairs: make(map[int64]models.Pair)}
}

// Create persists the batch all-or-nothing. It returns sentinel.ErrConflict
// if any (buddy, buddee) tuple already exists or any buddee is already
// attached to a different buddy; nothing is written in that case.
func (s *InMemory) Create(_ context.Context, pairs []*models.Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range pairs {
		for _, existing := range s.pairs {
			if existing.BuddyID == p.BuddyID && existing.BuddeeID == p.BuddeeID {
				return sentinel.ErrConflict
			}
			if existing.BuddeeID == p.BuddeeID {
				return sentinel.ErrConflict
			}
		}
	}
	// Conflicts within the batch itself (same buddee twice) are also rejected.
	seen := make(map[int64]struct{}, len(pairs))
	for _, p := range pairs {
		if _, ok := seen[p.BuddeeID]; ok {
			return sentinel.ErrConflict
		}
		seen[p.BuddeeID] = struct{}{}
	}

	for _, p := range pairs {
		s.nextID++
		p.ID = s.nextID
		s.pairs[p.ID] = *p
		s.order = append(s.order, p.ID)
	}
	return nil
}

func (s *InMemory) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pairs[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.pairs, id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id int64) (*models.Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.pairs[id]; ok {
		return &p, nil
	}
	return nil, sentinel.ErrNotFound
}

// FindByBuddyIDs returns pairs for the given buddies in insertion order.
// Display-name ordering is layered on by the service, which owns directory
// lookups.
func (s *InMemory) FindByBuddyIDs(_ context.Context, buddyIDs []int64) ([]*models.Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[int64]struct{}, len(buddyIDs))
	for _, id := range buddyIDs {
		wanted[id] = struct{}{}
	}
	var out []*models.Pair
	for _, pid := range s.order {
		p := s.pairs[pid]
		if _, ok := wanted[p.BuddyID]; ok {
			copied := p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *InMemory) FindByBuddeeID(_ context.Context, buddeeID int64) (*models.Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, pid := range s.order {
		p := s.pairs[pid]
		if p.BuddeeID == buddeeID {
			copied := p
			return &copied, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) Exists(_ context.Context, buddyID, buddeeID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.pairs {
		if p.BuddyID == buddyID && p.BuddeeID == buddeeID {
			return true, nil
		}
	}
	return false, nil
}
