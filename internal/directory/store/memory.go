package store

import (
	"context"
	"sort"
	"sync"

	"peopledesk/internal/directory/models"
	"peopledesk/pkg/platform/sentinel"
)

// InMemory keeps profiles in memory. It backs tests and development setups;
// production reads from the HR platform's postgres users table.
type InMemory struct {
	mu       sync.RWMutex
	profiles map[int64]models.Profile
}

func NewInMemory() *InMemory {
	return &InMemory{profiles: make(map[int64]models.Profile)}
}

// Put inserts or replaces a profile. Used by seeds and tests.
func (s *InMemory) Put(profile models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ID] = profile
}

func (s *InMemory) FindByID(_ context.Context, id int64) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.profiles[id]; ok {
		return &p, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListBuddies(_ context.Context) ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Profile
	for _, p := range s.profiles {
		if p.IsBuddy {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.DisplayName() != b.DisplayName() {
			return a.DisplayName() < b.DisplayName()
		}
		return a.ID < b.ID
	})
	return out, nil
}
