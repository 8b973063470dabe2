package touchpoint

import (
	"context"
	"sort"
	"sync"
	"time"

	"peopledesk/internal/buddy/models"
	"peopledesk/pkg/platform/sentinel"
)

// InMemory keeps touchpoints in memory. Rows are never removed; the Deleted
// flag hides them from active queries, matching the postgres store.
type InMemory struct {
	mu     sync.RWMutex
	rows   map[int64]models.Touchpoint
	nextID int64
}

func NewInMemory() *InMemory {
	return &InMemory{rows: make(map[int64]models.Touchpoint)}
}

func (s *InMemory) Create(_ context.Context, tp *models.Touchpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	tp.ID = s.nextID
	s.rows[tp.ID] = *tp
	return nil
}

// UpdateDraft applies a patch to a live draft, optionally submitting it.
// Returns sentinel.ErrNotFound when the row is missing, deleted, or not a
// draft; callers cannot distinguish those cases on purpose.
func (s *InMemory) UpdateDraft(_ context.Context, id int64, patch models.DraftPatch, submit bool, now time.Time) (*models.Touchpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok || row.Deleted || !row.IsDraft() {
		return nil, sentinel.ErrNotFound
	}
	row.ApplyPatch(patch, now)
	if submit {
		if err := row.Submit(now); err != nil {
			return nil, err
		}
	}
	s.rows[id] = row
	copied := row
	return &copied, nil
}

func (s *InMemory) ListForPair(_ context.Context, buddyID, buddeeID int64) ([]*models.Touchpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(t models.Touchpoint) bool {
		return !t.Deleted && t.BuddyID == buddyID && t.BuddeeID == buddeeID
	}), nil
}

func (s *InMemory) ListVisibleForBuddee(_ context.Context, buddeeID int64) ([]*models.Touchpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(t models.Touchpoint) bool {
		return t.BuddeeID == buddeeID && t.VisibleToBuddee()
	}), nil
}

// ListAllForPair includes deleted rows. Audit accessor only.
func (s *InMemory) ListAllForPair(_ context.Context, buddyID, buddeeID int64) ([]*models.Touchpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(t models.Touchpoint) bool {
		return t.BuddyID == buddyID && t.BuddeeID == buddeeID
	}), nil
}

// SetDeletedForPair bulk-flips the deleted flag for every touchpoint of the
// id pair. Used only by the pairing lifecycle.
func (s *InMemory) SetDeletedForPair(_ context.Context, buddyID, buddeeID int64, deleted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, row := range s.rows {
		if row.BuddyID == buddyID && row.BuddeeID == buddeeID {
			row.Deleted = deleted
			s.rows[id] = row
		}
	}
	return nil
}

// collect returns matches ordered newest-updatedAt-first, id descending on
// ties so ordering stays deterministic.
func (s *InMemory) collect(match func(models.Touchpoint) bool) []*models.Touchpoint {
	var out []*models.Touchpoint
	for _, row := range s.rows {
		if match(row) {
			copied := row
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
