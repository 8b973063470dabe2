package touchpoint

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"peopledesk/internal/buddy/models"
	"peopledesk/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
}

func (s *MemoryStoreSuite) create(buddyID, buddeeID int64, note string, visible bool, status models.TouchpointStatus, at time.Time) *models.Touchpoint {
	tp, err := models.NewTouchpoint(buddyID, buddeeID, note, visible, status, at)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, tp))
	return tp
}

func (s *MemoryStoreSuite) TestUpdateDraftPatchesAndSubmits() {
	tp := s.create(1, 4, "draft note", false, models.StatusDraft, s.now)

	edited := "edited note"
	later := s.now.Add(time.Hour)
	got, err := s.store.UpdateDraft(s.ctx, tp.ID, models.DraftPatch{Note: &edited, Visible: true}, true, later)
	s.Require().NoError(err)
	s.Equal("edited note", got.Note)
	s.True(got.Visible)
	s.Equal(models.StatusSubmitted, got.Status)
	s.Equal(later, got.UpdatedAt)
}

func (s *MemoryStoreSuite) TestUpdateDraftRejectsSubmitted() {
	tp := s.create(1, 4, "note", true, models.StatusSubmitted, s.now)

	_, err := s.store.UpdateDraft(s.ctx, tp.ID, models.DraftPatch{Visible: true}, false, s.now)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestUpdateDraftRejectsDeletedAndMissing() {
	tp := s.create(1, 4, "note", true, models.StatusDraft, s.now)
	s.Require().NoError(s.store.SetDeletedForPair(s.ctx, 1, 4, true))

	_, err := s.store.UpdateDraft(s.ctx, tp.ID, models.DraftPatch{Visible: true}, false, s.now)
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.UpdateDraft(s.ctx, 999, models.DraftPatch{Visible: true}, false, s.now)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestListForPairOrdersNewestFirst() {
	s.create(1, 4, "oldest", true, models.StatusSubmitted, s.now)
	s.create(1, 4, "newest", true, models.StatusDraft, s.now.Add(2*time.Hour))
	s.create(1, 4, "middle", false, models.StatusSubmitted, s.now.Add(time.Hour))
	s.create(1, 5, "other pair", true, models.StatusSubmitted, s.now)

	got, err := s.store.ListForPair(s.ctx, 1, 4)
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal("newest", got[0].Note)
	s.Equal("middle", got[1].Note)
	s.Equal("oldest", got[2].Note)
}

func (s *MemoryStoreSuite) TestListVisibleForBuddeeFilters() {
	s.create(1, 4, "disclosed", true, models.StatusSubmitted, s.now)
	s.create(1, 4, "hidden", false, models.StatusSubmitted, s.now)
	s.create(1, 4, "still a draft", true, models.StatusDraft, s.now)
	deleted := s.create(2, 5, "gone", true, models.StatusSubmitted, s.now)
	s.Require().NoError(s.store.SetDeletedForPair(s.ctx, deleted.BuddyID, deleted.BuddeeID, true))

	got, err := s.store.ListVisibleForBuddee(s.ctx, 4)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("disclosed", got[0].Note)

	got, err = s.store.ListVisibleForBuddee(s.ctx, 5)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *MemoryStoreSuite) TestSoftDeleteRoundTrip() {
	s.create(1, 4, "note", true, models.StatusSubmitted, s.now)
	s.Require().NoError(s.store.SetDeletedForPair(s.ctx, 1, 4, true))

	active, err := s.store.ListForPair(s.ctx, 1, 4)
	s.Require().NoError(err)
	s.Empty(active)

	all, err := s.store.ListAllForPair(s.ctx, 1, 4)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.True(all[0].Deleted)

	// Restoring brings the history back to active queries.
	s.Require().NoError(s.store.SetDeletedForPair(s.ctx, 1, 4, false))
	active, err = s.store.ListForPair(s.ctx, 1, 4)
	s.Require().NoError(err)
	s.Len(active, 1)
}
