//go:build integration

package touchpoint_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"peopledesk/internal/buddy/models"
	"peopledesk/internal/buddy/store/touchpoint"
	"peopledesk/pkg/platform/sentinel"
	"peopledesk/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *touchpoint.Postgres
	ctx      context.Context
	now      time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = touchpoint.NewPostgres(s.postgres.DB)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(s.ctx, "buddy_touchpoints", "buddy_pairs", "users")
	s.Require().NoError(err)
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *PostgresStoreSuite) create(buddyID, buddeeID int64, note string, visible bool, status models.TouchpointStatus, at time.Time) *models.Touchpoint {
	tp, err := models.NewTouchpoint(buddyID, buddeeID, note, visible, status, at)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, tp))
	s.Require().NotZero(tp.ID)
	return tp
}

func (s *PostgresStoreSuite) TestUpdateDraftPatchesAndSubmits() {
	tp := s.create(1, 4, "draft", false, models.StatusDraft, s.now)

	edited := "edited"
	later := s.now.Add(time.Hour)
	got, err := s.store.UpdateDraft(s.ctx, tp.ID, models.DraftPatch{Note: &edited, Visible: true}, true, later)
	s.Require().NoError(err)
	s.Equal("edited", got.Note)
	s.True(got.Visible)
	s.Equal(models.StatusSubmitted, got.Status)
}

func (s *PostgresStoreSuite) TestUpdateDraftPreservesNoteWhenAbsent() {
	tp := s.create(1, 4, "original", true, models.StatusDraft, s.now)

	got, err := s.store.UpdateDraft(s.ctx, tp.ID, models.DraftPatch{Visible: false}, false, s.now.Add(time.Hour))
	s.Require().NoError(err)
	s.Equal("original", got.Note)
	s.False(got.Visible)
	s.Equal(models.StatusDraft, got.Status)
}

func (s *PostgresStoreSuite) TestUpdateDraftRejectsNonDrafts() {
	submitted := s.create(1, 4, "done", true, models.StatusSubmitted, s.now)
	_, err := s.store.UpdateDraft(s.ctx, submitted.ID, models.DraftPatch{Visible: true}, false, s.now)
	s.ErrorIs(err, sentinel.ErrNotFound)

	draft := s.create(1, 4, "draft", true, models.StatusDraft, s.now)
	s.Require().NoError(s.store.SetDeletedForPair(s.ctx, 1, 4, true))
	_, err = s.store.UpdateDraft(s.ctx, draft.ID, models.DraftPatch{Visible: true}, false, s.now)
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.UpdateDraft(s.ctx, 9999, models.DraftPatch{Visible: true}, false, s.now)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListsFilterAndOrder() {
	s.create(1, 4, "oldest", true, models.StatusSubmitted, s.now)
	s.create(1, 4, "newest", true, models.StatusDraft, s.now.Add(2*time.Hour))
	s.create(1, 4, "hidden", false, models.StatusSubmitted, s.now.Add(time.Hour))
	s.create(2, 5, "other pair", true, models.StatusSubmitted, s.now)

	forPair, err := s.store.ListForPair(s.ctx, 1, 4)
	s.Require().NoError(err)
	s.Require().Len(forPair, 3)
	s.Equal("newest", forPair[0].Note)
	s.Equal("hidden", forPair[1].Note)
	s.Equal("oldest", forPair[2].Note)

	visible, err := s.store.ListVisibleForBuddee(s.ctx, 4)
	s.Require().NoError(err)
	s.Require().Len(visible, 1)
	s.Equal("oldest", visible[0].Note)
}

func (s *PostgresStoreSuite) TestSoftDeleteRoundTrip() {
	s.create(1, 4, "note", true, models.StatusSubmitted, s.now)
	s.Require().NoError(s.store.SetDeletedForPair(s.ctx, 1, 4, true))

	active, err := s.store.ListForPair(s.ctx, 1, 4)
	s.Require().NoError(err)
	s.Empty(active)

	all, err := s.store.ListAllForPair(s.ctx, 1, 4)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.True(all[0].Deleted)

	s.Require().NoError(s.store.SetDeletedForPair(s.ctx, 1, 4, false))
	active, err = s.store.ListForPair(s.ctx, 1, 4)
	s.Require().NoError(err)
	s.Len(active, 1)
}
