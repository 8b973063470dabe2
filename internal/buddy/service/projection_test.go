package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peopledesk/internal/buddy/models"
	dirmodels "peopledesk/internal/directory/models"
)

func TestBuildRosterPlaceholderForPairlessBuddy(t *testing.T) {
	buddies := []dirmodels.Profile{
		{ID: 1, FirstName: "Ada", LastName: "Byron", IsBuddy: true},
		{ID: 2, FirstName: "Zed", LastName: "Ward", IsBuddy: true},
	}
	now := time.Now()
	pairs := []*models.Pair{{ID: 10, BuddyID: 1, BuddeeID: 4, CreatedAt: now, UpdatedAt: now}}
	buddees := map[int64]*dirmodels.Profile{4: {ID: 4, FirstName: "New", LastName: "Hire"}}
	latest := map[int64]*models.Touchpoint{
		10: {ID: 7, BuddyID: 1, BuddeeID: 4, Note: "settling in", Visible: true, Status: models.StatusSubmitted, UpdatedAt: now},
	}

	rows := BuildRoster(buddies, buddees, pairs, latest)
	require.Len(t, rows, 2)

	require.NotNil(t, rows[0].Buddee)
	assert.Equal(t, "New Hire", rows[0].Buddee.Name)
	require.NotNil(t, rows[0].PairID)
	assert.Equal(t, int64(10), *rows[0].PairID)
	assert.Equal(t, "settling in", rows[0].Note)
	require.NotNil(t, rows[0].Visible)
	assert.True(t, *rows[0].Visible)

	assert.Equal(t, "Zed Ward", rows[1].Buddy.Name)
	assert.Nil(t, rows[1].Buddee)
	assert.Nil(t, rows[1].PairID)
	assert.Empty(t, rows[1].Note)
}

func TestBuildRosterEmptyNoteFields(t *testing.T) {
	buddies := []dirmodels.Profile{{ID: 1, FirstName: "Ada", LastName: "Byron", IsBuddy: true}}
	pairs := []*models.Pair{{ID: 10, BuddyID: 1, BuddeeID: 4}}
	buddees := map[int64]*dirmodels.Profile{4: {ID: 4, FirstName: "New", LastName: "Hire"}}

	rows := BuildRoster(buddies, buddees, pairs, nil)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Note)
	assert.Nil(t, rows[0].Visible)
	assert.Nil(t, rows[0].NoteUpdatedAt)
}

func TestBuildRosterSkipsUnknownBuddeeProfile(t *testing.T) {
	buddies := []dirmodels.Profile{{ID: 1, FirstName: "Ada", LastName: "Byron", IsBuddy: true}}
	pairs := []*models.Pair{
		{ID: 10, BuddyID: 1, BuddeeID: 4},
		{ID: 11, BuddyID: 1, BuddeeID: 5},
	}
	buddees := map[int64]*dirmodels.Profile{5: {ID: 5, FirstName: "Other", LastName: "Hire"}}

	rows := BuildRoster(buddies, buddees, pairs, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(5), rows[0].Buddee.ID)
}

func TestBuildFeed(t *testing.T) {
	// Not paired: no rows at all.
	assert.Empty(t, BuildFeed(1, 4, nil, false))

	// Paired but nothing to show: one placeholder row carrying the pair.
	feed := BuildFeed(1, 4, nil, true)
	require.Len(t, feed, 1)
	assert.Nil(t, feed[0].ID)
	assert.Equal(t, int64(1), feed[0].BuddyID)
	assert.Equal(t, int64(4), feed[0].BuddeeID)
	assert.Empty(t, feed[0].Note)

	now := time.Now()
	tps := []*models.Touchpoint{
		{ID: 7, BuddyID: 1, BuddeeID: 4, Note: "note", Visible: true, Status: models.StatusSubmitted, UpdatedAt: now},
	}
	feed = BuildFeed(1, 4, tps, true)
	require.Len(t, feed, 1)
	require.NotNil(t, feed[0].ID)
	assert.Equal(t, int64(7), *feed[0].ID)
	assert.Equal(t, "note", feed[0].Note)
}
