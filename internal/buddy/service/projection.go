package service

import (
	"sort"

	"peopledesk/internal/buddy/models"
	dirmodels "peopledesk/internal/directory/models"
)

// Read-model projections. Pure functions over store snapshots; nothing here
// touches a store or holds state, so the views can never drift from the
// records they are derived from.

// BuildRoster renders the admin overview. Buddies appear in the order
// given (the directory lists them by display name). A buddy with no pairs
// still gets one row so admins see unassigned buddies. A pair whose buddee
// profile is missing from the directory is skipped.
func BuildRoster(buddies []dirmodels.Profile, buddees map[int64]*dirmodels.Profile, pairs []*models.Pair, latest map[int64]*models.Touchpoint) []models.RosterEntry {
	byBuddy := make(map[int64][]*models.Pair, len(buddies))
	for _, pair := range pairs {
		byBuddy[pair.BuddyID] = append(byBuddy[pair.BuddyID], pair)
	}

	rows := make([]models.RosterEntry, 0, len(pairs)+len(buddies))
	for i := range buddies {
		buddy := models.NewPersonDTO(&buddies[i])
		buddyPairs := byBuddy[buddies[i].ID]
		if len(buddyPairs) == 0 {
			rows = append(rows, models.RosterEntry{Buddy: buddy})
			continue
		}
		sort.SliceStable(buddyPairs, func(a, b int) bool {
			return buddyPairs[a].ID < buddyPairs[b].ID
		})
		for _, pair := range buddyPairs {
			profile, ok := buddees[pair.BuddeeID]
			if !ok {
				continue
			}
			buddee := models.NewPersonDTO(profile)
			pairID := pair.ID
			row := models.RosterEntry{
				Buddy:  buddy,
				Buddee: &buddee,
				PairID: &pairID,
			}
			if tp, ok := latest[pair.ID]; ok {
				visible := tp.Visible
				updatedAt := tp.UpdatedAt
				row.Note = tp.Note
				row.Visible = &visible
				row.NoteUpdatedAt = &updatedAt
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// BuildFeed renders a touchpoint list as feed rows. When the pair exists
// but has no rows to show, a single placeholder entry carries the pair
// identity so clients can tell "paired, no notes" from "not paired".
func BuildFeed(buddyID, buddeeID int64, tps []*models.Touchpoint, paired bool) []models.FeedEntry {
	if len(tps) == 0 {
		if !paired {
			return []models.FeedEntry{}
		}
		return []models.FeedEntry{{BuddyID: buddyID, BuddeeID: buddeeID}}
	}
	entries := make([]models.FeedEntry, 0, len(tps))
	for _, tp := range tps {
		entries = append(entries, models.NewFeedEntry(tp))
	}
	return entries
}
