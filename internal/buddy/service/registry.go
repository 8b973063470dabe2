package service

import (
	"context"
	"errors"
	"sort"

	dErrors "peopledesk/pkg/domain-errors"
	"peopledesk/pkg/platform/sentinel"

	"peopledesk/internal/buddy/models"
)

// Pair registry operations: lookups and invariant validation over the set
// of active pairs. Mutations go through the coordinator (coordinator.go) so
// touchpoint side effects always ride the same transaction.

// FindPairsByBuddyIDs returns the active pairs for the given buddies,
// ordered by buddy display name ascending with insertion order as the
// tie-break. Unknown buddy ids simply contribute no pairs.
func (s *Service) FindPairsByBuddyIDs(ctx context.Context, buddyIDs []int64) ([]*models.Pair, error) {
	pairs, err := s.stores.Pairs.FindByBuddyIDs(ctx, buddyIDs)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load pairs")
	}

	names := make(map[int64]string, len(buddyIDs))
	for _, p := range pairs {
		if _, ok := names[p.BuddyID]; ok {
			continue
		}
		profile, err := s.directory.Resolve(ctx, p.BuddyID)
		if err != nil {
			if dErrors.HasCode(err, dErrors.CodeNotFound) {
				// A buddy removed from the directory still has pairs; sort
				// them last rather than failing the whole listing.
				names[p.BuddyID] = "￿"
				continue
			}
			return nil, err
		}
		names[p.BuddyID] = profile.DisplayName()
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return names[pairs[i].BuddyID] < names[pairs[j].BuddyID]
	})
	return pairs, nil
}

// FindPairByBuddeeID returns the buddee's active pair, or nil when the
// buddee is unpaired.
func (s *Service) FindPairByBuddeeID(ctx context.Context, buddeeID int64) (*models.Pair, error) {
	pair, err := s.stores.Pairs.FindByBuddeeID(ctx, buddeeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load pair")
	}
	return pair, nil
}

// ValidatePairExists fails with NotFound when the buddy/buddee combination
// has no active pair.
func (s *Service) ValidatePairExists(ctx context.Context, buddyID, buddeeID int64) error {
	exists, err := s.stores.Pairs.Exists(ctx, buddyID, buddeeID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check pair")
	}
	if !exists {
		return dErrors.New(dErrors.CodeNotFound, "buddy pair not found")
	}
	return nil
}

// validateNewPairs enforces the batch-pairing invariants against the given
// stores (tx-bound when called inside the coordinator transaction):
// duplicate pairs and buddees already attached to a different buddy are
// conflicts. Directory eligibility is checked by the coordinator before the
// transaction opens.
func validateNewPairs(ctx context.Context, pairs PairStore, buddyID int64, buddeeIDs []int64) error {
	for _, buddeeID := range buddeeIDs {
		exists, err := pairs.Exists(ctx, buddyID, buddeeID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check existing pair")
		}
		if exists {
			return dErrors.New(dErrors.CodeConflict, "buddy pair already exists")
		}

		current, err := pairs.FindByBuddeeID(ctx, buddeeID)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check buddee assignment")
		}
		if current != nil {
			return dErrors.New(dErrors.CodeConflict, "buddee is already paired with another buddy")
		}
	}
	return nil
}
