package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	dErrors "peopledesk/pkg/domain-errors"
	"peopledesk/pkg/pagination"
	"peopledesk/pkg/platform/sentinel"

	"peopledesk/internal/audit"
	"peopledesk/internal/buddy/models"
	dirmodels "peopledesk/internal/directory/models"
)

// CreateBuddyPairs assigns one buddy the whole buddee list atomically.
// Either every pair is created (and each pair's soft-deleted history is
// restored) or none are. Conflicts with existing pairs reject the batch.
func (s *Service) CreateBuddyPairs(ctx context.Context, req models.CreatePairsRequest) ([]*models.Pair, error) {
	ctx, span := s.tracer.Start(ctx, "buddy.CreateBuddyPairs",
		trace.WithAttributes(attribute.Int64("buddy.id", req.BuddyID), attribute.Int("buddee.count", len(req.BuddeeIDs))))
	defer span.End()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	buddy, err := s.directory.Resolve(ctx, req.BuddyID)
	if err != nil {
		return nil, err
	}
	if !buddy.IsBuddy {
		return nil, dErrors.New(dErrors.CodeNotFound, "user is not in the buddy pool")
	}
	for _, buddeeID := range req.BuddeeIDs {
		if _, err := s.directory.Resolve(ctx, buddeeID); err != nil {
			return nil, err
		}
	}

	now := s.clock().UTC()
	created := make([]*models.Pair, 0, len(req.BuddeeIDs))
	err = s.tx.RunInTx(ctx, func(stores Stores) error {
		if err := validateNewPairs(ctx, stores.Pairs, req.BuddyID, req.BuddeeIDs); err != nil {
			return err
		}

		pairs := make([]*models.Pair, 0, len(req.BuddeeIDs))
		for _, buddeeID := range req.BuddeeIDs {
			pair, err := models.NewPair(req.BuddyID, buddeeID, now)
			if err != nil {
				return err
			}
			pairs = append(pairs, pair)
		}
		if err := stores.Pairs.Create(ctx, pairs); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "buddy pair already exists")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create pairs")
		}

		// Restore any soft-deleted history for the re-created pairs.
		for _, pair := range pairs {
			if err := stores.Touchpoints.SetDeletedForPair(ctx, pair.BuddyID, pair.BuddeeID, false); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to restore touchpoint history")
			}
		}
		created = pairs
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PairsCreated.Add(float64(len(created)))
	}
	for _, pair := range created {
		s.logAudit(ctx, audit.EventPairCreated, pair.BuddyID, pair.BuddeeID)
	}
	return created, nil
}

// DeleteBuddyPair removes a pair and soft-deletes its touchpoint history in
// the same transaction. The history stays queryable for audit and comes
// back if the same pair is ever re-created.
func (s *Service) DeleteBuddyPair(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "buddy.DeleteBuddyPair",
		trace.WithAttributes(attribute.Int64("pair.id", id)))
	defer span.End()

	if id <= 0 {
		return dErrors.New(dErrors.CodeBadRequest, "pair id is required")
	}

	var deleted *models.Pair
	err := s.tx.RunInTx(ctx, func(stores Stores) error {
		pair, err := stores.Pairs.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "buddy pair not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load pair")
		}
		if err := stores.Touchpoints.SetDeletedForPair(ctx, pair.BuddyID, pair.BuddeeID, true); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to soft-delete touchpoints")
		}
		if err := stores.Pairs.Delete(ctx, pair.ID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete pair")
		}
		deleted = pair
		return nil
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.PairsDeleted.Inc()
	}
	s.logAudit(ctx, audit.EventPairDeleted, deleted.BuddyID, deleted.BuddeeID)
	return nil
}

// BuddyRoster builds the admin overview: every buddy in the pool with their
// buddees and the latest note per pair, paginated. Derived on every call.
func (s *Service) BuddyRoster(ctx context.Context, opts pagination.PageOptions) ([]models.RosterEntry, pagination.PageMeta, error) {
	ctx, span := s.tracer.Start(ctx, "buddy.BuddyRoster")
	defer span.End()

	buddies, err := s.directory.ListBuddies(ctx)
	if err != nil {
		return nil, pagination.PageMeta{}, err
	}

	buddyIDs := make([]int64, len(buddies))
	for i, b := range buddies {
		buddyIDs[i] = b.ID
	}
	pairs, err := s.FindPairsByBuddyIDs(ctx, buddyIDs)
	if err != nil {
		return nil, pagination.PageMeta{}, err
	}

	buddees := make(map[int64]*dirmodels.Profile, len(pairs))
	latest := make(map[int64]*models.Touchpoint, len(pairs))
	for _, pair := range pairs {
		if _, ok := buddees[pair.BuddeeID]; !ok {
			profile, err := s.directory.Resolve(ctx, pair.BuddeeID)
			if err != nil {
				if dErrors.HasCode(err, dErrors.CodeNotFound) {
					continue
				}
				return nil, pagination.PageMeta{}, err
			}
			buddees[pair.BuddeeID] = profile
		}
		tps, err := s.stores.Touchpoints.ListForPair(ctx, pair.BuddyID, pair.BuddeeID)
		if err != nil {
			return nil, pagination.PageMeta{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load touchpoints")
		}
		if len(tps) > 0 {
			latest[pair.ID] = tps[0]
		}
	}

	rows := BuildRoster(buddies, buddees, pairs, latest)
	page, meta := pagination.Paginate(rows, opts)
	return page, meta, nil
}

// BuddeeFeed returns the authenticated buddee's view of their pairing.
// Unpaired buddees get an empty feed; paired buddees with nothing disclosed
// yet get a single placeholder row naming their buddy.
func (s *Service) BuddeeFeed(ctx context.Context, buddeeID int64) ([]models.FeedEntry, error) {
	pair, err := s.FindPairByBuddeeID(ctx, buddeeID)
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return []models.FeedEntry{}, nil
	}
	tps, err := s.ListVisibleForBuddee(ctx, buddeeID)
	if err != nil {
		return nil, err
	}
	return BuildFeed(pair.BuddyID, buddeeID, tps, true), nil
}

// BuddyPairView returns a buddy's full history with one buddee, drafts
// included, with a placeholder row when the pair has no notes yet.
func (s *Service) BuddyPairView(ctx context.Context, buddyID, buddeeID int64) ([]models.FeedEntry, error) {
	if err := s.ValidatePairExists(ctx, buddyID, buddeeID); err != nil {
		return nil, err
	}
	tps, err := s.ListTouchpointsForPair(ctx, buddyID, buddeeID)
	if err != nil {
		return nil, err
	}
	return BuildFeed(buddyID, buddeeID, tps, true), nil
}
