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
)

// CreateTouchpoint records a submitted check-in note for an active pair.
func (s *Service) CreateTouchpoint(ctx context.Context, req models.TouchpointRequest) (*models.Touchpoint, error) {
	return s.createTouchpoint(ctx, req, models.StatusSubmitted)
}

// CreateDraftTouchpoint records a draft note, editable until submitted.
func (s *Service) CreateDraftTouchpoint(ctx context.Context, req models.TouchpointRequest) (*models.Touchpoint, error) {
	return s.createTouchpoint(ctx, req, models.StatusDraft)
}

func (s *Service) createTouchpoint(ctx context.Context, req models.TouchpointRequest, status models.TouchpointStatus) (*models.Touchpoint, error) {
	ctx, span := s.tracer.Start(ctx, "buddy.CreateTouchpoint",
		trace.WithAttributes(attribute.String("touchpoint.status", string(status))))
	defer span.End()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.ValidatePairExists(ctx, req.BuddyID, req.BuddeeID); err != nil {
		return nil, err
	}

	tp, err := models.NewTouchpoint(req.BuddyID, req.BuddeeID, req.Note, req.Visible, status, s.clock().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.stores.Touchpoints.Create(ctx, tp); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create touchpoint")
	}

	if s.metrics != nil {
		s.metrics.TouchpointsCreated.Inc()
	}
	s.logAudit(ctx, audit.EventTouchpointCreated, tp.BuddyID, tp.BuddeeID)
	if status == models.StatusSubmitted {
		if s.metrics != nil {
			s.metrics.TouchpointsSubmitted.Inc()
		}
		s.logAudit(ctx, audit.EventTouchpointSubmitted, tp.BuddyID, tp.BuddeeID)
	}
	return tp, nil
}

// UpdateDraftTouchpoint patches a live draft. Submitted, deleted, and
// unknown touchpoints all report NotFound so callers cannot probe for
// hidden rows.
func (s *Service) UpdateDraftTouchpoint(ctx context.Context, id int64, patch models.DraftPatch) (*models.Touchpoint, error) {
	return s.updateDraft(ctx, id, patch, false)
}

// SubmitDraftTouchpoint applies a final patch and transitions the draft to
// SUBMITTED in one atomic step.
func (s *Service) SubmitDraftTouchpoint(ctx context.Context, id int64, patch models.DraftPatch) (*models.Touchpoint, error) {
	return s.updateDraft(ctx, id, patch, true)
}

func (s *Service) updateDraft(ctx context.Context, id int64, patch models.DraftPatch, submit bool) (*models.Touchpoint, error) {
	ctx, span := s.tracer.Start(ctx, "buddy.UpdateDraftTouchpoint",
		trace.WithAttributes(attribute.Int64("touchpoint.id", id), attribute.Bool("touchpoint.submit", submit)))
	defer span.End()

	if id <= 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "touchpoint id is required")
	}
	patch.Normalize()
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	tp, err := s.stores.Touchpoints.UpdateDraft(ctx, id, patch, submit, s.clock().UTC())
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "draft touchpoint not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update draft touchpoint")
	}

	if submit {
		if s.metrics != nil {
			s.metrics.TouchpointsSubmitted.Inc()
		}
		s.logAudit(ctx, audit.EventTouchpointSubmitted, tp.BuddyID, tp.BuddeeID)
	}
	return tp, nil
}

// ListTouchpointsForPair returns the buddy-facing history for one pair,
// drafts included, newest first.
func (s *Service) ListTouchpointsForPair(ctx context.Context, buddyID, buddeeID int64) ([]*models.Touchpoint, error) {
	tps, err := s.stores.Touchpoints.ListForPair(ctx, buddyID, buddeeID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list touchpoints")
	}
	return tps, nil
}

// ListVisibleForBuddee returns the notes disclosed to a buddee: submitted,
// visible, and not soft-deleted.
func (s *Service) ListVisibleForBuddee(ctx context.Context, buddeeID int64) ([]*models.Touchpoint, error) {
	tps, err := s.stores.Touchpoints.ListVisibleForBuddee(ctx, buddeeID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list visible touchpoints")
	}
	return tps, nil
}

// PairTouchpointHistory returns the full history for a pair by pair id,
// soft-deleted rows included, paginated. Admin audit only.
func (s *Service) PairTouchpointHistory(ctx context.Context, pairID int64, opts pagination.PageOptions) ([]*models.Touchpoint, pagination.PageMeta, error) {
	pair, err := s.stores.Pairs.FindByID(ctx, pairID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, pagination.PageMeta{}, dErrors.New(dErrors.CodeNotFound, "buddy pair not found")
		}
		return nil, pagination.PageMeta{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load pair")
	}
	tps, err := s.ListAllTouchpointsForPair(ctx, pair.BuddyID, pair.BuddeeID)
	if err != nil {
		return nil, pagination.PageMeta{}, err
	}
	page, meta := pagination.Paginate(tps, opts)
	return page, meta, nil
}

// ListAllTouchpointsForPair includes soft-deleted rows. Admin audit only.
func (s *Service) ListAllTouchpointsForPair(ctx context.Context, buddyID, buddeeID int64) ([]*models.Touchpoint, error) {
	tps, err := s.stores.Touchpoints.ListAllForPair(ctx, buddyID, buddeeID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list touchpoint history")
	}
	return tps, nil
}
