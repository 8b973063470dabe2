package handler

import (
	"context"

	"peopledesk/internal/buddy/models"
	"peopledesk/pkg/pagination"
)

// Service defines the pairing coordinator operations the HTTP surface uses.
type Service interface {
	CreateBuddyPairs(ctx context.Context, req models.CreatePairsRequest) ([]*models.Pair, error)
	DeleteBuddyPair(ctx context.Context, id int64) error
	BuddyRoster(ctx context.Context, opts pagination.PageOptions) ([]models.RosterEntry, pagination.PageMeta, error)
	PairTouchpointHistory(ctx context.Context, pairID int64, opts pagination.PageOptions) ([]*models.Touchpoint, pagination.PageMeta, error)

	CreateTouchpoint(ctx context.Context, req models.TouchpointRequest) (*models.Touchpoint, error)
	CreateDraftTouchpoint(ctx context.Context, req models.TouchpointRequest) (*models.Touchpoint, error)
	UpdateDraftTouchpoint(ctx context.Context, id int64, patch models.DraftPatch) (*models.Touchpoint, error)
	SubmitDraftTouchpoint(ctx context.Context, id int64, patch models.DraftPatch) (*models.Touchpoint, error)
	BuddeeFeed(ctx context.Context, buddeeID int64) ([]models.FeedEntry, error)
	BuddyPairView(ctx context.Context, buddyID, buddeeID int64) ([]models.FeedEntry, error)
}

// PaginatedResponse is the envelope for list endpoints.
type PaginatedResponse[T any] struct {
	Data []T                 `json:"data"`
	Meta pagination.PageMeta `json:"meta"`
}
