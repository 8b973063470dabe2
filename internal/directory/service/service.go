package service

import (
	"context"
	"errors"

	"peopledesk/internal/directory/models"
	dErrors "peopledesk/pkg/domain-errors"
	"peopledesk/pkg/platform/sentinel"
)

// Store is the persistence behind the directory service.
type Store interface {
	FindByID(ctx context.Context, id int64) (*models.Profile, error)
	ListBuddies(ctx context.Context) ([]models.Profile, error)
}

// Service resolves employee identities for the rest of the backend.
type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

// Resolve returns the profile for an employee id.
func (s *Service) Resolve(ctx context.Context, id int64) (*models.Profile, error) {
	profile, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve user")
	}
	return profile, nil
}

// Exists reports whether an employee id is present in the directory.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check user")
	}
	return true, nil
}

// ListBuddies returns the mentor pool ordered by display name.
func (s *Service) ListBuddies(ctx context.Context) ([]models.Profile, error) {
	buddies, err := s.store.ListBuddies(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list buddies")
	}
	return buddies, nil
}
