package service

import (
	"context"

	"github.com/botanical-decor/shop-api/internal/cache"
	"github.com/botanical-decor/shop-api/internal/models"
	"github.com/botanical-decor/shop-api/internal/repository"
)

// ProfileService owns the admin view of customer accounts: listing,
// blocking and soft deletion.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a profile service.
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// GetByID fetches one profile or ErrNotFound.
func (s *ProfileService) GetByID(id uint) (*models.Profile, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	profile, err := s.profileRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

// List returns profiles for the admin panel.
func (s *ProfileService) List(filter repository.ProfileListFilter) ([]models.Profile, int64, error) {
	return s.profileRepo.List(filter)
}

// SetBlocked blocks or unblocks an account. Blocked accounts cannot log in
// and existing sessions are cut off through the account state cache.
func (s *ProfileService) SetBlocked(id uint, blocked bool) error {
	rows, err := s.profileRepo.SetBlocked(id, blocked)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	_ = cache.DelAccountState(context.Background(), id)
	return nil
}

// SetDeleted soft-deletes or restores an account. The row stays visible to
// admins and the email stays reserved either way.
func (s *ProfileService) SetDeleted(id uint, deleted bool) error {
	rows, err := s.profileRepo.SetDeleted(id, deleted)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	_ = cache.DelAccountState(context.Background(), id)
	return nil
}
