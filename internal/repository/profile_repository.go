package repository

import (
	"errors"

	"github.com/botanical-decor/shop-api/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository is the customer account data access interface.
type ProfileRepository interface {
	GetByEmail(email string) (*models.Profile, error)
	GetByID(id uint) (*models.Profile, error)
	Create(profile *models.Profile) error
	Update(profile *models.Profile) error
	List(filter ProfileListFilter) ([]models.Profile, int64, error)
	SetBlocked(id uint, blocked bool) (int64, error)
	SetDeleted(id uint, deleted bool) (int64, error)
	UpdatePassword(id uint, passwordHash string) error
}

// GormProfileRepository is the GORM implementation.
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a profile repository.
func NewProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// GetByEmail fetches a profile by email, nil when absent. Soft-deleted
// profiles are returned too: callers decide how to treat them.
func (r *GormProfileRepository) GetByEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetByID fetches a profile by ID, nil when absent.
func (r *GormProfileRepository) GetByID(id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Create inserts a profile.
func (r *GormProfileRepository) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// Update saves a profile.
func (r *GormProfileRepository) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// List returns profiles for the admin panel.
func (r *GormProfileRepository) List(filter ProfileListFilter) ([]models.Profile, int64, error) {
	query := r.db.Model(&models.Profile{})

	if !filter.IncludeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("email LIKE ? OR full_name LIKE ?", like, like)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Blocked != nil {
		query = query.Where("is_blocked = ?", *filter.Blocked)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var profiles []models.Profile
	if err := query.Order("id DESC").Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// SetBlocked flips the blocked flag. Returns rows affected.
func (r *GormProfileRepository) SetBlocked(id uint, blocked bool) (int64, error) {
	result := r.db.Model(&models.Profile{}).Where("id = ?", id).Update("is_blocked", blocked)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// SetDeleted flips the soft-delete flag. The row is kept so the email stays
// reserved and order history remains attributable.
func (r *GormProfileRepository) SetDeleted(id uint, deleted bool) (int64, error) {
	result := r.db.Model(&models.Profile{}).Where("id = ?", id).Update("is_deleted", deleted)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UpdatePassword stores a new password hash.
func (r *GormProfileRepository) UpdatePassword(id uint, passwordHash string) error {
	return r.db.Model(&models.Profile{}).Where("id = ?", id).Update("password_hash", passwordHash).Error
}
