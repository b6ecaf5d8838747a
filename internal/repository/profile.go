package repository

import (
	"context"
	"errors"

	"tone/internal/cache"
	"tone/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines persistence operations for profiles.
// Lookups return (nil, nil) when no profile exists: a missing profile is an
// ordinary empty state, not an error.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
	UpdateAvatarURL(ctx context.Context, userID uint, avatarURL string) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	key := cache.ProfileKey(userID)

	err := cache.Aside(ctx, key, &profile, cache.ProfileTTL, func() error {
		if err := r.db.WithContext(ctx).First(&profile, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gorm.ErrRecordNotFound
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	var profile models.Profile
	key := cache.UsernameKey(username)

	err := cache.Aside(ctx, key, &profile, cache.ProfileTTL, func() error {
		if err := r.db.WithContext(ctx).Where("username = ?", username).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gorm.ErrRecordNotFound
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert inserts or replaces the caller's profile, keyed by user ID. A clash
// on the username unique index surfaces as a conflict error.
func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	var prev models.Profile
	prevFound := r.db.WithContext(ctx).Select("username").Take(&prev, profile.ID).Error == nil

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "display_name", "updated_at"}),
		}).
		Create(profile).Error
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username already taken")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.ID, profile.Username)
	// A rename must also drop the old name's cache entry, or the freed name
	// keeps resolving to this profile until the TTL runs out.
	if prevFound && prev.Username != profile.Username {
		cache.Invalidate(ctx, cache.UsernameKey(prev.Username))
	}
	return nil
}

func (r *profileRepository) UpdateAvatarURL(ctx context.Context, userID uint, avatarURL string) error {
	res := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", userID).
		Update("avatar_url", avatarURL)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Profile", userID)
	}

	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, userID).Error; err == nil {
		cache.InvalidateProfile(ctx, userID, profile.Username)
	}
	return nil
}
