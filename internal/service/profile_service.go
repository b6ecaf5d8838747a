package service

import (
	"context"
	"strings"

	"tone/internal/models"
	"tone/internal/repository"
	"tone/internal/validation"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
	logRepo     repository.LogRepository
}

type UpsertProfileInput struct {
	UserID      uint
	Username    string
	DisplayName string
}

// PublicProfileView is a user's public page: the profile plus only the logs
// they chose to share.
type PublicProfileView struct {
	Profile models.Profile `json:"profile"`
	Logs    []models.Log   `json:"logs"`
}

func NewProfileService(profileRepo repository.ProfileRepository, logRepo repository.LogRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, logRepo: logRepo}
}

// Get returns the caller's profile, or (nil, nil) when none has been saved
// yet. First-time users simply have no profile row.
func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// Upsert validates and saves the caller's profile. Usernames are stored
// lowercased; a clash with another user's name surfaces as a conflict.
func (s *ProfileService) Upsert(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	const maxDisplayNameLen = 50

	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	displayName := strings.TrimSpace(in.DisplayName)
	if len(displayName) > maxDisplayNameLen {
		return nil, models.NewValidationError("Display name too long (max 50 characters)")
	}

	profile := &models.Profile{
		ID:          in.UserID,
		Username:    validation.NormalizeUsername(in.Username),
		DisplayName: displayName,
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// PublicProfile resolves a username to its public page. An unknown username
// is a not-found error; a failure loading the logs is reported as its own
// error rather than masquerading as a missing profile.
func (s *ProfileService) PublicProfile(ctx context.Context, username string) (*PublicProfileView, error) {
	normalized := validation.NormalizeUsername(strings.TrimSpace(username))
	if normalized == "" {
		return nil, models.NewValidationError("username is required")
	}

	profile, err := s.profileRepo.GetByUsername(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile", username)
	}

	logs, err := s.logRepo.ListPublicByUser(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	return &PublicProfileView{Profile: *profile, Logs: logs}, nil
}
