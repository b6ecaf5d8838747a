package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"

	"tone/internal/models"
	"tone/internal/observability"
	"tone/internal/repository"
	"tone/internal/storage"

	_ "golang.org/x/image/webp"
)

// MaxAvatarSize is the upload cap for avatar images.
const MaxAvatarSize = 2 << 20 // 2MB

var avatarExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type AvatarService struct {
	profileRepo repository.ProfileRepository
	store       storage.BlobStore
	now         func() time.Time
}

func NewAvatarService(profileRepo repository.ProfileRepository, store storage.BlobStore) *AvatarService {
	return &AvatarService{profileRepo: profileRepo, store: store, now: time.Now}
}

// Upload validates an avatar image, stores it under a timestamped key and
// records the resulting URL on the caller's profile. The timestamp in the key
// makes each upload a fresh object, so stale CDN caches never show old
// avatars.
func (s *AvatarService) Upload(ctx context.Context, userID uint, data []byte) (string, error) {
	if s.store == nil {
		observability.AvatarUploads.WithLabelValues("unavailable").Inc()
		return "", &models.AppError{Code: models.CodeInternal, Message: "Avatar storage is not configured"}
	}
	if len(data) == 0 {
		return "", models.NewValidationError("Avatar file is empty")
	}
	if len(data) > MaxAvatarSize {
		observability.AvatarUploads.WithLabelValues("too_large").Inc()
		return "", models.NewValidationError("Avatar exceeds the 2MB size limit")
	}

	contentType := http.DetectContentType(data)
	ext, ok := avatarExtensions[contentType]
	if !ok {
		observability.AvatarUploads.WithLabelValues("bad_type").Inc()
		return "", models.NewValidationError("Avatar must be a PNG, JPEG, GIF or WebP image")
	}

	// Sniffing only inspects the first bytes; decode to reject files that
	// merely carry an image header.
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		observability.AvatarUploads.WithLabelValues("bad_image").Inc()
		return "", models.NewValidationError("Avatar file is not a valid image")
	}

	key := fmt.Sprintf("avatars/%d-%d%s", userID, s.now().Unix(), ext)
	url, err := s.store.Put(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		observability.AvatarUploads.WithLabelValues("store_failed").Inc()
		return "", models.NewInternalError(err)
	}

	if err := s.profileRepo.UpdateAvatarURL(ctx, userID, url); err != nil {
		observability.AvatarUploads.WithLabelValues("db_failed").Inc()
		return "", err
	}

	observability.AvatarUploads.WithLabelValues("ok").Inc()
	return url, nil
}
