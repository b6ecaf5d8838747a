package service

import (
	"context"

	"tone/internal/models"
	"tone/internal/observability"
	"tone/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

type LogService struct {
	logRepo  repository.LogRepository
	itemRepo repository.ItemRepository
}

type CreateLogInput struct {
	UserID   uint
	ItemID   uint
	Stamp    string
	Memo     string
	IsPublic *bool
}

// UpdateLogInput carries a partial edit; nil fields are left unchanged.
type UpdateLogInput struct {
	UserID   uint
	LogID    uint
	Stamp    *string
	Memo     *string
	IsPublic *bool
}

const maxMemoLen = 2000

func NewLogService(logRepo repository.LogRepository, itemRepo repository.ItemRepository) *LogService {
	return &LogService{logRepo: logRepo, itemRepo: itemRepo}
}

// List returns the caller's full history, newest first, private logs included.
func (s *LogService) List(ctx context.Context, userID uint) ([]models.Log, error) {
	return s.logRepo.ListByUser(ctx, userID)
}

// Create records a reaction to an item. The stamp defaults to the primary
// reaction and visibility defaults to public.
func (s *LogService) Create(ctx context.Context, in CreateLogInput) (*models.Log, error) {
	stamp := in.Stamp
	if stamp == "" {
		stamp = models.DefaultStamp
	}
	if !models.IsValidStamp(stamp) {
		return nil, models.NewValidationError("Invalid stamp")
	}
	if len(in.Memo) > maxMemoLen {
		return nil, models.NewValidationError("Memo too long (max 2000 characters)")
	}
	if in.ItemID == 0 {
		return nil, models.NewValidationError("item_id is required")
	}
	// The item must exist; a dangling reference would break every listing.
	if _, err := s.itemRepo.GetByID(ctx, in.ItemID); err != nil {
		return nil, err
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	log := &models.Log{
		UserID:   in.UserID,
		ItemID:   in.ItemID,
		Stamp:    stamp,
		Memo:     in.Memo,
		IsPublic: isPublic,
	}
	if err := s.logRepo.Create(ctx, log); err != nil {
		return nil, err
	}

	observability.AddTraceAttributesToContext(ctx,
		attribute.String("log.stamp", stamp),
		attribute.Bool("log.public", isPublic),
	)
	observability.LogsCreated.WithLabelValues(stamp).Inc()
	return s.logRepo.GetByID(ctx, log.ID)
}

// Update edits the caller's own log. A log that does not exist or belongs to
// someone else is reported identically, so ownership cannot be probed.
func (s *LogService) Update(ctx context.Context, in UpdateLogInput) (*models.Log, error) {
	log, err := s.getOwned(ctx, in.UserID, in.LogID)
	if err != nil {
		return nil, err
	}

	if in.Stamp != nil {
		if !models.IsValidStamp(*in.Stamp) {
			return nil, models.NewValidationError("Invalid stamp")
		}
		log.Stamp = *in.Stamp
	}
	if in.Memo != nil {
		if len(*in.Memo) > maxMemoLen {
			return nil, models.NewValidationError("Memo too long (max 2000 characters)")
		}
		log.Memo = *in.Memo
	}
	if in.IsPublic != nil {
		log.IsPublic = *in.IsPublic
	}

	if err := s.logRepo.Update(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// Delete permanently removes the caller's own log.
func (s *LogService) Delete(ctx context.Context, userID, logID uint) error {
	if _, err := s.getOwned(ctx, userID, logID); err != nil {
		return err
	}
	return s.logRepo.Delete(ctx, logID)
}

func (s *LogService) getOwned(ctx context.Context, userID, logID uint) (*models.Log, error) {
	log, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		return nil, err
	}
	if log == nil || log.UserID != userID {
		return nil, models.NewNotFoundError("Log", logID)
	}
	return log, nil
}
