package repository

import (
	"context"
	"errors"

	"tone/internal/models"
	"tone/internal/observability"

	"gorm.io/gorm"
)

// LogRepository defines persistence operations for reaction logs.
type LogRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Log, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Log, error)
	ListPublicByUser(ctx context.Context, userID uint) ([]models.Log, error)
	Create(ctx context.Context, log *models.Log) error
	Update(ctx context.Context, log *models.Log) error
	Delete(ctx context.Context, id uint) error
}

type logRepository struct {
	db      *gorm.DB
	repoLog *observability.RepoLogger
}

// NewLogRepository returns a new LogRepository implementation.
func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{db: db, repoLog: observability.NewRepoLogger("logs")}
}

func (r *logRepository) GetByID(ctx context.Context, id uint) (*models.Log, error) {
	var log models.Log
	if err := r.db.WithContext(ctx).Preload("Item").First(&log, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &log, nil
}

// ListByUser returns all of a user's logs, newest first, with items preloaded.
func (r *logRepository) ListByUser(ctx context.Context, userID uint) ([]models.Log, error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "ListByUser", "logs")
	defer span.End()

	logs := []models.Log{}
	if err := r.db.WithContext(ctx).
		Preload("Item").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		r.repoLog.LogError(ctx, err, "list")
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}

// ListPublicByUser returns only logs the user has marked public, newest first.
func (r *logRepository) ListPublicByUser(ctx context.Context, userID uint) ([]models.Log, error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "ListPublicByUser", "logs")
	defer span.End()

	logs := []models.Log{}
	if err := r.db.WithContext(ctx).
		Preload("Item").
		Where("user_id = ? AND is_public = ?", userID, true).
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		r.repoLog.LogError(ctx, err, "list_public")
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}

func (r *logRepository) Create(ctx context.Context, log *models.Log) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		r.repoLog.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.repoLog.LogMutation(ctx, "create", map[string]interface{}{
		"log_id":  log.ID,
		"user_id": log.UserID,
		"item_id": log.ItemID,
	})
	return nil
}

func (r *logRepository) Update(ctx context.Context, log *models.Log) error {
	if err := r.db.WithContext(ctx).Omit("Item").Save(log).Error; err != nil {
		r.repoLog.LogError(ctx, err, "update")
		return models.NewInternalError(err)
	}
	r.repoLog.LogMutation(ctx, "update", map[string]interface{}{"log_id": log.ID})
	return nil
}

// Delete removes the row permanently. Log has no DeletedAt column so this is
// a hard delete.
func (r *logRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Log{}, id).Error; err != nil {
		r.repoLog.LogError(ctx, err, "delete")
		return models.NewInternalError(err)
	}
	r.repoLog.LogMutation(ctx, "delete", map[string]interface{}{"log_id": id})
	return nil
}
