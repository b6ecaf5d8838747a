package repository

import (
	"context"
	"errors"
	"strings"

	"tone/internal/cache"
	"tone/internal/models"
	"tone/internal/observability"

	"gorm.io/gorm"
)

// ItemRepository defines persistence operations for catalog items.
type ItemRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Item, error)
	Search(ctx context.Context, query string, limit int) ([]models.Item, error)
	Create(ctx context.Context, item *models.Item) error
}

type itemRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewItemRepository returns a new ItemRepository implementation.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

// GetByID serves items through the cache; the catalog is append-only so a
// generous TTL is safe.
func (r *itemRepository) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item

	err := cache.Aside(ctx, cache.ItemKey(id), &item, cache.ItemTTL, func() error {
		return r.db.WithContext(ctx).First(&item, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Item", id)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &item, nil
}

// Search performs a case-insensitive substring match on title. This is the
// hot read path, so it carries a span and a latency observation.
func (r *itemRepository) Search(ctx context.Context, query string, limit int) ([]models.Item, error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "Search", "items")
	defer span.End()
	defer r.metrics.TrackQuery("search", "items")()

	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	items := []models.Item{}
	pattern := "%" + strings.ToLower(query) + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ?", pattern).
		Order("title ASC").
		Limit(limit).
		Find(&items).Error; err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	if item.Category == "" {
		item.Category = models.DefaultItemCategory
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
