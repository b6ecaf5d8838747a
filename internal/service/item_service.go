package service

import (
	"context"
	"strings"

	"tone/internal/models"
	"tone/internal/repository"
)

type ItemService struct {
	itemRepo repository.ItemRepository
}

type CreateItemInput struct {
	Title    string
	Category string
}

const searchResultLimit = 10

func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// Search returns up to ten items whose title contains the query. A blank
// query returns an empty result instead of the whole catalog.
func (s *ItemService) Search(ctx context.Context, query string) ([]models.Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Item{}, nil
	}
	return s.itemRepo.Search(ctx, query, searchResultLimit)
}

// Create registers a new item, used when a search turned up nothing. The
// category falls back to the catch-all bucket.
func (s *ItemService) Create(ctx context.Context, in CreateItemInput) (*models.Item, error) {
	const maxTitleLen = 255

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 255 characters)")
	}

	item := &models.Item{
		Title:    title,
		Category: strings.TrimSpace(in.Category),
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
