// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"errors"
	"fmt"

	"tone/internal/models"

	"gorm.io/gorm"
)

// BuiltInItem is a starter catalog entry available on a fresh database.
type BuiltInItem struct {
	Title    string
	Category string
}

// BuiltInItems defines the starter catalog so the search box is never empty
// on a brand-new install.
var BuiltInItems = []BuiltInItem{
	{Title: "Dune", Category: "book"},
	{Title: "The Left Hand of Darkness", Category: "book"},
	{Title: "Kafka on the Shore", Category: "book"},
	{Title: "Spirited Away", Category: "movie"},
	{Title: "Blade Runner 2049", Category: "movie"},
	{Title: "Everything Everywhere All at Once", Category: "movie"},
	{Title: "Severance", Category: "tv"},
	{Title: "The Bear", Category: "tv"},
	{Title: "Cowboy Bebop", Category: "tv"},
	{Title: "OK Computer", Category: "music"},
	{Title: "Blue Train", Category: "music"},
	{Title: "Outer Wilds", Category: "game"},
	{Title: "Hades", Category: "game"},
	{Title: "Disco Elysium", Category: "game"},
}

// Items seeds the starter item catalog. It is idempotent: existing titles
// are left untouched so user-created duplicates never multiply on restart.
func Items(db *gorm.DB) error {
	for _, entry := range BuiltInItems {
		err := db.Transaction(func(tx *gorm.DB) error {
			var existing models.Item
			queryErr := tx.Where("title = ? AND category = ?", entry.Title, entry.Category).
				First(&existing).Error
			switch {
			case queryErr == nil:
				return nil
			case !errors.Is(queryErr, gorm.ErrRecordNotFound):
				return queryErr
			}

			item := models.Item{
				Title:    entry.Title,
				Category: entry.Category,
			}
			return tx.Create(&item).Error
		})
		if err != nil {
			return fmt.Errorf("seed built-in item %q: %w", entry.Title, err)
		}
	}

	return nil
}
