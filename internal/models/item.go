package models

import (
	"time"
)

// DefaultItemCategory is assigned when an item is created without an
// explicit category (the create-on-miss flow).
const DefaultItemCategory = "other"

// Item is a catalog entry representing a piece of media that can be logged
// against. Items are shared across all users: any user may create one on
// first reference, and there is no update or delete path. Duplicate titles
// are permitted.
type Item struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null;index" json:"title"`
	Category  string    `gorm:"size:32;not null" json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
