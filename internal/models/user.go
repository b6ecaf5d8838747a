// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User is the identity anchor for passwordless authentication. A row is
// created the first time a magic link for the address is verified; the
// public-facing Profile is created separately when the user saves one.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
