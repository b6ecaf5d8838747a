package models

import (
	"time"
)

// Profile is a user's public identity. The primary key is the owning user's
// ID, so there is at most one profile per user and upserts key on it.
// Username is stored lowercase and is unique across all users.
type Profile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;size:30;not null" json:"username"`
	DisplayName string    `json:"display_name,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
