package models

import (
	"time"
)

// Stamp values a log can carry. Exactly these six are accepted.
const (
	StampFire  = "fire"
	StampCry   = "cry"
	StampLove  = "love"
	StampThink = "think"
	StampSleep = "sleep"
	StampVomit = "vomit"
)

// DefaultStamp is used when a log is created without an explicit stamp.
const DefaultStamp = StampFire

// StampIcons maps each stamp to its display glyph.
var StampIcons = map[string]string{
	StampFire:  "🔥",
	StampCry:   "😭",
	StampLove:  "🥰",
	StampThink: "🤔",
	StampSleep: "😴",
	StampVomit: "🤮",
}

// ValidStamps lists the accepted stamp values in display order.
var ValidStamps = []string{StampFire, StampCry, StampLove, StampThink, StampSleep, StampVomit}

// IsValidStamp reports whether s is one of the six fixed stamp values.
func IsValidStamp(s string) bool {
	_, ok := StampIcons[s]
	return ok
}

// Log is one user's reaction record for a single item. The owner and item
// references are immutable after creation; stamp, memo and visibility may be
// edited by the owner. Logs are hard-deleted, never soft-deleted.
type Log struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ItemID    uint      `gorm:"not null" json:"item_id"`
	Item      Item      `gorm:"foreignKey:ItemID" json:"item"`
	Stamp     string    `gorm:"size:16;not null" json:"stamp"`
	Memo      string    `json:"memo,omitempty"`
	IsPublic  bool      `gorm:"not null;default:true" json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StampIcon returns the display glyph for the log's stamp, or a fallback for
// values that slipped past validation.
func (l *Log) StampIcon() string {
	if icon, ok := StampIcons[l.Stamp]; ok {
		return icon
	}
	return "❓"
}
