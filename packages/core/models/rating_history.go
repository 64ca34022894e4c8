package models

import (
	"time"

	"gorm.io/gorm"
)

// RatingHistory is an append-only record of a rating change, one entry per
// player per rated match.
type RatingHistory struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID     uint           `gorm:"not null;index" json:"player_id"`
	MatchID      uint           `gorm:"not null;index" json:"match_id"`
	RatingBefore float64        `gorm:"not null" json:"rating_before"`
	RatingAfter  float64        `gorm:"not null" json:"rating_after"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Player *Player `gorm:"foreignKey:PlayerID;references:ID" json:"player,omitempty"`
	Match  *Match  `gorm:"foreignKey:MatchID;references:ID" json:"match,omitempty"`
}

func (RatingHistory) TableName() string {
	return "rating_history"
}
