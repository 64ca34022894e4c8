package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultRating is the skill rating assigned to every new player and the
// fallback average for a team with no members.
const DefaultRating = 1000.0

const (
	PositionForward    = "FORWARD"
	PositionMidfielder = "MIDFIELDER"
	PositionDefender   = "DEFENDER"
	PositionGoalkeeper = "GOALKEEPER"
)

// Player is the sporting profile of a registered user. Its primary key is the
// auth user id. Rating and the result counters are written only by the
// settlement service.
type Player struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:150;not null" json:"name"`
	Position      string         `gorm:"size:20" json:"position,omitempty"`
	Rating        float64        `gorm:"default:1000" json:"rating"`
	MatchesPlayed int            `gorm:"default:0" json:"matches_played"`
	Wins          int            `gorm:"default:0" json:"wins"`
	Losses        int            `gorm:"default:0" json:"losses"`
	Draws         int            `gorm:"default:0" json:"draws"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	RatingHistory []RatingHistory `gorm:"foreignKey:PlayerID" json:"rating_history,omitempty"`
}

func (Player) TableName() string {
	return "players"
}

type PaginatedPlayersResponse struct {
	Data       []Player `json:"data"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	TotalPages int      `json:"totalPages"`
}
