package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// TeamPermanent is a standing club managed by its captain.
	TeamPermanent = "PERMANENT"
	// TeamMatchScoped is an ad-hoc squad that exists only for one match.
	TeamMatchScoped = "MATCH"
)

type Team struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	CaptainID   uint   `gorm:"not null" json:"captain_id"`
	Kind        string `gorm:"size:10;not null" json:"kind"`
	Active      bool   `gorm:"default:true" json:"active"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// MatchID links a match-scoped squad to the match that owns it. A
	// permanent team never holds this link (cleared in BeforeSave).
	MatchID *uint `gorm:"index" json:"match_id,omitempty"`

	// Counters for permanent teams, written only by the settlement service.
	MatchesPlayed int `gorm:"default:0" json:"matches_played"`
	Wins          int `gorm:"default:0" json:"wins"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Captain *Player  `gorm:"foreignKey:CaptainID;references:ID" json:"captain,omitempty"`
	Members []Player `gorm:"many2many:team_members" json:"members,omitempty"`
}

func (Team) TableName() string {
	return "teams"
}

// BeforeSave keeps the permanent/match-scoped invariant: a permanent team can
// never be owned by a match.
func (t *Team) BeforeSave(tx *gorm.DB) error {
	if t.Kind == TeamPermanent {
		t.MatchID = nil
	}
	return nil
}

// AverageRating returns the arithmetic mean of the loaded members' ratings,
// or DefaultRating for an empty team.
func (t *Team) AverageRating() float64 {
	if len(t.Members) == 0 {
		return DefaultRating
	}
	var sum float64
	for _, p := range t.Members {
		sum += p.Rating
	}
	return sum / float64(len(t.Members))
}

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type PaginatedTeamsResponse struct {
	Data       []Team `json:"data"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
}
