package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// EnrollmentPlayer is an individual asking to join an open match.
	EnrollmentPlayer = "PLAYER"
	// EnrollmentTeam is a permanent team asking to be the away side of a
	// challenge.
	EnrollmentTeam = "TEAM"
)

const (
	EnrollmentPending  = "PENDING"
	EnrollmentAccepted = "ACCEPTED"
	EnrollmentRejected = "REJECTED"
)

// Enrollment is a request to take part in a match. Player enrollments occupy
// a roster slot from the moment they are created; the slot is released again
// if the request is rejected.
type Enrollment struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Kind    string `gorm:"size:10;not null" json:"kind"`
	MatchID uint   `gorm:"not null;index" json:"match_id"`
	State   string `gorm:"size:10;default:PENDING" json:"state"`

	// PlayerID is set for PLAYER enrollments, TeamID for TEAM enrollments.
	PlayerID *uint `gorm:"index" json:"player_id,omitempty"`
	TeamID   *uint `gorm:"index" json:"team_id,omitempty"`

	PaymentConfirmed bool   `gorm:"default:false" json:"payment_confirmed"`
	Comments         string `gorm:"type:text" json:"comments,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Match  *Match  `gorm:"foreignKey:MatchID;references:ID" json:"match,omitempty"`
	Player *Player `gorm:"foreignKey:PlayerID;references:ID" json:"player,omitempty"`
	Team   *Team   `gorm:"foreignKey:TeamID;references:ID" json:"team,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

type RequestTeamChallengeRequest struct {
	TeamID uint `json:"team_id" binding:"required"`
}
