package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	InvitationPending  = "PENDING"
	InvitationAccepted = "ACCEPTED"
	InvitationRejected = "REJECTED"
)

// TeamInvitation is a captain's offer to a player to join a permanent team.
// At most one pending invitation may exist per (team, invitee) pair.
type TeamInvitation struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	TeamID      uint       `gorm:"not null;index" json:"team_id"`
	InvitedByID uint       `gorm:"not null" json:"invited_by_id"`
	InviteeID   uint       `gorm:"not null;index" json:"invitee_id"`
	State       string     `gorm:"size:10;default:PENDING" json:"state"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Team      *Team   `gorm:"foreignKey:TeamID;references:ID" json:"team,omitempty"`
	InvitedBy *Player `gorm:"foreignKey:InvitedByID;references:ID" json:"invited_by,omitempty"`
	Invitee   *Player `gorm:"foreignKey:InviteeID;references:ID" json:"invitee,omitempty"`
}

func (TeamInvitation) TableName() string {
	return "team_invitations"
}

type InviteMemberRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
}

type RespondInvitationRequest struct {
	Accept bool `json:"accept"`
}
