package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MatchScheduled = "SCHEDULED"
	MatchFinished  = "FINISHED"
	MatchCancelled = "CANCELLED"
)

const (
	ModeFriendly    = "FRIENDLY"
	ModeCompetitive = "COMPETITIVE"
)

const (
	LevelBeginner     = "BEGINNER"
	LevelIntermediate = "INTERMEDIATE"
	LevelAdvanced     = "ADVANCED"
	LevelPro          = "PRO"
)

const (
	PaymentCash  = "CASH"
	PaymentBizum = "BIZUM"
	PaymentFree  = "FREE"
)

// MatchDuration is the assumed length of a match, used for the venue
// conflict window and the default enrollment deadline.
const MatchDuration = time.Hour

type Match struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StartTime time.Time `gorm:"not null" json:"start_time"`

	// EnrollmentDeadline is optional; when unset the effective deadline is
	// one hour before kickoff.
	EnrollmentDeadline *time.Time `json:"enrollment_deadline,omitempty"`

	VenueID       uint    `gorm:"not null" json:"venue_id"`
	Format        string  `gorm:"size:10;not null" json:"format"`
	Level         string  `gorm:"size:20" json:"level,omitempty"`
	Mode          string  `gorm:"size:15;default:FRIENDLY" json:"mode"`
	Capacity      int     `gorm:"not null" json:"capacity"`
	Cost          float64 `gorm:"default:0" json:"cost"`
	PaymentMethod string  `gorm:"size:10;default:FREE" json:"payment_method"`
	CreatorID     uint    `gorm:"not null" json:"creator_id"`
	HomeTeamID    *uint   `json:"home_team_id,omitempty"`
	AwayTeamID    *uint   `json:"away_team_id,omitempty"`
	State         string  `gorm:"size:10;default:SCHEDULED" json:"state"`

	// RatingApplied is set exactly once, when the settlement service runs
	// the rating update for this match.
	RatingApplied bool   `gorm:"default:false" json:"rating_applied"`
	Comments      string `gorm:"type:text" json:"comments,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Venue    *Venue   `gorm:"foreignKey:VenueID;references:ID" json:"venue,omitempty"`
	Creator  *Player  `gorm:"foreignKey:CreatorID;references:ID" json:"creator,omitempty"`
	HomeTeam *Team    `gorm:"foreignKey:HomeTeamID;references:ID" json:"home_team,omitempty"`
	AwayTeam *Team    `gorm:"foreignKey:AwayTeamID;references:ID" json:"away_team,omitempty"`
	Players  []Player `gorm:"many2many:match_players" json:"players,omitempty"`
	Result   *Result  `gorm:"foreignKey:MatchID" json:"result,omitempty"`
}

func (Match) TableName() string {
	return "matches"
}

// EffectiveDeadline returns the explicit enrollment deadline, or one hour
// before kickoff when none was set.
func (m *Match) EffectiveDeadline() time.Time {
	if m.EnrollmentDeadline != nil {
		return *m.EnrollmentDeadline
	}
	return m.StartTime.Add(-MatchDuration)
}

// EndTime is derived, not stored: a match occupies its venue for one hour.
func (m *Match) EndTime() time.Time {
	return m.StartTime.Add(MatchDuration)
}

// IsTeamChallenge reports whether this match is a permanent team waiting for
// (or already facing) a rival club. Requires HomeTeam to be preloaded.
func (m *Match) IsTeamChallenge() bool {
	return m.HomeTeam != nil && m.HomeTeam.Kind == TeamPermanent
}

// IsAwaitingRival reports whether a team challenge still has its away slot
// free.
func (m *Match) IsAwaitingRival() bool {
	return m.IsTeamChallenge() && m.AwayTeamID == nil
}

type CreateMatchRequest struct {
	VenueID            uint       `json:"venue_id" binding:"required"`
	StartTime          time.Time  `json:"start_time" binding:"required"`
	EnrollmentDeadline *time.Time `json:"enrollment_deadline,omitempty"`
	Format             string     `json:"format" binding:"required,oneof=FUTSAL F7 F11"`
	Level              string     `json:"level,omitempty" binding:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED PRO"`
	Mode               string     `json:"mode,omitempty" binding:"omitempty,oneof=FRIENDLY COMPETITIVE"`
	Capacity           int        `json:"capacity,omitempty"`
	Cost               float64    `json:"cost,omitempty"`
	PaymentMethod      string     `json:"payment_method,omitempty" binding:"omitempty,oneof=CASH BIZUM FREE"`
	HomeTeamID         *uint      `json:"home_team_id,omitempty"`
	Comments           string     `json:"comments,omitempty"`
}

type AssignSquadsRequest struct {
	HomePlayerIDs []uint `json:"home_player_ids" binding:"required"`
	AwayPlayerIDs []uint `json:"away_player_ids" binding:"required"`
}

type RecordResultRequest struct {
	HomeGoals int `json:"home_goals" binding:"min=0"`
	AwayGoals int `json:"away_goals" binding:"min=0"`
}

type PaginatedMatchResponse struct {
	Data       []Match `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}
