package models

import "time"

// Result is the final score of a match, one-to-one with the match row. It is
// written by the settlement service and never changes once the match is
// FINISHED.
type Result struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID    uint      `gorm:"uniqueIndex;not null" json:"match_id"`
	HomeGoals  int       `gorm:"not null;default:0" json:"home_goals"`
	AwayGoals  int       `gorm:"not null;default:0" json:"away_goals"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (Result) TableName() string {
	return "results"
}
