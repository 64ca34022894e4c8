package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	FormatFutsal = "FUTSAL"
	FormatSeven  = "F7"
	FormatEleven = "F11"
)

const (
	VenuePublic  = "PUBLIC"
	VenuePrivate = "PRIVATE"
)

// Venue is a bookable court.
type Venue struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Location    string         `gorm:"size:255;not null" json:"location"`
	Format      string         `gorm:"size:10;not null" json:"format"`
	Surface     string         `gorm:"size:50" json:"surface,omitempty"`
	Ownership   string         `gorm:"size:10" json:"ownership,omitempty"`
	MatchCost   float64        `gorm:"default:0" json:"match_cost"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Available   bool           `gorm:"default:true" json:"available"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Venue) TableName() string {
	return "venues"
}

type CreateVenueRequest struct {
	Name        string  `json:"name" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	Format      string  `json:"format" binding:"required,oneof=FUTSAL F7 F11"`
	Surface     string  `json:"surface,omitempty"`
	Ownership   string  `json:"ownership,omitempty" binding:"omitempty,oneof=PUBLIC PRIVATE"`
	MatchCost   float64 `json:"match_cost,omitempty"`
	Description string  `json:"description,omitempty"`
}

type UpdateVenueRequest struct {
	Name        *string  `json:"name,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Surface     *string  `json:"surface,omitempty"`
	Ownership   *string  `json:"ownership,omitempty" binding:"omitempty,oneof=PUBLIC PRIVATE"`
	MatchCost   *float64 `json:"match_cost,omitempty"`
	Description *string  `json:"description,omitempty"`
	Available   *bool    `json:"available,omitempty"`
}
