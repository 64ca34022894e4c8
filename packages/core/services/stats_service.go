package services

import (
	"time"

	"core/models"

	"gorm.io/gorm"
)

const statsListSize = 5

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		db: db,
	}
}

// GetCommunityStats builds the dashboard aggregates: totals, recent
// activity, leaderboards and venue usage.
func (s *StatsService) GetCommunityStats(now time.Time) (*models.CommunityStats, error) {
	stats := &models.CommunityStats{}

	if err := s.db.Model(&models.Player{}).Count(&stats.TotalPlayers).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Match{}).
		Where("state = ?", models.MatchFinished).
		Count(&stats.TotalMatches).Error; err != nil {
		return nil, err
	}

	weekAgo := now.AddDate(0, 0, -7)
	if err := s.db.Model(&models.Match{}).
		Where("state = ? AND start_time >= ?", models.MatchFinished, weekAgo).
		Count(&stats.MatchesLast7Days).Error; err != nil {
		return nil, err
	}

	err := s.db.Order("rating DESC, id ASC").
		Limit(statsListSize).
		Find(&stats.TopRatedPlayers).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Where("matches_played > 0").
		Order("matches_played DESC, id ASC").
		Limit(statsListSize).
		Find(&stats.MostActivePlayers).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Where("kind = ? AND active = ?", models.TeamPermanent, true).
		Order("wins DESC, matches_played DESC, id ASC").
		Limit(statsListSize).
		Preload("Captain").
		Find(&stats.TopTeams).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Table("venues").
		Select("venues.id AS venue_id, venues.name, venues.location, COUNT(matches.id) AS finished_matches").
		Joins("JOIN matches ON matches.venue_id = venues.id AND matches.state = ? AND matches.deleted_at IS NULL", models.MatchFinished).
		Where("venues.deleted_at IS NULL").
		Group("venues.id, venues.name, venues.location").
		Order("finished_matches DESC").
		Limit(statsListSize).
		Scan(&stats.PopularVenues).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
