package services

import (
	"errors"

	"core/models"

	"gorm.io/gorm"
)

type PlayerService struct {
	db *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{
		db: db,
	}
}

// RegisterPlayer creates the sporting profile for a freshly registered user.
// The player id is the auth user id.
func (s *PlayerService) RegisterPlayer(userID uint, name, position string) error {
	player := &models.Player{
		ID:       userID,
		Name:     name,
		Position: position,
		Rating:   models.DefaultRating,
	}
	return s.db.Create(player).Error
}

func (s *PlayerService) GetPlayerByID(id uint) (*models.Player, error) {
	var player models.Player

	result := s.db.First(&player, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, result.Error
	}

	return &player, nil
}

func (s *PlayerService) GetAllPlayers(page, pageSize int) (*models.PaginatedPlayersResponse, error) {
	var players []models.Player
	var total int64

	if err := s.db.Model(&models.Player{}).Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize

	if err := s.db.Order("name ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&players).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedPlayersResponse{
		Data:       players,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *PlayerService) GetTopPlayersByRating(limit int) ([]models.Player, error) {
	var players []models.Player

	result := s.db.Order("rating DESC, id ASC").
		Limit(limit).
		Find(&players)

	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

func (s *PlayerService) GetRatingHistoryByPlayerID(playerID uint) ([]models.RatingHistory, error) {
	var history []models.RatingHistory

	result := s.db.Where("player_id = ?", playerID).
		Order("id ASC").
		Preload("Match").
		Preload("Match.Venue").
		Find(&history)

	if result.Error != nil {
		return nil, result.Error
	}

	return history, nil
}
