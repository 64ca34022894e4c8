package services

import (
	"errors"

	"core/models"

	"gorm.io/gorm"
)

type VenueService struct {
	db *gorm.DB
}

func NewVenueService(db *gorm.DB) *VenueService {
	return &VenueService{
		db: db,
	}
}

func (s *VenueService) CreateVenue(req models.CreateVenueRequest) (*models.Venue, error) {
	venue := &models.Venue{
		Name:        req.Name,
		Location:    req.Location,
		Format:      req.Format,
		Surface:     req.Surface,
		Ownership:   req.Ownership,
		MatchCost:   req.MatchCost,
		Description: req.Description,
		Available:   true,
	}

	if err := s.db.Create(venue).Error; err != nil {
		return nil, err
	}

	return venue, nil
}

func (s *VenueService) GetVenueByID(id uint) (*models.Venue, error) {
	var venue models.Venue

	result := s.db.First(&venue, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, result.Error
	}

	return &venue, nil
}

// GetVenues lists venues, optionally restricted to available ones.
func (s *VenueService) GetVenues(onlyAvailable bool) ([]models.Venue, error) {
	var venues []models.Venue

	query := s.db.Order("name ASC")
	if onlyAvailable {
		query = query.Where("available = ?", true)
	}

	if err := query.Find(&venues).Error; err != nil {
		return nil, err
	}

	return venues, nil
}

func (s *VenueService) UpdateVenue(id uint, req models.UpdateVenueRequest) (*models.Venue, error) {
	venue, err := s.GetVenueByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Surface != nil {
		updates["surface"] = *req.Surface
	}
	if req.Ownership != nil {
		updates["ownership"] = *req.Ownership
	}
	if req.MatchCost != nil {
		updates["match_cost"] = *req.MatchCost
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Available != nil {
		updates["available"] = *req.Available
	}

	if len(updates) > 0 {
		if err := s.db.Model(venue).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetVenueByID(id)
}

func (s *VenueService) ToggleAvailability(id uint) (*models.Venue, error) {
	venue, err := s.GetVenueByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(venue).Update("available", !venue.Available).Error; err != nil {
		return nil, err
	}

	return s.GetVenueByID(id)
}
