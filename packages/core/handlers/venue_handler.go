package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type VenueHandler struct {
	venueService *services.VenueService
}

func NewVenueHandler(venueService *services.VenueService) *VenueHandler {
	return &VenueHandler{
		venueService: venueService,
	}
}

// GetVenues lists the court catalog
// @Summary Get venues
// @Tags venues
// @Produce json
// @Param available query bool false "Only available venues (default: false)"
// @Success 200 {array} models.Venue
// @Failure 500 {object} map[string]string
// @Router /venues [get]
func (h *VenueHandler) GetVenues(c *gin.Context) {
	onlyAvailable := c.DefaultQuery("available", "false") == "true"

	venues, err := h.venueService.GetVenues(onlyAvailable)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve venues"})
		return
	}

	c.JSON(http.StatusOK, venues)
}

// GetVenue retrieves a single venue
// @Summary Get venue by ID
// @Tags venues
// @Produce json
// @Param id path int true "Venue ID"
// @Success 200 {object} models.Venue
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /venues/{id} [get]
func (h *VenueHandler) GetVenue(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	venue, err := h.venueService.GetVenueByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, venue)
}

// CreateVenue adds a venue to the catalog
// @Summary Create a venue
// @Tags venues
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param venue body models.CreateVenueRequest true "Venue data"
// @Success 201 {object} models.Venue
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /venues [post]
func (h *VenueHandler) CreateVenue(c *gin.Context) {
	var req models.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	venue, err := h.venueService.CreateVenue(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create venue"})
		return
	}

	c.JSON(http.StatusCreated, venue)
}

// UpdateVenue updates a venue
// @Summary Update a venue
// @Tags venues
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Venue ID"
// @Param venue body models.UpdateVenueRequest true "Fields to update"
// @Success 200 {object} models.Venue
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /venues/{id} [patch]
func (h *VenueHandler) UpdateVenue(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	venue, err := h.venueService.UpdateVenue(id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, venue)
}

// ToggleAvailability flips a venue's availability
// @Summary Toggle venue availability
// @Tags venues
// @Security BearerAuth
// @Produce json
// @Param id path int true "Venue ID"
// @Success 200 {object} models.Venue
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /venues/{id}/availability [patch]
func (h *VenueHandler) ToggleAvailability(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	venue, err := h.venueService.ToggleAvailability(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, venue)
}
