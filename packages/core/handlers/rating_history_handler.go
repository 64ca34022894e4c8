package handlers

import (
	"net/http"

	"core/services"

	"github.com/gin-gonic/gin"
)

type RatingHistoryHandler struct {
	ratingHistoryService *services.RatingHistoryService
}

func NewRatingHistoryHandler(ratingHistoryService *services.RatingHistoryService) *RatingHistoryHandler {
	return &RatingHistoryHandler{
		ratingHistoryService: ratingHistoryService,
	}
}

// GetRecentRatingChanges retrieves the latest rating movements
// @Summary Get recent rating changes
// @Tags rating-history
// @Produce json
// @Param limit query int false "Number of entries to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.RatingHistory
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /rating-history/recent [get]
func (h *RatingHistoryHandler) GetRecentRatingChanges(c *gin.Context) {
	limit, ok := parseLimit(c, 10)
	if !ok {
		return
	}

	history, err := h.ratingHistoryService.GetRecentRatingChanges(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rating history"})
		return
	}

	c.JSON(http.StatusOK, history)
}
