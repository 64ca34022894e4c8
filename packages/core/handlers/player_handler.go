package handlers

import (
	"net/http"
	"strconv"
	"time"

	"core/services"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	playerService *services.PlayerService
	matchService  *services.MatchService
}

func NewPlayerHandler(playerService *services.PlayerService, matchService *services.MatchService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
		matchService:  matchService,
	}
}

// GetAllPlayers retrieves players with pagination
// @Summary Get all players
// @Description Get registered players ordered by name
// @Tags players
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 20, max: 100)" default(20)
// @Success 200 {object} models.PaginatedPlayersResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players [get]
func (h *PlayerHandler) GetAllPlayers(c *gin.Context) {
	page, perPage, ok := parsePagination(c, 20)
	if !ok {
		return
	}

	result, err := h.playerService.GetAllPlayers(page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve players"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPlayer retrieves a single player
// @Summary Get player by ID
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /players/{id} [get]
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	player, err := h.playerService.GetPlayerByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, player)
}

// GetTopPlayers retrieves the rating leaderboard
// @Summary Get top players by rating
// @Tags players
// @Produce json
// @Param limit query int false "Number of players to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.Player
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/top [get]
func (h *PlayerHandler) GetTopPlayers(c *gin.Context) {
	limit, ok := parseLimit(c, 10)
	if !ok {
		return
	}

	players, err := h.playerService.GetTopPlayersByRating(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve top players"})
		return
	}

	c.JSON(http.StatusOK, players)
}

// GetRatingHistory retrieves a player's rating changes
// @Summary Get a player's rating history
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {array} models.RatingHistory
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /players/{id}/rating-history [get]
func (h *PlayerHandler) GetRatingHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.playerService.GetPlayerByID(id); err != nil {
		respondServiceError(c, err)
		return
	}

	history, err := h.playerService.GetRatingHistoryByPlayerID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rating history"})
		return
	}

	c.JSON(http.StatusOK, history)
}

// GetPlayerMatches retrieves a player's matches
// @Summary Get a player's matches
// @Description Get the matches the player is rostered in, upcoming or past
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Param upcoming query bool false "Upcoming matches only (default: false, past matches)"
// @Success 200 {array} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /players/{id}/matches [get]
func (h *PlayerHandler) GetPlayerMatches(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.playerService.GetPlayerByID(id); err != nil {
		respondServiceError(c, err)
		return
	}

	upcoming := c.DefaultQuery("upcoming", "false") == "true"

	matches, err := h.matchService.GetPlayerMatches(id, upcoming, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve player matches"})
		return
	}

	c.JSON(http.StatusOK, matches)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}

func parseLimit(c *gin.Context, def int) (int, bool) {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(def))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return 0, false
	}
	if limit > 100 {
		limit = 100
	}
	return limit, true
}

func parsePagination(c *gin.Context, defaultPerPage int) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return 0, 0, false
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if err != nil || perPage < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid per_page parameter"})
		return 0, 0, false
	}
	if perPage > 100 {
		perPage = 100
	}

	return page, perPage, true
}
