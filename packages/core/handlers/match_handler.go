package handlers

import (
	"net/http"
	"strconv"
	"time"

	"core/models"
	"core/services"

	authMiddleware "auth/middleware"
	authModels "auth/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MatchHandler struct {
	matchService      *services.MatchService
	rosterService     *services.RosterService
	settlementService *services.SettlementService
	db                *gorm.DB
}

func NewMatchHandler(matchService *services.MatchService, rosterService *services.RosterService, settlementService *services.SettlementService, db *gorm.DB) *MatchHandler {
	return &MatchHandler{
		matchService:      matchService,
		rosterService:     rosterService,
		settlementService: settlementService,
		db:                db,
	}
}

// SearchMatches lists matches open for enrollment
// @Summary Search open matches
// @Description Get scheduled matches whose enrollment deadline has not passed
// @Tags matches
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 10, max: 100)" default(10)
// @Param format query string false "Filter by pitch format" Enums(FUTSAL,F7,F11)
// @Param level query string false "Filter by skill level" Enums(BEGINNER,INTERMEDIATE,ADVANCED,PRO)
// @Param mode query string false "Filter by mode" Enums(FRIENDLY,COMPETITIVE)
// @Param venue_id query int false "Filter by venue"
// @Param challenges query bool false "Only team challenges (true) or only open matches (false)"
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches [get]
func (h *MatchHandler) SearchMatches(c *gin.Context) {
	page, perPage, ok := parsePagination(c, 10)
	if !ok {
		return
	}

	filters := services.MatchSearchFilters{
		Format: c.Query("format"),
		Level:  c.Query("level"),
		Mode:   c.Query("mode"),
	}

	if venueIDStr := c.Query("venue_id"); venueIDStr != "" {
		venueID, err := strconv.ParseUint(venueIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid venue_id parameter"})
			return
		}
		filters.VenueID = uint(venueID)
	}

	if challengesStr := c.Query("challenges"); challengesStr != "" {
		challenges := challengesStr == "true"
		filters.TeamChallenges = &challenges
	}

	result, err := h.matchService.SearchMatches(filters, time.Now(), page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve matches"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMatch retrieves a single match
// @Summary Get match by ID
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{id} [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	match, err := h.matchService.GetMatchByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// CreateMatch creates a new match
// @Summary Create a match
// @Description Create an open match or, with a home team, a team challenge
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match body models.CreateMatchRequest true "Match data"
// @Success 201 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches [post]
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req models.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	match, err := h.matchService.CreateMatch(userID, req, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, match)
}

// CancelMatch cancels a scheduled match
// @Summary Cancel a match
// @Description Cancel a scheduled match. Creator or admin only.
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/cancel [patch]
func (h *MatchHandler) CancelMatch(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	isAdmin := authMiddleware.HasRole(h.db, userID, authModels.RoleAdmin)

	match, err := h.matchService.CancelMatch(id, userID, isAdmin)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// AssignSquads splits enrolled players into home/away squads
// @Summary Assign squads for an open match
// @Description Split already-enrolled players into the home and away squads. Creator only.
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param squads body models.AssignSquadsRequest true "Player assignment"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{id}/squads [put]
func (h *MatchHandler) AssignSquads(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.AssignSquadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	match, err := h.matchService.AssignSquads(id, userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// RecordResult settles a match with its final score
// @Summary Record a match result
// @Description Record the final score and settle the match: counters, ratings and state. Creator only, single-shot.
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param result body models.RecordResultRequest true "Final score"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/result [post]
func (h *MatchHandler) RecordResult(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.RecordResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	match, err := h.settlementService.SettleMatch(id, req.HomeGoals, req.AwayGoals, userID, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// RequestEnrollment asks to join an open match
// @Summary Request enrollment
// @Description Ask to join an open match. The caller takes a roster slot until the request is decided.
// @Tags enrollments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 201 {object} models.Enrollment
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/enrollments [post]
func (h *MatchHandler) RequestEnrollment(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	enrollment, err := h.rosterService.RequestPlayerEnrollment(id, userID, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

// GetEnrollments lists a match's enrollment requests
// @Summary Get match enrollments
// @Description List the match's enrollment requests. Creator only.
// @Tags enrollments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {array} models.Enrollment
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{id}/enrollments [get]
func (h *MatchHandler) GetEnrollments(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	enrollments, err := h.rosterService.GetMatchEnrollments(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

// AcceptEnrollment accepts a pending enrollment request
// @Summary Accept an enrollment request
// @Description Accept a pending request. If the match filled up in the meantime the request is rejected instead.
// @Tags enrollments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Param enrollmentId path int true "Enrollment ID"
// @Success 200 {object} models.Enrollment
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/enrollments/{enrollmentId}/accept [patch]
func (h *MatchHandler) AcceptEnrollment(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	enrollmentID, ok := parseIDParam(c, "enrollmentId")
	if !ok {
		return
	}

	enrollment, err := h.rosterService.AcceptPlayerEnrollment(id, enrollmentID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollment)
}

// RejectEnrollment rejects a pending enrollment request
// @Summary Reject an enrollment request
// @Tags enrollments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Param enrollmentId path int true "Enrollment ID"
// @Success 200 {object} models.Enrollment
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/enrollments/{enrollmentId}/reject [patch]
func (h *MatchHandler) RejectEnrollment(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	enrollmentID, ok := parseIDParam(c, "enrollmentId")
	if !ok {
		return
	}

	enrollment, err := h.rosterService.RejectPlayerEnrollment(id, enrollmentID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollment)
}

// RequestChallenge registers a team as a candidate rival
// @Summary Request a team challenge
// @Description Offer the caller's permanent team as the away side of a challenge match. Captain only.
// @Tags enrollments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param challenge body models.RequestTeamChallengeRequest true "Challenging team"
// @Success 201 {object} models.Enrollment
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/challenges [post]
func (h *MatchHandler) RequestChallenge(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.RequestTeamChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	enrollment, err := h.rosterService.RequestTeamChallenge(id, req.TeamID, userID, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

// AcceptChallenge picks the rival team for a challenge match
// @Summary Accept a team challenge request
// @Description Accept one candidate rival. All other pending requests are rejected in the same step.
// @Tags enrollments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Param enrollmentId path int true "Enrollment ID"
// @Success 200 {object} models.Enrollment
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/challenges/{enrollmentId}/accept [patch]
func (h *MatchHandler) AcceptChallenge(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	enrollmentID, ok := parseIDParam(c, "enrollmentId")
	if !ok {
		return
	}

	enrollment, err := h.rosterService.AcceptTeamChallenge(id, enrollmentID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollment)
}
