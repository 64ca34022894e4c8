package core

import (
	"log"

	"core/cron"
	"core/handlers"
	"core/services"

	authMiddleware "auth/middleware"
	authModels "auth/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	PlayerHandler        *handlers.PlayerHandler
	PlayerService        *services.PlayerService
	VenueHandler         *handlers.VenueHandler
	VenueService         *services.VenueService
	TeamHandler          *handlers.TeamHandler
	TeamService          *services.TeamService
	MatchHandler         *handlers.MatchHandler
	MatchService         *services.MatchService
	RosterService        *services.RosterService
	SettlementService    *services.SettlementService
	RatingHistoryHandler *handlers.RatingHistoryHandler
	RatingHistoryService *services.RatingHistoryService
	StatsHandler         *handlers.StatsHandler
	StatsService         *services.StatsService
	AgentHandler         *handlers.AgentHandler
	HousekeepingService  *services.HousekeepingService
	Scheduler            *cron.Scheduler
	db                   *gorm.DB
}

func NewModule(db *gorm.DB) *Module {
	playerService := services.NewPlayerService(db)
	venueService := services.NewVenueService(db)
	teamService := services.NewTeamService(db)
	matchService := services.NewMatchService(db)
	rosterService := services.NewRosterService(db)
	settlementService := services.NewSettlementService(db)
	ratingHistoryService := services.NewRatingHistoryService(db)
	statsService := services.NewStatsService(db)

	playerHandler := handlers.NewPlayerHandler(playerService, matchService)
	venueHandler := handlers.NewVenueHandler(venueService)
	teamHandler := handlers.NewTeamHandler(teamService)
	matchHandler := handlers.NewMatchHandler(matchService, rosterService, settlementService, db)
	ratingHistoryHandler := handlers.NewRatingHistoryHandler(ratingHistoryService)
	statsHandler := handlers.NewStatsHandler(statsService)
	agentHandler := handlers.NewAgentHandler()

	housekeepingService := services.NewHousekeepingService(db)
	scheduler := cron.NewScheduler(housekeepingService)

	return &Module{
		PlayerHandler:        playerHandler,
		PlayerService:        playerService,
		VenueHandler:         venueHandler,
		VenueService:         venueService,
		TeamHandler:          teamHandler,
		TeamService:          teamService,
		MatchHandler:         matchHandler,
		MatchService:         matchService,
		RosterService:        rosterService,
		SettlementService:    settlementService,
		RatingHistoryHandler: ratingHistoryHandler,
		RatingHistoryService: ratingHistoryService,
		StatsHandler:         statsHandler,
		StatsService:         statsService,
		AgentHandler:         agentHandler,
		HousekeepingService:  housekeepingService,
		Scheduler:            scheduler,
		db:                   db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	players := r.Group("/players")
	{
		players.GET("", m.PlayerHandler.GetAllPlayers)
		players.GET("/top", authMiddleware.OptionalJWTMiddleware(), m.PlayerHandler.GetTopPlayers)
		players.GET("/:id", m.PlayerHandler.GetPlayer)
		players.GET("/:id/rating-history", m.PlayerHandler.GetRatingHistory)
		players.GET("/:id/matches", m.PlayerHandler.GetPlayerMatches)
	}

	venues := r.Group("/venues")
	{
		venues.GET("", m.VenueHandler.GetVenues)
		venues.GET("/:id", m.VenueHandler.GetVenue)
		venues.POST("", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.VenueHandler.CreateVenue)
		venues.PATCH("/:id", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.VenueHandler.UpdateVenue)
		venues.PATCH("/:id/availability", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.VenueHandler.ToggleAvailability)
	}

	teams := r.Group("/teams")
	{
		teams.GET("/:id", m.TeamHandler.GetTeam)
		teams.GET("/mine", authMiddleware.JWTMiddleware(), m.TeamHandler.GetMyTeams)
		teams.POST("", authMiddleware.JWTMiddleware(), m.TeamHandler.CreateTeam)
		teams.PATCH("/:id", authMiddleware.JWTMiddleware(), m.TeamHandler.UpdateTeam)
		teams.DELETE("/:id", authMiddleware.JWTMiddleware(), m.TeamHandler.DeleteTeam)
		teams.POST("/:id/leave", authMiddleware.JWTMiddleware(), m.TeamHandler.LeaveTeam)
		teams.DELETE("/:id/members/:playerId", authMiddleware.JWTMiddleware(), m.TeamHandler.RemoveMember)
		teams.POST("/:id/invitations", authMiddleware.JWTMiddleware(), m.TeamHandler.InviteMember)
		teams.GET("/invitations", authMiddleware.JWTMiddleware(), m.TeamHandler.GetMyInvitations)
		teams.PATCH("/invitations/:id", authMiddleware.JWTMiddleware(), m.TeamHandler.RespondInvitation)
		teams.PATCH("/:id/active", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.TeamHandler.SetTeamActive)
	}

	matches := r.Group("/matches")
	{
		matches.GET("", m.MatchHandler.SearchMatches)
		matches.GET("/:id", m.MatchHandler.GetMatch)
		matches.POST("", authMiddleware.JWTMiddleware(), m.MatchHandler.CreateMatch)
		matches.PATCH("/:id/cancel", authMiddleware.JWTMiddleware(), m.MatchHandler.CancelMatch)
		matches.PUT("/:id/squads", authMiddleware.JWTMiddleware(), m.MatchHandler.AssignSquads)
		matches.POST("/:id/result", authMiddleware.JWTMiddleware(), m.MatchHandler.RecordResult)
		matches.POST("/:id/enrollments", authMiddleware.JWTMiddleware(), m.MatchHandler.RequestEnrollment)
		matches.GET("/:id/enrollments", authMiddleware.JWTMiddleware(), m.MatchHandler.GetEnrollments)
		matches.PATCH("/:id/enrollments/:enrollmentId/accept", authMiddleware.JWTMiddleware(), m.MatchHandler.AcceptEnrollment)
		matches.PATCH("/:id/enrollments/:enrollmentId/reject", authMiddleware.JWTMiddleware(), m.MatchHandler.RejectEnrollment)
		matches.POST("/:id/challenges", authMiddleware.JWTMiddleware(), m.MatchHandler.RequestChallenge)
		matches.PATCH("/:id/challenges/:enrollmentId/accept", authMiddleware.JWTMiddleware(), m.MatchHandler.AcceptChallenge)
	}

	ratingHistory := r.Group("/rating-history")
	{
		ratingHistory.GET("/recent", m.RatingHistoryHandler.GetRecentRatingChanges)
	}

	r.GET("/stats", m.StatsHandler.GetStats)

	r.POST("/agent/ask", authMiddleware.JWTMiddleware(), m.AgentHandler.Ask)
}

// StartScheduler starts the cron scheduler for enrollment housekeeping
func (m *Module) StartScheduler() error {
	log.Println("Starting core module scheduler...")
	return m.Scheduler.Start()
}

// StopScheduler stops the cron scheduler
func (m *Module) StopScheduler() {
	log.Println("Stopping core module scheduler...")
	m.Scheduler.Stop()
}

// RunHousekeepingNow manually triggers the housekeeping job (useful for testing)
func (m *Module) RunHousekeepingNow() {
	log.Println("Manually triggering enrollment housekeeping...")
	m.Scheduler.RunNow()
}
