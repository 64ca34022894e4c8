package services

import (
	"errors"
	"fmt"
	"time"

	"core/models"

	"gorm.io/gorm"
)

// formatCapacity maps a pitch format to the fixed roster size used for team
// challenges (both squads included).
var formatCapacity = map[string]int{
	models.FormatFutsal: 10,
	models.FormatSeven:  14,
	models.FormatEleven: 22,
}

type MatchService struct {
	db *gorm.DB
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{
		db: db,
	}
}

// CreateMatch validates and persists a new match. Team challenges (a home
// team is given) take their capacity from the pitch format; open matches take
// it from the request. The creator, or the home team's members, are seeded
// into the roster immediately.
func (s *MatchService) CreateMatch(creatorID uint, req models.CreateMatchRequest, now time.Time) (*models.Match, error) {
	var creator models.Player
	if err := s.db.First(&creator, creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	if !req.StartTime.After(now) {
		return nil, ErrInvalidSchedule
	}
	if req.EnrollmentDeadline != nil {
		if !req.EnrollmentDeadline.After(now) || req.EnrollmentDeadline.After(req.StartTime) {
			return nil, ErrInvalidSchedule
		}
	} else if !req.StartTime.Add(-models.MatchDuration).After(now) {
		return nil, ErrInvalidSchedule
	}

	var venue models.Venue
	if err := s.db.First(&venue, req.VenueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	if !venue.Available {
		return nil, ErrVenueNotFound
	}

	var overlapping int64
	err := s.db.Model(&models.Match{}).
		Where("venue_id = ? AND state = ?", venue.ID, models.MatchScheduled).
		Where("start_time BETWEEN ? AND ?",
			req.StartTime.Add(-models.MatchDuration),
			req.StartTime.Add(models.MatchDuration)).
		Count(&overlapping).Error
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, ErrVenueConflict
	}

	var homeTeam *models.Team
	capacity := req.Capacity
	if req.HomeTeamID != nil {
		var team models.Team
		if err := s.db.Preload("Members").First(&team, *req.HomeTeamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, err
		}
		if team.Kind != models.TeamPermanent || !team.Active {
			return nil, ErrTeamNotFound
		}
		if team.CaptainID != creatorID {
			return nil, ErrUnauthorized
		}
		homeTeam = &team
		capacity = formatCapacity[req.Format]
	} else if capacity < 2 {
		return nil, ErrInvalidCapacity
	}

	cost := req.Cost
	payment := req.PaymentMethod
	if cost == 0 {
		payment = models.PaymentFree
	} else {
		if payment == models.PaymentFree {
			return nil, ErrPaymentMismatch
		}
		if payment == "" {
			payment = models.PaymentCash
		}
	}

	mode := req.Mode
	if mode == "" {
		mode = models.ModeFriendly
	}

	match := &models.Match{
		StartTime:          req.StartTime,
		EnrollmentDeadline: req.EnrollmentDeadline,
		VenueID:            venue.ID,
		Format:             req.Format,
		Level:              req.Level,
		Mode:               mode,
		Capacity:           capacity,
		Cost:               cost,
		PaymentMethod:      payment,
		CreatorID:          creatorID,
		State:              models.MatchScheduled,
		Comments:           req.Comments,
	}
	if homeTeam != nil {
		match.HomeTeamID = &homeTeam.ID
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(match).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if homeTeam != nil {
		if len(homeTeam.Members) > 0 {
			if err := tx.Model(match).Association("Players").Append(homeTeam.Members); err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	} else {
		if err := tx.Model(match).Association("Players").Append(&creator); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetMatchByID(match.ID)
}

func (s *MatchService) GetMatchByID(id uint) (*models.Match, error) {
	var match models.Match

	result := s.db.
		Preload("Venue").
		Preload("Creator").
		Preload("HomeTeam").
		Preload("HomeTeam.Members").
		Preload("AwayTeam").
		Preload("AwayTeam.Members").
		Preload("Players").
		Preload("Result").
		First(&match, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, result.Error
	}

	return &match, nil
}

type MatchSearchFilters struct {
	Format         string
	Level          string
	Mode           string
	VenueID        uint
	TeamChallenges *bool
}

// SearchMatches lists matches still open for enrollment: scheduled, with an
// effective deadline in the future.
func (s *MatchService) SearchMatches(filters MatchSearchFilters, now time.Time, page, pageSize int) (*models.PaginatedMatchResponse, error) {
	query := s.db.Model(&models.Match{}).
		Where("state = ?", models.MatchScheduled).
		Where("(enrollment_deadline IS NOT NULL AND enrollment_deadline > ?) OR (enrollment_deadline IS NULL AND start_time > ?)",
			now, now.Add(models.MatchDuration))

	if filters.Format != "" {
		query = query.Where("format = ?", filters.Format)
	}
	if filters.Level != "" {
		query = query.Where("level = ?", filters.Level)
	}
	if filters.Mode != "" {
		query = query.Where("mode = ?", filters.Mode)
	}
	if filters.VenueID != 0 {
		query = query.Where("venue_id = ?", filters.VenueID)
	}
	if filters.TeamChallenges != nil {
		if *filters.TeamChallenges {
			query = query.Where("home_team_id IS NOT NULL")
		} else {
			query = query.Where("home_team_id IS NULL")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var matches []models.Match
	offset := (page - 1) * pageSize

	err := query.Order("start_time ASC").
		Offset(offset).
		Limit(pageSize).
		Preload("Venue").
		Preload("HomeTeam").
		Preload("Players").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedMatchResponse{
		Data:       matches,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// GetPlayerMatches lists the matches the player is rostered in, split into
// upcoming and past by kickoff time.
func (s *MatchService) GetPlayerMatches(playerID uint, upcoming bool, now time.Time) ([]models.Match, error) {
	var matches []models.Match

	query := s.db.
		Joins("JOIN match_players ON match_players.match_id = matches.id").
		Where("match_players.player_id = ?", playerID).
		Preload("Venue").
		Preload("Result")

	if upcoming {
		query = query.Where("matches.state = ? AND matches.start_time > ?", models.MatchScheduled, now).
			Order("matches.start_time ASC")
	} else {
		query = query.Where("matches.state != ? OR matches.start_time <= ?", models.MatchScheduled, now).
			Order("matches.start_time DESC")
	}

	if err := query.Find(&matches).Error; err != nil {
		return nil, err
	}

	return matches, nil
}

// AssignSquads splits already-enrolled players of an open match into two
// match-scoped squads and links them as home/away. Re-running it replaces the
// previous assignment.
func (s *MatchService) AssignSquads(matchID, creatorID uint, req models.AssignSquadsRequest) (*models.Match, error) {
	match, err := s.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}

	if match.CreatorID != creatorID {
		return nil, ErrUnauthorized
	}
	if match.State != models.MatchScheduled {
		return nil, ErrMatchNotScheduled
	}
	if match.IsTeamChallenge() {
		return nil, ErrNotOpenMatch
	}

	roster := make(map[uint]models.Player, len(match.Players))
	for _, p := range match.Players {
		roster[p.ID] = p
	}

	homeMembers, err := pickFromRoster(roster, req.HomePlayerIDs)
	if err != nil {
		return nil, err
	}
	awayMembers, err := pickFromRoster(roster, req.AwayPlayerIDs)
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	homeTeam, err := s.upsertSquad(tx, match, match.HomeTeam, fmt.Sprintf("Match %d home squad", match.ID), homeMembers)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	awayTeam, err := s.upsertSquad(tx, match, match.AwayTeam, fmt.Sprintf("Match %d away squad", match.ID), awayMembers)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	updates := map[string]interface{}{
		"home_team_id": homeTeam.ID,
		"away_team_id": awayTeam.ID,
	}
	if err := tx.Model(&models.Match{}).Where("id = ?", match.ID).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetMatchByID(match.ID)
}

// upsertSquad reuses the previous match-scoped squad when one exists,
// otherwise creates a new one owned by the match.
func (s *MatchService) upsertSquad(tx *gorm.DB, match *models.Match, existing *models.Team, name string, members []models.Player) (*models.Team, error) {
	if existing != nil && existing.Kind == models.TeamMatchScoped {
		if err := tx.Model(existing).Association("Members").Replace(members); err != nil {
			return nil, err
		}
		return existing, nil
	}

	team := &models.Team{
		Name:      name,
		CaptainID: match.CreatorID,
		Kind:      models.TeamMatchScoped,
		Active:    true,
		MatchID:   &match.ID,
	}
	if err := tx.Create(team).Error; err != nil {
		return nil, err
	}
	if len(members) > 0 {
		if err := tx.Model(team).Association("Members").Append(members); err != nil {
			return nil, err
		}
	}

	return team, nil
}

func pickFromRoster(roster map[uint]models.Player, ids []uint) ([]models.Player, error) {
	members := make([]models.Player, 0, len(ids))
	for _, id := range ids {
		player, ok := roster[id]
		if !ok {
			return nil, ErrForeignPlayer
		}
		members = append(members, player)
	}
	return members, nil
}

// CancelMatch moves a scheduled match to CANCELLED. Creator or admin only.
// Cancelled matches block all further mutation.
func (s *MatchService) CancelMatch(matchID, callerID uint, isAdmin bool) (*models.Match, error) {
	match, err := s.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}

	if match.CreatorID != callerID && !isAdmin {
		return nil, ErrUnauthorized
	}
	switch match.State {
	case models.MatchFinished:
		return nil, ErrAlreadyFinished
	case models.MatchCancelled:
		return nil, ErrMatchCancelled
	}

	if err := s.db.Model(&models.Match{}).Where("id = ?", match.ID).
		Update("state", models.MatchCancelled).Error; err != nil {
		return nil, err
	}

	return s.GetMatchByID(match.ID)
}
