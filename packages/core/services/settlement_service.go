package services

import (
	"errors"
	"strings"
	"time"

	"core/models"
	"core/utils"

	"gorm.io/gorm"
)

// SettlementService records final scores and propagates their consequences:
// counters, ratings, rating history and the FINISHED state, all in one
// transaction.
type SettlementService struct {
	db *gorm.DB
}

func NewSettlementService(db *gorm.DB) *SettlementService {
	return &SettlementService{
		db: db,
	}
}

// SettleMatch finalizes a match. Settlement is single-shot: a FINISHED match
// cannot be settled again and a CANCELLED match cannot be settled at all.
// Ratings move only for competitive matches with both squads assigned.
func (s *SettlementService) SettleMatch(matchID uint, homeGoals, awayGoals int, callerID uint, now time.Time) (*models.Match, error) {
	match, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}

	if match.CreatorID != callerID {
		return nil, ErrUnauthorized
	}
	switch match.State {
	case models.MatchFinished:
		return nil, ErrAlreadyFinished
	case models.MatchCancelled:
		return nil, ErrMatchCancelled
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := s.upsertResult(tx, match, homeGoals, awayGoals, now); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := s.bumpTeamCounters(tx, match.HomeTeam, homeGoals, awayGoals); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.bumpTeamCounters(tx, match.AwayTeam, awayGoals, homeGoals); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := s.bumpPlayerCounters(tx, match, homeGoals, awayGoals); err != nil {
		tx.Rollback()
		return nil, err
	}

	ratingApplied := match.RatingApplied
	if match.Mode == models.ModeCompetitive && !match.RatingApplied &&
		match.HomeTeam != nil && match.AwayTeam != nil {
		if err := s.applyRatings(tx, match, homeGoals, awayGoals); err != nil {
			tx.Rollback()
			return nil, err
		}
		ratingApplied = true
	}

	err = tx.Model(&models.Match{}).Where("id = ?", match.ID).
		Updates(map[string]interface{}{
			"state":          models.MatchFinished,
			"rating_applied": ratingApplied,
		}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.loadMatch(match.ID)
}

// upsertResult stores the final score, replacing any prior draft for this
// match.
func (s *SettlementService) upsertResult(tx *gorm.DB, match *models.Match, homeGoals, awayGoals int, now time.Time) error {
	if match.Result != nil {
		return tx.Model(match.Result).Updates(map[string]interface{}{
			"home_goals":  homeGoals,
			"away_goals":  awayGoals,
			"recorded_at": now,
		}).Error
	}

	result := &models.Result{
		MatchID:    match.ID,
		HomeGoals:  homeGoals,
		AwayGoals:  awayGoals,
		RecordedAt: now,
	}
	return tx.Create(result).Error
}

// bumpTeamCounters updates a permanent team's record: every settled match
// counts as played, only outscoring the rival counts as a win.
func (s *SettlementService) bumpTeamCounters(tx *gorm.DB, team *models.Team, goalsFor, goalsAgainst int) error {
	if team == nil || team.Kind != models.TeamPermanent {
		return nil
	}

	updates := map[string]interface{}{
		"matches_played": gorm.Expr("matches_played + 1"),
	}
	if goalsFor > goalsAgainst {
		updates["wins"] = gorm.Expr("wins + 1")
	}

	return tx.Model(&models.Team{}).Where("id = ?", team.ID).Updates(updates).Error
}

// bumpPlayerCounters increments per-player records for everyone on the
// roster. Side attribution goes through squad membership; rostered players
// on neither squad only gain a played match.
func (s *SettlementService) bumpPlayerCounters(tx *gorm.DB, match *models.Match, homeGoals, awayGoals int) error {
	if len(match.Players) == 0 {
		return nil
	}

	homeSide := memberSet(match.HomeTeam)
	awaySide := memberSet(match.AwayTeam)

	rosterIDs := make([]uint, 0, len(match.Players))
	var homeIDs, awayIDs []uint
	for _, p := range match.Players {
		rosterIDs = append(rosterIDs, p.ID)
		if homeSide[p.ID] {
			homeIDs = append(homeIDs, p.ID)
		} else if awaySide[p.ID] {
			awayIDs = append(awayIDs, p.ID)
		}
	}

	err := tx.Model(&models.Player{}).Where("id IN ?", rosterIDs).
		UpdateColumn("matches_played", gorm.Expr("matches_played + 1")).Error
	if err != nil {
		return err
	}

	var homeColumn, awayColumn string
	switch {
	case homeGoals > awayGoals:
		homeColumn, awayColumn = "wins", "losses"
	case homeGoals < awayGoals:
		homeColumn, awayColumn = "losses", "wins"
	default:
		homeColumn, awayColumn = "draws", "draws"
	}

	if len(homeIDs) > 0 {
		err := tx.Model(&models.Player{}).Where("id IN ?", homeIDs).
			UpdateColumn(homeColumn, gorm.Expr(homeColumn+" + 1")).Error
		if err != nil {
			return err
		}
	}
	if len(awayIDs) > 0 {
		err := tx.Model(&models.Player{}).Where("id IN ?", awayIDs).
			UpdateColumn(awayColumn, gorm.Expr(awayColumn+" + 1")).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// applyRatings runs the ELO update for both squads: one batched rating
// UPDATE plus one batched history insert, never a write per player.
func (s *SettlementService) applyRatings(tx *gorm.DB, match *models.Match, homeGoals, awayGoals int) error {
	homeAvg := utils.TeamAverageRating(match.HomeTeam.Members)
	awayAvg := utils.TeamAverageRating(match.AwayTeam.Members)

	actualHome := utils.MatchScore(homeGoals, awayGoals)
	actualAway := 1.0 - actualHome
	expectedHome := utils.ExpectedScore(homeAvg, awayAvg)
	expectedAway := 1.0 - expectedHome

	homeDelta := utils.RatingDelta(actualHome, expectedHome)
	awayDelta := utils.RatingDelta(actualAway, expectedAway)

	ids := make([]uint, 0, len(match.HomeTeam.Members)+len(match.AwayTeam.Members))
	histories := make([]models.RatingHistory, 0, cap(ids))
	var cases strings.Builder
	var args []interface{}

	appendSide := func(members []models.Player, delta float64) {
		for _, p := range members {
			after := p.Rating + delta
			ids = append(ids, p.ID)
			cases.WriteString(" WHEN ? THEN ?")
			args = append(args, p.ID, after)
			histories = append(histories, models.RatingHistory{
				PlayerID:     p.ID,
				MatchID:      match.ID,
				RatingBefore: p.Rating,
				RatingAfter:  after,
			})
		}
	}
	appendSide(match.HomeTeam.Members, homeDelta)
	appendSide(match.AwayTeam.Members, awayDelta)

	if len(ids) == 0 {
		return nil
	}

	args = append(args, ids)
	sql := "UPDATE players SET rating = CASE id" + cases.String() + " END WHERE id IN ?"
	if err := tx.Exec(sql, args...).Error; err != nil {
		return err
	}

	return tx.Create(&histories).Error
}

func (s *SettlementService) loadMatch(matchID uint) (*models.Match, error) {
	var match models.Match

	result := s.db.
		Preload("Venue").
		Preload("HomeTeam").
		Preload("HomeTeam.Members").
		Preload("AwayTeam").
		Preload("AwayTeam.Members").
		Preload("Players").
		Preload("Result").
		First(&match, matchID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, result.Error
	}

	return &match, nil
}

func memberSet(team *models.Team) map[uint]bool {
	set := make(map[uint]bool)
	if team == nil {
		return set
	}
	for _, p := range team.Members {
		set[p.ID] = true
	}
	return set
}
