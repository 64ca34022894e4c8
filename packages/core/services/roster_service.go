package services

import (
	"errors"
	"time"

	"core/models"

	"gorm.io/gorm"
)

// RosterService answers "can X enroll now?" and mutates the enrollment set.
// Player enrollments are optimistic: the player takes a roster slot at
// request time and gives it back on rejection.
type RosterService struct {
	db *gorm.DB
}

func NewRosterService(db *gorm.DB) *RosterService {
	return &RosterService{
		db: db,
	}
}

// IsEnrollmentOpen reports whether the match accepts new enrollments at the
// given instant. Requires HomeTeam and Players to be preloaded.
func (s *RosterService) IsEnrollmentOpen(match *models.Match, now time.Time) bool {
	if match.State != models.MatchScheduled {
		return false
	}
	if !now.Before(match.EffectiveDeadline()) {
		return false
	}
	if match.IsTeamChallenge() {
		return match.AwayTeamID == nil
	}
	return len(match.Players) < match.Capacity
}

// RequestPlayerEnrollment creates a PENDING request for an open match and
// immediately puts the player on the roster.
func (s *RosterService) RequestPlayerEnrollment(matchID, playerID uint, now time.Time) (*models.Enrollment, error) {
	match, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}

	var player models.Player
	if err := s.db.First(&player, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	// Closed covers state, deadline and kind. A full roster is a distinct
	// outcome, reported after the duplicate check.
	if match.IsTeamChallenge() {
		return nil, ErrClosedForEnrollment
	}
	if match.State != models.MatchScheduled || !now.Before(match.EffectiveDeadline()) {
		return nil, ErrClosedForEnrollment
	}

	var existing int64
	err = s.db.Model(&models.Enrollment{}).
		Where("match_id = ? AND player_id = ? AND kind = ? AND state IN ?",
			matchID, playerID, models.EnrollmentPlayer,
			[]string{models.EnrollmentPending, models.EnrollmentAccepted}).
		Count(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyEnrolled
	}

	if len(match.Players) >= match.Capacity {
		return nil, ErrMatchFull
	}

	enrollment := &models.Enrollment{
		Kind:     models.EnrollmentPlayer,
		MatchID:  matchID,
		PlayerID: &playerID,
		State:    models.EnrollmentPending,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(enrollment).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Model(match).Association("Players").Append(&player); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return enrollment, nil
}

// AcceptPlayerEnrollment confirms a pending request. Capacity is re-counted
// inside the transaction; if the match filled up in the meantime the request
// is rejected instead, the slot is released and ErrMatchFull is returned.
func (s *RosterService) AcceptPlayerEnrollment(matchID, enrollmentID, approverID uint) (*models.Enrollment, error) {
	match, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}
	if match.CreatorID != approverID {
		return nil, ErrUnauthorized
	}

	enrollment, err := s.playerEnrollment(matchID, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.State != models.EnrollmentPending {
		return nil, ErrAlreadyResolved
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Pending players already hold roster slots, so the confirmed headcount
	// is the roster minus the requests still awaiting a decision.
	var rostered int64
	if err := tx.Table("match_players").Where("match_id = ?", matchID).Count(&rostered).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	var pending int64
	err = tx.Model(&models.Enrollment{}).
		Where("match_id = ? AND kind = ? AND state = ?", matchID, models.EnrollmentPlayer, models.EnrollmentPending).
		Count(&pending).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if rostered-pending >= int64(match.Capacity) {
		if err := s.rejectInTx(tx, match, enrollment); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
		return nil, ErrMatchFull
	}

	if err := tx.Model(enrollment).Update("state", models.EnrollmentAccepted).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	enrollment.State = models.EnrollmentAccepted
	return enrollment, nil
}

// RejectPlayerEnrollment declines a pending request and frees its roster
// slot. The creator cannot reject their own request through this path.
func (s *RosterService) RejectPlayerEnrollment(matchID, enrollmentID, approverID uint) (*models.Enrollment, error) {
	match, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}
	if match.CreatorID != approverID {
		return nil, ErrUnauthorized
	}

	enrollment, err := s.playerEnrollment(matchID, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.PlayerID != nil && *enrollment.PlayerID == approverID {
		return nil, ErrSelfRejection
	}
	if enrollment.State != models.EnrollmentPending {
		return nil, ErrAlreadyResolved
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := s.rejectInTx(tx, match, enrollment); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	enrollment.State = models.EnrollmentRejected
	return enrollment, nil
}

// RequestTeamChallenge registers a permanent team as a candidate rival for a
// challenge match still waiting for its away side.
func (s *RosterService) RequestTeamChallenge(matchID, teamID, captainID uint, now time.Time) (*models.Enrollment, error) {
	match, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}

	if !match.IsAwaitingRival() || !s.IsEnrollmentOpen(match, now) {
		return nil, ErrClosedForEnrollment
	}

	var team models.Team
	if err := s.db.First(&team, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if team.Kind != models.TeamPermanent || !team.Active {
		return nil, ErrTeamNotFound
	}
	if team.CaptainID != captainID {
		return nil, ErrUnauthorized
	}
	if match.HomeTeamID != nil && *match.HomeTeamID == teamID {
		return nil, ErrDuplicateRequest
	}

	var existing int64
	err = s.db.Model(&models.Enrollment{}).
		Where("match_id = ? AND team_id = ? AND kind = ? AND state IN ?",
			matchID, teamID, models.EnrollmentTeam,
			[]string{models.EnrollmentPending, models.EnrollmentAccepted}).
		Count(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrDuplicateRequest
	}

	enrollment := &models.Enrollment{
		Kind:    models.EnrollmentTeam,
		MatchID: matchID,
		TeamID:  &teamID,
		State:   models.EnrollmentPending,
	}

	if err := s.db.Create(enrollment).Error; err != nil {
		return nil, err
	}

	return enrollment, nil
}

// AcceptTeamChallenge picks the rival: sets the away team, pulls its members
// onto the roster, accepts the chosen request and rejects every other
// pending one, all in a single transaction.
func (s *RosterService) AcceptTeamChallenge(matchID, enrollmentID, approverID uint) (*models.Enrollment, error) {
	match, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}
	if match.CreatorID != approverID {
		return nil, ErrUnauthorized
	}
	if match.AwayTeamID != nil {
		return nil, ErrAlreadyResolved
	}

	var enrollment models.Enrollment
	err = s.db.Where("id = ? AND match_id = ? AND kind = ?", enrollmentID, matchID, models.EnrollmentTeam).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	if enrollment.State != models.EnrollmentPending || enrollment.TeamID == nil {
		return nil, ErrAlreadyResolved
	}

	var team models.Team
	if err := s.db.Preload("Members").First(&team, *enrollment.TeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&models.Match{}).Where("id = ?", matchID).
		Update("away_team_id", team.ID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if len(team.Members) > 0 {
		if err := tx.Model(match).Association("Players").Append(team.Members); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Model(&enrollment).Update("state", models.EnrollmentAccepted).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Single-winner semantics: all competing requests close with this one.
	err = tx.Model(&models.Enrollment{}).
		Where("match_id = ? AND kind = ? AND state = ? AND id != ?",
			matchID, models.EnrollmentTeam, models.EnrollmentPending, enrollment.ID).
		Update("state", models.EnrollmentRejected).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	enrollment.State = models.EnrollmentAccepted
	return &enrollment, nil
}

// GetMatchEnrollments lists a match's requests, newest first. Creator only.
func (s *RosterService) GetMatchEnrollments(matchID, callerID uint) ([]models.Enrollment, error) {
	match, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}
	if match.CreatorID != callerID {
		return nil, ErrUnauthorized
	}

	var enrollments []models.Enrollment
	err = s.db.Where("match_id = ?", matchID).
		Preload("Player").
		Preload("Team").
		Order("created_at DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}

	return enrollments, nil
}

func (s *RosterService) loadMatch(matchID uint) (*models.Match, error) {
	var match models.Match

	result := s.db.
		Preload("HomeTeam").
		Preload("Players").
		First(&match, matchID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, result.Error
	}

	return &match, nil
}

func (s *RosterService) playerEnrollment(matchID, enrollmentID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment

	err := s.db.Where("id = ? AND match_id = ? AND kind = ?", enrollmentID, matchID, models.EnrollmentPlayer).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}

	return &enrollment, nil
}

// rejectInTx marks the request rejected and releases its roster slot.
func (s *RosterService) rejectInTx(tx *gorm.DB, match *models.Match, enrollment *models.Enrollment) error {
	if err := tx.Model(enrollment).Update("state", models.EnrollmentRejected).Error; err != nil {
		return err
	}
	if enrollment.PlayerID != nil {
		player := models.Player{ID: *enrollment.PlayerID}
		if err := tx.Model(match).Association("Players").Delete(&player); err != nil {
			return err
		}
	}
	return nil
}
