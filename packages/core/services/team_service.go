package services

import (
	"errors"
	"time"

	"core/models"

	"gorm.io/gorm"
)

type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{
		db: db,
	}
}

// CreatePermanentTeam creates a standing club captained by captainID. The
// captain is always a member of their own team.
func (s *TeamService) CreatePermanentTeam(captainID uint, req models.CreateTeamRequest) (*models.Team, error) {
	var captain models.Player
	if err := s.db.First(&captain, captainID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	team := &models.Team{
		Name:        req.Name,
		CaptainID:   captainID,
		Kind:        models.TeamPermanent,
		Active:      true,
		Description: req.Description,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(team).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Model(team).Association("Members").Append(&captain); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetTeamByID(team.ID)
}

func (s *TeamService) GetTeamByID(id uint) (*models.Team, error) {
	var team models.Team

	result := s.db.Preload("Captain").Preload("Members").First(&team, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, result.Error
	}

	return &team, nil
}

// GetPermanentTeamByID resolves an active permanent team, the only kind that
// can issue or receive challenges.
func (s *TeamService) GetPermanentTeamByID(id uint) (*models.Team, error) {
	team, err := s.GetTeamByID(id)
	if err != nil {
		return nil, err
	}
	if team.Kind != models.TeamPermanent || !team.Active {
		return nil, ErrTeamNotFound
	}
	return team, nil
}

// GetTeamsForPlayer lists the active permanent teams the player captains or
// plays in.
func (s *TeamService) GetTeamsForPlayer(playerID uint) ([]models.Team, error) {
	var teams []models.Team

	result := s.db.
		Joins("LEFT JOIN team_members ON team_members.team_id = teams.id").
		Where("teams.kind = ? AND teams.active = ?", models.TeamPermanent, true).
		Where("teams.captain_id = ? OR team_members.player_id = ?", playerID, playerID).
		Distinct("teams.*").
		Preload("Captain").Preload("Members").
		Order("teams.created_at DESC").
		Find(&teams)

	if result.Error != nil {
		return nil, result.Error
	}

	return teams, nil
}

func (s *TeamService) GetTeamsByCaptain(captainID uint) ([]models.Team, error) {
	var teams []models.Team

	result := s.db.
		Where("captain_id = ? AND kind = ? AND active = ?", captainID, models.TeamPermanent, true).
		Preload("Members").
		Order("name ASC").
		Find(&teams)

	if result.Error != nil {
		return nil, result.Error
	}

	return teams, nil
}

func (s *TeamService) UpdateTeam(id, captainID uint, req models.UpdateTeamRequest) (*models.Team, error) {
	team, err := s.GetTeamByID(id)
	if err != nil {
		return nil, err
	}
	if team.CaptainID != captainID {
		return nil, ErrUnauthorized
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(team).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetTeamByID(id)
}

// DeleteTeam removes a permanent team. Captain only.
func (s *TeamService) DeleteTeam(id, captainID uint) error {
	team, err := s.GetTeamByID(id)
	if err != nil {
		return err
	}
	if team.CaptainID != captainID {
		return ErrUnauthorized
	}

	return s.db.Delete(team).Error
}

// LeaveTeam removes the caller from the member list. The captain cannot
// leave; they must delete the team or transfer it.
func (s *TeamService) LeaveTeam(teamID, playerID uint) error {
	team, err := s.GetTeamByID(teamID)
	if err != nil {
		return err
	}
	if team.CaptainID == playerID {
		return ErrCaptainLeave
	}

	member, err := s.memberOf(teamID, playerID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotTeamMember
	}

	return s.db.Model(team).Association("Members").Delete(member)
}

// RemoveMember lets the captain expel a member. The captain is irremovable.
func (s *TeamService) RemoveMember(teamID, captainID, playerID uint) error {
	team, err := s.GetTeamByID(teamID)
	if err != nil {
		return err
	}
	if team.CaptainID != captainID {
		return ErrUnauthorized
	}
	if playerID == team.CaptainID {
		return ErrCaptainRemoval
	}

	member, err := s.memberOf(teamID, playerID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotTeamMember
	}

	return s.db.Model(team).Association("Members").Delete(member)
}

// InviteMember creates a pending invitation. A player can hold only one
// pending invitation per team.
func (s *TeamService) InviteMember(teamID, captainID, playerID uint) (*models.TeamInvitation, error) {
	team, err := s.GetPermanentTeamByID(teamID)
	if err != nil {
		return nil, err
	}
	if team.CaptainID != captainID {
		return nil, ErrUnauthorized
	}

	var invitee models.Player
	if err := s.db.First(&invitee, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	member, err := s.memberOf(teamID, playerID)
	if err != nil {
		return nil, err
	}
	if member != nil {
		return nil, ErrAlreadyMember
	}

	var pending int64
	if err := s.db.Model(&models.TeamInvitation{}).
		Where("team_id = ? AND invitee_id = ? AND state = ?", teamID, playerID, models.InvitationPending).
		Count(&pending).Error; err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, ErrPendingInvitation
	}

	invitation := &models.TeamInvitation{
		TeamID:      teamID,
		InvitedByID: captainID,
		InviteeID:   playerID,
		State:       models.InvitationPending,
	}

	if err := s.db.Create(invitation).Error; err != nil {
		return nil, err
	}

	return invitation, nil
}

// RespondInvitation lets the invitee accept or reject a pending invitation.
// Accepting joins the team.
func (s *TeamService) RespondInvitation(invitationID, inviteeID uint, accept bool, now time.Time) (*models.TeamInvitation, error) {
	var invitation models.TeamInvitation
	if err := s.db.Preload("Team").First(&invitation, invitationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}

	if invitation.InviteeID != inviteeID {
		return nil, ErrUnauthorized
	}
	if invitation.State != models.InvitationPending {
		return nil, ErrAlreadyResolved
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	invitation.RespondedAt = &now
	if accept {
		invitation.State = models.InvitationAccepted

		var invitee models.Player
		if err := tx.First(&invitee, inviteeID).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Model(invitation.Team).Association("Members").Append(&invitee); err != nil {
			tx.Rollback()
			return nil, err
		}
	} else {
		invitation.State = models.InvitationRejected
	}

	if err := tx.Save(&invitation).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &invitation, nil
}

func (s *TeamService) GetPendingInvitationsForPlayer(playerID uint) ([]models.TeamInvitation, error) {
	var invitations []models.TeamInvitation

	result := s.db.Where("invitee_id = ? AND state = ?", playerID, models.InvitationPending).
		Preload("Team").
		Preload("InvitedBy").
		Order("created_at DESC").
		Find(&invitations)

	if result.Error != nil {
		return nil, result.Error
	}

	return invitations, nil
}

// SetActive toggles a permanent team's active flag (admin operation).
func (s *TeamService) SetActive(teamID uint, active bool) (*models.Team, error) {
	team, err := s.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(team).Update("active", active).Error; err != nil {
		return nil, err
	}

	return s.GetTeamByID(teamID)
}

// GetTeamAverageRating returns the mean rating of the team's members, or the
// default rating for an empty team.
func (s *TeamService) GetTeamAverageRating(teamID uint) (float64, error) {
	team, err := s.GetTeamByID(teamID)
	if err != nil {
		return 0, err
	}
	return team.AverageRating(), nil
}

// memberOf returns the player row if they belong to the team, nil otherwise.
func (s *TeamService) memberOf(teamID, playerID uint) (*models.Player, error) {
	var players []models.Player

	err := s.db.
		Joins("JOIN team_members ON team_members.player_id = players.id").
		Where("team_members.team_id = ? AND players.id = ?", teamID, playerID).
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, nil
	}

	return &players[0], nil
}
