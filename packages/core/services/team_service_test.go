package services

import (
	"testing"

	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePermanentTeam(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	captain := seedPlayer(t, db, 1, "captain")

	team, err := svc.CreatePermanentTeam(captain.ID, models.CreateTeamRequest{
		Name:        "Test FC",
		Description: "weeknight club",
	})
	require.NoError(t, err)

	assert.Equal(t, models.TeamPermanent, team.Kind)
	assert.True(t, team.Active)
	assert.Equal(t, captain.ID, team.CaptainID)

	// The captain is always a member of their own team.
	require.Len(t, team.Members, 1)
	assert.Equal(t, captain.ID, team.Members[0].ID)

	_, err = svc.CreatePermanentTeam(99, models.CreateTeamRequest{Name: "Ghost FC"})
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

// A permanent team can never end up owned by a match, whatever the caller
// tries to save.
func TestPermanentTeamClearsMatchLink(t *testing.T) {
	db := setupTestDB(t)

	seedPlayer(t, db, 1, "captain")
	matchID := uint(42)
	team := models.Team{
		Name:      "Test FC",
		CaptainID: 1,
		Kind:      models.TeamPermanent,
		Active:    true,
		MatchID:   &matchID,
	}
	require.NoError(t, db.Create(&team).Error)

	var saved models.Team
	require.NoError(t, db.First(&saved, team.ID).Error)
	assert.Nil(t, saved.MatchID)
}

func TestLeaveAndRemoveMember(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	members := seedPlayers(t, db, 1, 3)
	team := seedPermanentTeam(t, db, "Test FC", members)
	outsider := seedPlayer(t, db, 10, "outsider")

	// The captain cannot walk out of their own team.
	assert.ErrorIs(t, svc.LeaveTeam(team.ID, team.CaptainID), ErrCaptainLeave)

	// Nor be expelled.
	assert.ErrorIs(t, svc.RemoveMember(team.ID, team.CaptainID, team.CaptainID), ErrCaptainRemoval)

	// Only the captain expels.
	assert.ErrorIs(t, svc.RemoveMember(team.ID, members[1].ID, members[2].ID), ErrUnauthorized)

	// Non-members have nothing to leave.
	assert.ErrorIs(t, svc.LeaveTeam(team.ID, outsider.ID), ErrNotTeamMember)

	require.NoError(t, svc.LeaveTeam(team.ID, members[1].ID))
	require.NoError(t, svc.RemoveMember(team.ID, team.CaptainID, members[2].ID))

	updated, err := svc.GetTeamByID(team.ID)
	require.NoError(t, err)
	assert.Len(t, updated.Members, 1)
}

func TestInviteMember(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	members := seedPlayers(t, db, 1, 2)
	team := seedPermanentTeam(t, db, "Test FC", members)
	invitee := seedPlayer(t, db, 10, "invitee")

	_, err := svc.InviteMember(team.ID, members[1].ID, invitee.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.InviteMember(team.ID, team.CaptainID, members[1].ID)
	assert.ErrorIs(t, err, ErrAlreadyMember)

	invitation, err := svc.InviteMember(team.ID, team.CaptainID, invitee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationPending, invitation.State)

	// One pending invitation per (team, player) pair.
	_, err = svc.InviteMember(team.ID, team.CaptainID, invitee.ID)
	assert.ErrorIs(t, err, ErrPendingInvitation)
}

func TestRespondInvitation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	members := seedPlayers(t, db, 1, 2)
	team := seedPermanentTeam(t, db, "Test FC", members)
	invitee := seedPlayer(t, db, 10, "invitee")

	invitation, err := svc.InviteMember(team.ID, team.CaptainID, invitee.ID)
	require.NoError(t, err)

	// Only the invitee answers.
	_, err = svc.RespondInvitation(invitation.ID, team.CaptainID, true, testNow)
	assert.ErrorIs(t, err, ErrUnauthorized)

	resolved, err := svc.RespondInvitation(invitation.ID, invitee.ID, true, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationAccepted, resolved.State)
	require.NotNil(t, resolved.RespondedAt)

	updated, err := svc.GetTeamByID(team.ID)
	require.NoError(t, err)
	assert.Len(t, updated.Members, 3)

	// A resolved invitation stays resolved.
	_, err = svc.RespondInvitation(invitation.ID, invitee.ID, false, testNow)
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestGetTeamsForPlayer(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	members := seedPlayers(t, db, 1, 3)
	team := seedPermanentTeam(t, db, "Test FC", members)
	seedPermanentTeam(t, db, "Other FC", seedPlayers(t, db, 10, 2))

	teams, err := svc.GetTeamsForPlayer(members[1].ID)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, team.ID, teams[0].ID)
}

func TestSetActiveHidesTeamFromChallenges(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	members := seedPlayers(t, db, 1, 2)
	team := seedPermanentTeam(t, db, "Test FC", members)

	updated, err := svc.SetActive(team.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Active)

	// Inactive teams no longer resolve as challenge-capable.
	_, err = svc.GetPermanentTeamByID(team.ID)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestGetTeamAverageRating(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	members := seedPlayers(t, db, 1, 2)
	team := seedPermanentTeam(t, db, "Test FC", members)
	require.NoError(t, db.Model(&models.Player{}).Where("id = ?", members[0].ID).
		Update("rating", 1200).Error)

	avg, err := svc.GetTeamAverageRating(team.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1100.0, avg, 1e-6)
}
