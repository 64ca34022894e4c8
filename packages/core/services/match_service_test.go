package services

import (
	"testing"
	"time"

	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMatch_OpenMatch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	creator := seedPlayer(t, db, 1, "creator")
	venue := seedVenue(t, db, models.FormatFutsal)

	match, err := svc.CreateMatch(creator.ID, models.CreateMatchRequest{
		VenueID:   venue.ID,
		StartTime: testNow.Add(48 * time.Hour),
		Format:    models.FormatFutsal,
		Capacity:  10,
	}, testNow)
	require.NoError(t, err)

	assert.Equal(t, models.MatchScheduled, match.State)
	assert.Equal(t, 10, match.Capacity)
	assert.Equal(t, models.ModeFriendly, match.Mode)
	assert.Equal(t, models.PaymentFree, match.PaymentMethod)
	assert.Nil(t, match.HomeTeamID)

	// The creator takes a roster slot immediately.
	require.Len(t, match.Players, 1)
	assert.Equal(t, creator.ID, match.Players[0].ID)

	// No explicit deadline: enrollment closes one hour before kickoff.
	assert.Nil(t, match.EnrollmentDeadline)
	assert.Equal(t, match.StartTime.Add(-time.Hour), match.EffectiveDeadline())
}

func TestCreateMatch_ScheduleValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	creator := seedPlayer(t, db, 1, "creator")
	venue := seedVenue(t, db, models.FormatFutsal)

	// Kickoff in the past.
	_, err := svc.CreateMatch(creator.ID, models.CreateMatchRequest{
		VenueID:   venue.ID,
		StartTime: testNow.Add(-time.Hour),
		Format:    models.FormatFutsal,
		Capacity:  10,
	}, testNow)
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	// Kickoff so close that the implicit deadline already passed.
	_, err = svc.CreateMatch(creator.ID, models.CreateMatchRequest{
		VenueID:   venue.ID,
		StartTime: testNow.Add(30 * time.Minute),
		Format:    models.FormatFutsal,
		Capacity:  10,
	}, testNow)
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	// Explicit deadline after kickoff.
	deadline := testNow.Add(72 * time.Hour)
	_, err = svc.CreateMatch(creator.ID, models.CreateMatchRequest{
		VenueID:            venue.ID,
		StartTime:          testNow.Add(48 * time.Hour),
		EnrollmentDeadline: &deadline,
		Format:             models.FormatFutsal,
		Capacity:           10,
	}, testNow)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestCreateMatch_VenueConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	creator := seedPlayer(t, db, 1, "creator")
	other := seedPlayer(t, db, 2, "other")
	venue := seedVenue(t, db, models.FormatFutsal)

	start := testNow.Add(48 * time.Hour)
	_, err := svc.CreateMatch(creator.ID, models.CreateMatchRequest{
		VenueID:   venue.ID,
		StartTime: start,
		Format:    models.FormatFutsal,
		Capacity:  10,
	}, testNow)
	require.NoError(t, err)

	// Thirty minutes later on the same pitch collides.
	_, err = svc.CreateMatch(other.ID, models.CreateMatchRequest{
		VenueID:   venue.ID,
		StartTime: start.Add(30 * time.Minute),
		Format:    models.FormatFutsal,
		Capacity:  10,
	}, testNow)
	assert.ErrorIs(t, err, ErrVenueConflict)

	// Two hours later the slot is free again.
	_, err = svc.CreateMatch(other.ID, models.CreateMatchRequest{
		VenueID:   venue.ID,
		StartTime: start.Add(2 * time.Hour),
		Format:    models.FormatFutsal,
		Capacity:  10,
	}, testNow)
	assert.NoError(t, err)
}

func TestCreateMatch_TeamChallenge(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	members := seedPlayers(t, db, 1, 5)
	team := seedPermanentTeam(t, db, "Home FC", members)
	venue := seedVenue(t, db, models.FormatSeven)

	match, err := svc.CreateMatch(team.CaptainID, models.CreateMatchRequest{
		VenueID:    venue.ID,
		StartTime:  testNow.Add(48 * time.Hour),
		Format:     models.FormatSeven,
		HomeTeamID: &team.ID,
		Capacity:   99, // ignored for challenges
	}, testNow)
	require.NoError(t, err)

	// Challenge capacity comes from the pitch format, not the request.
	assert.Equal(t, 14, match.Capacity)
	require.NotNil(t, match.HomeTeamID)
	assert.Equal(t, team.ID, *match.HomeTeamID)

	// The whole home squad is rostered from the start.
	assert.Len(t, match.Players, 5)
}

func TestCreateMatch_ChallengeRequiresCaptain(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	members := seedPlayers(t, db, 1, 3)
	team := seedPermanentTeam(t, db, "Home FC", members)
	venue := seedVenue(t, db, models.FormatFutsal)

	_, err := svc.CreateMatch(members[1].ID, models.CreateMatchRequest{
		VenueID:    venue.ID,
		StartTime:  testNow.Add(48 * time.Hour),
		Format:     models.FormatFutsal,
		HomeTeamID: &team.ID,
	}, testNow)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateMatch_CapacityAndPayment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	creator := seedPlayer(t, db, 1, "creator")
	venue := seedVenue(t, db, models.FormatFutsal)

	_, err := svc.CreateMatch(creator.ID, models.CreateMatchRequest{
		VenueID:   venue.ID,
		StartTime: testNow.Add(48 * time.Hour),
		Format:    models.FormatFutsal,
		Capacity:  1,
	}, testNow)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	// A paid match cannot be declared free.
	_, err = svc.CreateMatch(creator.ID, models.CreateMatchRequest{
		VenueID:       venue.ID,
		StartTime:     testNow.Add(48 * time.Hour),
		Format:        models.FormatFutsal,
		Capacity:      10,
		Cost:          15,
		PaymentMethod: models.PaymentFree,
	}, testNow)
	assert.ErrorIs(t, err, ErrPaymentMismatch)

	// A paid match with no method defaults to cash.
	match, err := svc.CreateMatch(creator.ID, models.CreateMatchRequest{
		VenueID:   venue.ID,
		StartTime: testNow.Add(48 * time.Hour),
		Format:    models.FormatFutsal,
		Capacity:  10,
		Cost:      15,
	}, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCash, match.PaymentMethod)
}

func TestSearchMatches_DeadlineFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	creator := seedPlayer(t, db, 1, "creator")
	venue := seedVenue(t, db, models.FormatFutsal)

	open := seedOpenMatch(t, db, creator, venue, 10)

	// A match whose implicit deadline already passed is not searchable.
	closed := models.Match{
		StartTime:     testNow.Add(30 * time.Minute),
		VenueID:       venue.ID,
		Format:        models.FormatFutsal,
		Mode:          models.ModeFriendly,
		Capacity:      10,
		PaymentMethod: models.PaymentFree,
		CreatorID:     creator.ID,
		State:         models.MatchScheduled,
	}
	require.NoError(t, db.Create(&closed).Error)

	page, err := svc.SearchMatches(MatchSearchFilters{}, testNow, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, open.ID, page.Data[0].ID)
}

func TestAssignSquads(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	creator := seedPlayer(t, db, 1, "creator")
	venue := seedVenue(t, db, models.FormatFutsal)
	match := seedOpenMatch(t, db, creator, venue, 10)

	extras := seedPlayers(t, db, 2, 3)
	require.NoError(t, db.Model(&match).Association("Players").Append(&extras))

	updated, err := svc.AssignSquads(match.ID, creator.ID, models.AssignSquadsRequest{
		HomePlayerIDs: []uint{1, 2},
		AwayPlayerIDs: []uint{3, 4},
	})
	require.NoError(t, err)

	require.NotNil(t, updated.HomeTeam)
	require.NotNil(t, updated.AwayTeam)
	assert.Equal(t, models.TeamMatchScoped, updated.HomeTeam.Kind)
	assert.Equal(t, models.TeamMatchScoped, updated.AwayTeam.Kind)
	require.NotNil(t, updated.HomeTeam.MatchID)
	assert.Equal(t, match.ID, *updated.HomeTeam.MatchID)
	assert.Len(t, updated.HomeTeam.Members, 2)
	assert.Len(t, updated.AwayTeam.Members, 2)

	// Re-assigning reuses the squads instead of creating new ones.
	homeID, awayID := updated.HomeTeam.ID, updated.AwayTeam.ID
	updated, err = svc.AssignSquads(match.ID, creator.ID, models.AssignSquadsRequest{
		HomePlayerIDs: []uint{1, 3},
		AwayPlayerIDs: []uint{2, 4},
	})
	require.NoError(t, err)
	assert.Equal(t, homeID, updated.HomeTeam.ID)
	assert.Equal(t, awayID, updated.AwayTeam.ID)

	var squadCount int64
	require.NoError(t, db.Model(&models.Team{}).Where("kind = ?", models.TeamMatchScoped).Count(&squadCount).Error)
	assert.EqualValues(t, 2, squadCount)
}

func TestAssignSquads_Guards(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	creator := seedPlayer(t, db, 1, "creator")
	outsider := seedPlayer(t, db, 2, "outsider")
	venue := seedVenue(t, db, models.FormatFutsal)
	match := seedOpenMatch(t, db, creator, venue, 10)

	// Only the creator splits the roster.
	_, err := svc.AssignSquads(match.ID, outsider.ID, models.AssignSquadsRequest{
		HomePlayerIDs: []uint{1},
		AwayPlayerIDs: []uint{},
	})
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Only rostered players can be placed in a squad.
	_, err = svc.AssignSquads(match.ID, creator.ID, models.AssignSquadsRequest{
		HomePlayerIDs: []uint{1},
		AwayPlayerIDs: []uint{outsider.ID},
	})
	assert.ErrorIs(t, err, ErrForeignPlayer)

	// Team challenges keep their club squads.
	members := seedPlayers(t, db, 10, 3)
	team := seedPermanentTeam(t, db, "Home FC", members)
	challenge := seedChallengeMatch(t, db, team, venue)
	_, err = svc.AssignSquads(challenge.ID, team.CaptainID, models.AssignSquadsRequest{
		HomePlayerIDs: []uint{10},
		AwayPlayerIDs: []uint{11},
	})
	assert.ErrorIs(t, err, ErrNotOpenMatch)
}

func TestCancelMatch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	creator := seedPlayer(t, db, 1, "creator")
	other := seedPlayer(t, db, 2, "other")
	venue := seedVenue(t, db, models.FormatFutsal)
	match := seedOpenMatch(t, db, creator, venue, 10)

	_, err := svc.CancelMatch(match.ID, other.ID, false)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Admins can cancel matches they did not create.
	cancelled, err := svc.CancelMatch(match.ID, other.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.MatchCancelled, cancelled.State)

	// Cancelled matches block further mutation.
	_, err = svc.CancelMatch(match.ID, creator.ID, false)
	assert.ErrorIs(t, err, ErrMatchCancelled)
}
