package services

import (
	"testing"
	"time"

	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestPlayerEnrollment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRosterService(db)

	creator := seedPlayer(t, db, 1, "creator")
	joiner := seedPlayer(t, db, 2, "joiner")
	venue := seedVenue(t, db, models.FormatFutsal)
	match := seedOpenMatch(t, db, creator, venue, 10)

	enrollment, err := svc.RequestPlayerEnrollment(match.ID, joiner.ID, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentPending, enrollment.State)

	// A pending request already holds a roster slot.
	assert.EqualValues(t, 2, rosterCount(t, db, match.ID))

	// One live request per player and match.
	_, err = svc.RequestPlayerEnrollment(match.ID, joiner.ID, testNow)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestRequestPlayerEnrollment_Closed(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRosterService(db)

	creator := seedPlayer(t, db, 1, "creator")
	joiner := seedPlayer(t, db, 2, "joiner")
	venue := seedVenue(t, db, models.FormatFutsal)
	match := seedOpenMatch(t, db, creator, venue, 10)

	// Past the effective deadline (one hour before kickoff).
	lateNow := match.StartTime.Add(-30 * time.Minute)
	_, err := svc.RequestPlayerEnrollment(match.ID, joiner.ID, lateNow)
	assert.ErrorIs(t, err, ErrClosedForEnrollment)

	// Team challenges never take individual requests.
	members := seedPlayers(t, db, 10, 3)
	team := seedPermanentTeam(t, db, "Home FC", members)
	challenge := seedChallengeMatch(t, db, team, venue)
	_, err = svc.RequestPlayerEnrollment(challenge.ID, joiner.ID, testNow)
	assert.ErrorIs(t, err, ErrClosedForEnrollment)
}

func TestRequestPlayerEnrollment_Full(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRosterService(db)

	creator := seedPlayer(t, db, 1, "creator")
	filler := seedPlayer(t, db, 2, "filler")
	joiner := seedPlayer(t, db, 3, "joiner")
	venue := seedVenue(t, db, models.FormatFutsal)
	match := seedOpenMatch(t, db, creator, venue, 2)

	first, err := svc.RequestPlayerEnrollment(match.ID, filler.ID, testNow)
	require.NoError(t, err)
	_, err = svc.AcceptPlayerEnrollment(match.ID, first.ID, creator.ID)
	require.NoError(t, err)

	// The roster is at capacity: a full match, not a closed window.
	_, err = svc.RequestPlayerEnrollment(match.ID, joiner.ID, testNow)
	assert.ErrorIs(t, err, ErrMatchFull)

	// A player already holding a slot is reported as enrolled, not turned
	// away for the match being full.
	_, err = svc.RequestPlayerEnrollment(match.ID, filler.ID, testNow)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestAcceptPlayerEnrollment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRosterService(db)

	creator := seedPlayer(t, db, 1, "creator")
	joiner := seedPlayer(t, db, 2, "joiner")
	venue := seedVenue(t, db, models.FormatFutsal)
	match := seedOpenMatch(t, db, creator, venue, 10)

	enrollment, err := svc.RequestPlayerEnrollment(match.ID, joiner.ID, testNow)
	require.NoError(t, err)

	// Only the creator decides.
	_, err = svc.AcceptPlayerEnrollment(match.ID, enrollment.ID, joiner.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	accepted, err := svc.AcceptPlayerEnrollment(match.ID, enrollment.ID, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentAccepted, accepted.State)

	// A decision is final.
	_, err = svc.AcceptPlayerEnrollment(match.ID, enrollment.ID, creator.ID)
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

// The roster filled up between request and decision: acceptance re-counts
// inside the transaction, auto-rejects the request and commits the rejection.
func TestAcceptPlayerEnrollment_Overflow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRosterService(db)

	creator := seedPlayer(t, db, 1, "creator")
	confirmed := seedPlayer(t, db, 2, "confirmed")
	late := seedPlayer(t, db, 3, "late")
	venue := seedVenue(t, db, models.FormatFutsal)
	match := seedOpenMatch(t, db, creator, venue, 2)

	confirmedID := confirmed.ID
	require.NoError(t, db.Create(&models.Enrollment{
		Kind:     models.EnrollmentPlayer,
		MatchID:  match.ID,
		PlayerID: &confirmedID,
		State:    models.EnrollmentAccepted,
	}).Error)
	require.NoError(t, db.Model(&match).Association("Players").Append(&confirmed))

	lateID := late.ID
	pending := models.Enrollment{
		Kind:     models.EnrollmentPlayer,
		MatchID:  match.ID,
		PlayerID: &lateID,
		State:    models.EnrollmentPending,
	}
	require.NoError(t, db.Create(&pending).Error)
	require.NoError(t, db.Model(&match).Association("Players").Append(&late))

	_, err := svc.AcceptPlayerEnrollment(match.ID, pending.ID, creator.ID)
	assert.ErrorIs(t, err, ErrMatchFull)

	// The overflow rejection is persisted, not rolled back.
	var rejected models.Enrollment
	require.NoError(t, db.First(&rejected, pending.ID).Error)
	assert.Equal(t, models.EnrollmentRejected, rejected.State)
	assert.EqualValues(t, 2, rosterCount(t, db, match.ID))
}

// One free slot, two pending requests: exactly one accept succeeds and the
// other is turned into a committed rejection.
func TestAcceptPlayerEnrollment_SingleSlot(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRosterService(db)

	creator := seedPlayer(t, db, 1, "creator")
	first := seedPlayer(t, db, 2, "first")
	second := seedPlayer(t, db, 3, "second")
	venue := seedVenue(t, db, models.FormatFutsal)

	// A single-slot match with nobody rostered yet.
	match := models.Match{
		StartTime:     testNow.Add(48 * time.Hour),
		VenueID:       venue.ID,
		Format:        venue.Format,
		Mode:          models.ModeFriendly,
		Capacity:      1,
		PaymentMethod: models.PaymentFree,
		CreatorID:     creator.ID,
		State:         models.MatchScheduled,
	}
	require.NoError(t, db.Create(&match).Error)

	reqA, err := svc.RequestPlayerEnrollment(match.ID, first.ID, testNow)
	require.NoError(t, err)

	// The second request raced past the capacity check before any decision;
	// seed its optimistic state directly.
	secondID := second.ID
	reqB := models.Enrollment{
		Kind:     models.EnrollmentPlayer,
		MatchID:  match.ID,
		PlayerID: &secondID,
		State:    models.EnrollmentPending,
	}
	require.NoError(t, db.Create(&reqB).Error)
	require.NoError(t, db.Model(&match).Association("Players").Append(&second))

	accepted, err := svc.AcceptPlayerEnrollment(match.ID, reqA.ID, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentAccepted, accepted.State)

	_, err = svc.AcceptPlayerEnrollment(match.ID, reqB.ID, creator.ID)
	assert.ErrorIs(t, err, ErrMatchFull)

	var rejected models.Enrollment
	require.NoError(t, db.First(&rejected, reqB.ID).Error)
	assert.Equal(t, models.EnrollmentRejected, rejected.State)
	assert.EqualValues(t, 1, rosterCount(t, db, match.ID))
}

func TestRejectPlayerEnrollment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRosterService(db)

	creator := seedPlayer(t, db, 1, "creator")
	joiner := seedPlayer(t, db, 2, "joiner")
	venue := seedVenue(t, db, models.FormatFutsal)
	match := seedOpenMatch(t, db, creator, venue, 10)

	enrollment, err := svc.RequestPlayerEnrollment(match.ID, joiner.ID, testNow)
	require.NoError(t, err)
	require.EqualValues(t, 2, rosterCount(t, db, match.ID))

	rejected, err := svc.RejectPlayerEnrollment(match.ID, enrollment.ID, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentRejected, rejected.State)

	// Rejection releases the roster slot.
	assert.EqualValues(t, 1, rosterCount(t, db, match.ID))
}

func TestRejectPlayerEnrollment_Self(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRosterService(db)

	creator := seedPlayer(t, db, 1, "creator")
	venue := seedVenue(t, db, models.FormatFutsal)
	match := seedOpenMatch(t, db, creator, venue, 10)

	playerID := creator.ID
	enrollment := models.Enrollment{
		Kind:     models.EnrollmentPlayer,
		MatchID:  match.ID,
		PlayerID: &playerID,
		State:    models.EnrollmentPending,
	}
	require.NoError(t, db.Create(&enrollment).Error)

	_, err := svc.RejectPlayerEnrollment(match.ID, enrollment.ID, creator.ID)
	assert.ErrorIs(t, err, ErrSelfRejection)
}

func TestRequestTeamChallenge(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRosterService(db)

	venue := seedVenue(t, db, models.FormatFutsal)
	homeMembers := seedPlayers(t, db, 1, 5)
	home := seedPermanentTeam(t, db, "Home FC", homeMembers)
	awayMembers := seedPlayers(t, db, 10, 5)
	away := seedPermanentTeam(t, db, "Away FC", awayMembers)

	match := seedChallengeMatch(t, db, home, venue)

	// Only the rival's captain can request.
	_, err := svc.RequestTeamChallenge(match.ID, away.ID, awayMembers[1].ID, testNow)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// The home team cannot challenge itself.
	_, err = svc.RequestTeamChallenge(match.ID, home.ID, home.CaptainID, testNow)
	assert.ErrorIs(t, err, ErrDuplicateRequest)

	enrollment, err := svc.RequestTeamChallenge(match.ID, away.ID, away.CaptainID, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentPending, enrollment.State)

	_, err = svc.RequestTeamChallenge(match.ID, away.ID, away.CaptainID, testNow)
	assert.ErrorIs(t, err, ErrDuplicateRequest)

	// Open matches take player requests, not team ones.
	open := seedOpenMatch(t, db, homeMembers[0], venue, 10)
	_, err = svc.RequestTeamChallenge(open.ID, away.ID, away.CaptainID, testNow)
	assert.ErrorIs(t, err, ErrClosedForEnrollment)
}

func TestAcceptTeamChallenge(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRosterService(db)

	venue := seedVenue(t, db, models.FormatFutsal)
	homeMembers := seedPlayers(t, db, 1, 5)
	home := seedPermanentTeam(t, db, "Home FC", homeMembers)
	rivalMembers := seedPlayers(t, db, 10, 5)
	rival := seedPermanentTeam(t, db, "Rival FC", rivalMembers)
	otherMembers := seedPlayers(t, db, 20, 5)
	other := seedPermanentTeam(t, db, "Other FC", otherMembers)

	match := seedChallengeMatch(t, db, home, venue)

	chosen, err := svc.RequestTeamChallenge(match.ID, rival.ID, rival.CaptainID, testNow)
	require.NoError(t, err)
	competitor, err := svc.RequestTeamChallenge(match.ID, other.ID, other.CaptainID, testNow)
	require.NoError(t, err)

	accepted, err := svc.AcceptTeamChallenge(match.ID, chosen.ID, home.CaptainID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentAccepted, accepted.State)

	// The rival squad joins the roster and the away slot is taken.
	var updated models.Match
	require.NoError(t, db.First(&updated, match.ID).Error)
	require.NotNil(t, updated.AwayTeamID)
	assert.Equal(t, rival.ID, *updated.AwayTeamID)
	assert.EqualValues(t, 10, rosterCount(t, db, match.ID))

	// Single winner: the competing request is closed with the decision.
	var losing models.Enrollment
	require.NoError(t, db.First(&losing, competitor.ID).Error)
	assert.Equal(t, models.EnrollmentRejected, losing.State)

	// The challenge is no longer open to new rivals.
	_, err = svc.RequestTeamChallenge(match.ID, other.ID, other.CaptainID, testNow)
	assert.ErrorIs(t, err, ErrClosedForEnrollment)

	_, err = svc.AcceptTeamChallenge(match.ID, competitor.ID, home.CaptainID)
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestGetMatchEnrollments(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRosterService(db)

	creator := seedPlayer(t, db, 1, "creator")
	joiner := seedPlayer(t, db, 2, "joiner")
	venue := seedVenue(t, db, models.FormatFutsal)
	match := seedOpenMatch(t, db, creator, venue, 10)

	_, err := svc.RequestPlayerEnrollment(match.ID, joiner.ID, testNow)
	require.NoError(t, err)

	_, err = svc.GetMatchEnrollments(match.ID, joiner.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	enrollments, err := svc.GetMatchEnrollments(match.ID, creator.ID)
	require.NoError(t, err)
	assert.Len(t, enrollments, 1)
}
