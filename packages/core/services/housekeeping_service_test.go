package services

import (
	"testing"
	"time"

	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpireStaleEnrollments(t *testing.T) {
	db := setupTestDB(t)
	svc := NewHousekeepingService(db)
	roster := NewRosterService(db)

	creator := seedPlayer(t, db, 1, "creator")
	stalePlayer := seedPlayer(t, db, 2, "stale")
	freshPlayer := seedPlayer(t, db, 3, "fresh")
	acceptedPlayer := seedPlayer(t, db, 4, "accepted")
	venue := seedVenue(t, db, models.FormatFutsal)

	expiring := seedOpenMatch(t, db, creator, venue, 10)
	fresh := seedOpenMatch(t, db, creator, venue, 10)

	staleReq, err := roster.RequestPlayerEnrollment(expiring.ID, stalePlayer.ID, testNow)
	require.NoError(t, err)
	acceptedReq, err := roster.RequestPlayerEnrollment(expiring.ID, acceptedPlayer.ID, testNow)
	require.NoError(t, err)
	_, err = roster.AcceptPlayerEnrollment(expiring.ID, acceptedReq.ID, creator.ID)
	require.NoError(t, err)
	freshReq, err := roster.RequestPlayerEnrollment(fresh.ID, freshPlayer.ID, testNow)
	require.NoError(t, err)

	// Push only the first match past its implicit deadline.
	require.NoError(t, db.Model(&models.Match{}).Where("id = ?", expiring.ID).
		Update("start_time", testNow.Add(30*time.Minute)).Error)

	count, err := svc.StalePendingCount(testNow)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	swept, err := svc.ExpireStaleEnrollments(testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, swept)

	// The stale request is rejected and its roster slot released.
	var expired models.Enrollment
	require.NoError(t, db.First(&expired, staleReq.ID).Error)
	assert.Equal(t, models.EnrollmentRejected, expired.State)
	assert.EqualValues(t, 2, rosterCount(t, db, expiring.ID))

	// Accepted players and fresh matches are untouched.
	var kept models.Enrollment
	require.NoError(t, db.First(&kept, acceptedReq.ID).Error)
	assert.Equal(t, models.EnrollmentAccepted, kept.State)

	var untouched models.Enrollment
	require.NoError(t, db.First(&untouched, freshReq.ID).Error)
	assert.Equal(t, models.EnrollmentPending, untouched.State)
	assert.EqualValues(t, 2, rosterCount(t, db, fresh.ID))

	// A second sweep finds nothing.
	swept, err = svc.ExpireStaleEnrollments(testNow)
	require.NoError(t, err)
	assert.Zero(t, swept)
}
