package services

import (
	"testing"
	"time"

	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// settlementFixture is a competitive 5v5 challenge between two permanent
// clubs, everyone at the default rating, ready to be settled.
type settlementFixture struct {
	db    *gorm.DB
	svc   *SettlementService
	match models.Match
	home  models.Team
	away  models.Team
}

func newSettlementFixture(t *testing.T) *settlementFixture {
	t.Helper()

	db := setupTestDB(t)
	venue := seedVenue(t, db, models.FormatFutsal)

	homeMembers := seedPlayers(t, db, 1, 5)
	home := seedPermanentTeam(t, db, "Home FC", homeMembers)
	awayMembers := seedPlayers(t, db, 10, 5)
	away := seedPermanentTeam(t, db, "Away FC", awayMembers)

	match := seedChallengeMatch(t, db, home, venue)
	require.NoError(t, db.Model(&match).Update("away_team_id", away.ID).Error)
	require.NoError(t, db.Model(&match).Association("Players").Append(&awayMembers))

	return &settlementFixture{
		db:    db,
		svc:   NewSettlementService(db),
		match: match,
		home:  home,
		away:  away,
	}
}

func (f *settlementFixture) playerRating(t *testing.T, id uint) float64 {
	t.Helper()

	var player models.Player
	require.NoError(t, f.db.First(&player, id).Error)
	return player.Rating
}

func TestSettleMatch_CompetitiveHomeWin(t *testing.T) {
	f := newSettlementFixture(t)
	recordedAt := testNow.Add(50 * time.Hour)

	settled, err := f.svc.SettleMatch(f.match.ID, 4, 2, f.match.CreatorID, recordedAt)
	require.NoError(t, err)

	assert.Equal(t, models.MatchFinished, settled.State)
	assert.True(t, settled.RatingApplied)
	require.NotNil(t, settled.Result)
	assert.Equal(t, 4, settled.Result.HomeGoals)
	assert.Equal(t, 2, settled.Result.AwayGoals)

	// Equal team averages: a win moves every player exactly K/2 = 16 points.
	for id := uint(1); id <= 5; id++ {
		assert.InDelta(t, 1016.0, f.playerRating(t, id), 1e-6)
	}
	for id := uint(10); id <= 14; id++ {
		assert.InDelta(t, 984.0, f.playerRating(t, id), 1e-6)
	}

	// One history entry per rated player.
	var historyCount int64
	require.NoError(t, f.db.Model(&models.RatingHistory{}).
		Where("match_id = ?", f.match.ID).Count(&historyCount).Error)
	assert.EqualValues(t, 10, historyCount)

	// Club counters: both played, only the winner gains a win.
	var home, away models.Team
	require.NoError(t, f.db.First(&home, f.home.ID).Error)
	require.NoError(t, f.db.First(&away, f.away.ID).Error)
	assert.Equal(t, 1, home.MatchesPlayed)
	assert.Equal(t, 1, home.Wins)
	assert.Equal(t, 1, away.MatchesPlayed)
	assert.Equal(t, 0, away.Wins)

	// Player counters follow squad membership.
	var winner, loser models.Player
	require.NoError(t, f.db.First(&winner, 1).Error)
	require.NoError(t, f.db.First(&loser, 10).Error)
	assert.Equal(t, 1, winner.MatchesPlayed)
	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, 1, loser.MatchesPlayed)
	assert.Equal(t, 1, loser.Losses)
}

func TestSettleMatch_Draw(t *testing.T) {
	f := newSettlementFixture(t)

	settled, err := f.svc.SettleMatch(f.match.ID, 2, 2, f.match.CreatorID, testNow.Add(50*time.Hour))
	require.NoError(t, err)
	assert.True(t, settled.RatingApplied)

	// A draw between equally rated squads moves nobody.
	for id := uint(1); id <= 5; id++ {
		assert.InDelta(t, models.DefaultRating, f.playerRating(t, id), 1e-6)
	}

	var player models.Player
	require.NoError(t, f.db.First(&player, 1).Error)
	assert.Equal(t, 1, player.Draws)
	assert.Equal(t, 0, player.Wins)
	assert.Equal(t, 0, player.Losses)

	// Neither club gains a win.
	var home models.Team
	require.NoError(t, f.db.First(&home, f.home.ID).Error)
	assert.Equal(t, 0, home.Wins)
	assert.Equal(t, 1, home.MatchesPlayed)
}

func TestSettleMatch_SingleShot(t *testing.T) {
	f := newSettlementFixture(t)

	_, err := f.svc.SettleMatch(f.match.ID, 3, 1, f.match.CreatorID, testNow.Add(50*time.Hour))
	require.NoError(t, err)

	// A finished match cannot be settled again, and nothing moves.
	_, err = f.svc.SettleMatch(f.match.ID, 0, 5, f.match.CreatorID, testNow.Add(51*time.Hour))
	assert.ErrorIs(t, err, ErrAlreadyFinished)

	assert.InDelta(t, 1016.0, f.playerRating(t, 1), 1e-6)

	var result models.Result
	require.NoError(t, f.db.Where("match_id = ?", f.match.ID).First(&result).Error)
	assert.Equal(t, 3, result.HomeGoals)
	assert.Equal(t, 1, result.AwayGoals)
}

func TestSettleMatch_Guards(t *testing.T) {
	f := newSettlementFixture(t)

	// Only the creator settles.
	_, err := f.svc.SettleMatch(f.match.ID, 1, 0, 99, testNow.Add(50*time.Hour))
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Cancelled matches cannot carry a result.
	require.NoError(t, f.db.Model(&models.Match{}).Where("id = ?", f.match.ID).
		Update("state", models.MatchCancelled).Error)
	_, err = f.svc.SettleMatch(f.match.ID, 1, 0, f.match.CreatorID, testNow.Add(50*time.Hour))
	assert.ErrorIs(t, err, ErrMatchCancelled)
}

// Friendly matches settle scores and counters but never touch ratings.
func TestSettleMatch_FriendlySkipsRatings(t *testing.T) {
	f := newSettlementFixture(t)
	require.NoError(t, f.db.Model(&models.Match{}).Where("id = ?", f.match.ID).
		Update("mode", models.ModeFriendly).Error)

	settled, err := f.svc.SettleMatch(f.match.ID, 5, 0, f.match.CreatorID, testNow.Add(50*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, models.MatchFinished, settled.State)
	assert.False(t, settled.RatingApplied)

	for id := uint(1); id <= 5; id++ {
		assert.InDelta(t, models.DefaultRating, f.playerRating(t, id), 1e-6)
	}

	var historyCount int64
	require.NoError(t, f.db.Model(&models.RatingHistory{}).
		Where("match_id = ?", f.match.ID).Count(&historyCount).Error)
	assert.Zero(t, historyCount)

	// Counters still move.
	var player models.Player
	require.NoError(t, f.db.First(&player, 1).Error)
	assert.Equal(t, 1, player.Wins)
}

// A competitive open match without assigned squads finishes without a rating
// pass; rating_applied stays false so a later redo is still possible.
func TestSettleMatch_NoSquadsNoRatings(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSettlementService(db)

	creator := seedPlayer(t, db, 1, "creator")
	venue := seedVenue(t, db, models.FormatFutsal)
	match := seedOpenMatch(t, db, creator, venue, 10)
	require.NoError(t, db.Model(&models.Match{}).Where("id = ?", match.ID).
		Update("mode", models.ModeCompetitive).Error)

	settled, err := svc.SettleMatch(match.ID, 2, 1, creator.ID, testNow.Add(50*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, models.MatchFinished, settled.State)
	assert.False(t, settled.RatingApplied)

	var player models.Player
	require.NoError(t, db.First(&player, 1).Error)
	assert.InDelta(t, models.DefaultRating, player.Rating, 1e-6)
	assert.Equal(t, 1, player.MatchesPlayed)
	// Rostered but on no squad: a played match, no result attribution.
	assert.Zero(t, player.Wins)
	assert.Zero(t, player.Losses)
	assert.Zero(t, player.Draws)
}
