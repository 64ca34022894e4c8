package utils

import (
	"testing"

	"core/models"

	"github.com/stretchr/testify/assert"
)

func TestExpectedScore(t *testing.T) {
	// Equal ratings give even odds.
	assert.InDelta(t, 0.5, ExpectedScore(1000, 1000), 1e-9)

	// The two sides' expectations always sum to one.
	home := ExpectedScore(1200, 950)
	away := ExpectedScore(950, 1200)
	assert.InDelta(t, 1.0, home+away, 1e-9)

	// The stronger side is favored.
	assert.Greater(t, home, 0.5)
	assert.Less(t, away, 0.5)
}

func TestMatchScore(t *testing.T) {
	assert.Equal(t, 1.0, MatchScore(3, 1))
	assert.Equal(t, 0.0, MatchScore(0, 2))
	assert.Equal(t, 0.5, MatchScore(2, 2))
}

func TestRatingDelta(t *testing.T) {
	// A win at even odds moves exactly K/2 = 16 points.
	expected := ExpectedScore(1000, 1000)
	assert.InDelta(t, 16.0, RatingDelta(1.0, expected), 1e-9)
	assert.InDelta(t, -16.0, RatingDelta(0.0, expected), 1e-9)

	// A draw at even odds moves nothing.
	assert.InDelta(t, 0.0, RatingDelta(0.5, expected), 1e-9)

	// Zero-sum between the two sides.
	e := ExpectedScore(1100, 980)
	assert.InDelta(t, 0.0, RatingDelta(1.0, e)+RatingDelta(0.0, 1.0-e), 1e-9)
}

func TestTeamAverageRating(t *testing.T) {
	players := []models.Player{
		{ID: 1, Rating: 900},
		{ID: 2, Rating: 1100},
		{ID: 3, Rating: 1000},
	}
	assert.InDelta(t, 1000.0, TeamAverageRating(players), 1e-9)

	// An empty team falls back to the default rating.
	assert.Equal(t, models.DefaultRating, TeamAverageRating(nil))
}
