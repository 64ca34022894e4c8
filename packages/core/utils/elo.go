package utils

import (
	"math"

	"core/models"
)

// KFactor is the ELO K-factor used for every rated match.
const KFactor = 32.0

// ExpectedScore returns the logistic expected score of a side rated `rating`
// against a side rated `opponent`.
func ExpectedScore(rating, opponent float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (opponent-rating)/400))
}

// MatchScore maps a goal comparison onto the ELO actual score: 1 for a win,
// 0 for a loss, 0.5 for a draw.
func MatchScore(goalsFor, goalsAgainst int) float64 {
	switch {
	case goalsFor > goalsAgainst:
		return 1.0
	case goalsFor < goalsAgainst:
		return 0.0
	default:
		return 0.5
	}
}

// RatingDelta returns the rating change for one player given the side's
// actual and expected scores.
func RatingDelta(actual, expected float64) float64 {
	return KFactor * (actual - expected)
}

// TeamAverageRating averages the ratings of a member list, falling back to
// the default rating for an empty team.
func TeamAverageRating(members []models.Player) float64 {
	if len(members) == 0 {
		return models.DefaultRating
	}
	var sum float64
	for _, p := range members {
		sum += p.Rating
	}
	return sum / float64(len(members))
}
