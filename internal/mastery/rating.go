package mastery

import "math"

const (
	// MinRating and MaxRating bound every topic rating and item difficulty.
	MinRating = 400
	MaxRating = 1600

	// InitialRating is assigned to topics that have never been attempted.
	InitialRating = 800

	// KCorrect and KWrong are the learning rates for hits and misses.
	// Misses move the estimate faster.
	KCorrect = 22
	KWrong   = 28
)

// ExpectedScore is the probability, under the Elo model, that a learner at
// rating answers an item at difficulty correctly.
func ExpectedScore(rating, difficulty int) float64 {
	return 1 / (1 + math.Pow(10, float64(difficulty-rating)/400))
}

// UpdateRating applies one Elo step for an answer against an item of the
// given difficulty and returns the new, clamped rating.
func UpdateRating(rating, difficulty int, correct bool) int {
	expected := ExpectedScore(rating, difficulty)
	actual, k := 0.0, float64(KWrong)
	if correct {
		actual, k = 1.0, float64(KCorrect)
	}
	return clampRating(float64(rating) + k*(actual-expected))
}

// clampRating rounds v and clamps it to [MinRating, MaxRating].
func clampRating(v float64) int {
	return int(clamp(math.Round(v), MinRating, MaxRating))
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
