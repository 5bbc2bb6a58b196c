package mastery

// Fatigue is a review-pressure signal kept alongside the rating. It falls
// on hits and rises faster on misses. Nothing in selection reads it yet.
const (
	FatigueHit  = -0.15
	FatigueMiss = 0.35
	MinFatigue  = -1.0
	MaxFatigue  = 2.0
)

// UpdateFatigue returns the fatigue after one answer.
func UpdateFatigue(fatigue float64, correct bool) float64 {
	delta := FatigueMiss
	if correct {
		delta = FatigueHit
	}
	return clamp(fatigue+delta, MinFatigue, MaxFatigue)
}
