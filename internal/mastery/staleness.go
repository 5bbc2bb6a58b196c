package mastery

import "time"

// StalenessFactor boosts topics that have not been practiced recently.
// A nil last time means the topic was never attempted.
func StalenessFactor(last *time.Time, now time.Time) float64 {
	if last == nil {
		return 1.4
	}
	days := now.Sub(*last).Hours() / 24
	switch {
	case days > 7:
		return 1.4
	case days > 3:
		return 1.25
	case days > 1:
		return 1.1
	default:
		return 1.0
	}
}
