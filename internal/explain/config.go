package explain

// Config holds generation settings for both explanation and tutor calls.
type Config struct {
	ExplainMaxTokens   int
	ExplainTemperature float64
	TutorMaxTokens     int
	TutorTemperature   float64
	// TutorTurns is how many trailing user/assistant turns are sent.
	TutorTurns int
}

// DefaultConfig returns the settings the explainer ships with.
func DefaultConfig() Config {
	return Config{
		ExplainMaxTokens:   400,
		ExplainTemperature: 0.2,
		TutorMaxTokens:     600,
		TutorTemperature:   0.3,
		TutorTurns:         12,
	}
}
