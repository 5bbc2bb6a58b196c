package llm

// ModelCost holds pricing in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of one request.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	return nil
}

// modelCosts covers the models the friendly names resolve to, plus the
// common OpenRouter ids. Last updated: 2026-02-15.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-sonnet-4-20250514":   {3, 15},
	"gpt-4o":                     {2.5, 10},
	"gpt-4o-mini":                {0.15, 0.6},
	"gpt-4o-mini-2024-07-18":     {0.15, 0.6},
	"gemini-2.0-flash":           {0.1, 0.4},
	"gemini-2.5-pro":             {1.25, 10},
	"openai/gpt-4o-mini":         {0.15, 0.6},
	"anthropic/claude-haiku-4.5": {1, 5},
	"google/gemini-2.0-flash":    {0.1, 0.4},
}
