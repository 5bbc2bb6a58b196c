package explain

import "github.com/abhisek/satdrill/internal/llm"

func stringArray(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": desc,
		"items":       map[string]any{"type": "string"},
	}
}

// ExplanationSchema defines the JSON shape of an answer explanation.
var ExplanationSchema = &llm.Schema{
	Name:        "sat-explanation",
	Description: "Stepwise explanation of an SAT question with tips and next steps",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"bullets":   stringArray("Short stepwise reasoning, one step per entry"),
			"tips":      stringArray("Test-taking tips relevant to this question"),
			"nextSteps": stringArray("What the student should practice next"),
		},
		"required":             []any{"bullets", "tips", "nextSteps"},
		"additionalProperties": false,
	},
}
