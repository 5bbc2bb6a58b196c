package explain

import (
	"encoding/json"
	"fmt"
	"strings"
)

const explainSystemPrompt = `You are a concise SAT tutor. Return JSON with keys: bullets, tips, nextSteps. Be brief, school-appropriate, and stepwise.`

type explainPayload struct {
	Prompt  string            `json:"prompt"`
	Context Request           `json:"context"`
	Shape   map[string]string `json:"shape"`
}

var explainShape = map[string]string{
	"bullets":   "string[]",
	"tips":      "string[]",
	"nextSteps": "string[]",
}

func buildExplainPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Explain this SAT %s question step by step.", req.Subject)
	if req.IsCorrect != nil {
		if *req.IsCorrect {
			b.WriteString(" The student answered correctly; confirm why the answer works.")
		} else {
			b.WriteString(" The student answered incorrectly; show where the reasoning goes wrong.")
		}
	}
	return b.String()
}

func buildExplainUserMessage(req Request) (string, error) {
	b, err := json.Marshal(explainPayload{
		Prompt:  buildExplainPrompt(req),
		Context: req,
		Shape:   explainShape,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

const tutorPreamble = `You are SAT Tutor Mode: an expert, friendly, *interactive* SAT coach.
Teaching style:
- Be Socratic: ask short guiding questions, then wait for the student's response.
- Reveal one small step at a time; do NOT dump full solutions unless the student asks.
- Prefer plain language; keep responses concise (4-8 sentences max).
- For Reading: tie claims to textual evidence; avoid absolutist language unless warranted.
- For Math: name the skill (e.g., linear functions, systems, percent) and show the next step.
- For Vocab: define the word, check connotation/tone, and test fit by substitution.

Safety & tone:
- Encourage effort; avoid shaming. Offer hints before answers.
- If the student asks for the answer directly, give it, but follow with a quick why.

When you ask a question, end with a clear, brief prompt for the student to respond.`

func buildTutorSystemPrompt(req Request) string {
	var b strings.Builder
	b.WriteString(tutorPreamble)
	b.WriteString("\n")

	if req.Subject != "" {
		fmt.Fprintf(&b, "Subject: %s.", req.Subject)
	}
	if req.Topic != "" {
		fmt.Fprintf(&b, " Topic: %s.", req.Topic)
	}
	if req.Question != "" {
		fmt.Fprintf(&b, "\nQuestion: %s", req.Question)
	}
	if req.Passage != "" {
		fmt.Fprintf(&b, "\nPassage:\n%s", req.Passage)
	}
	if len(req.Choices) > 0 {
		b.WriteString("\nChoices:")
		for i, c := range req.Choices {
			fmt.Fprintf(&b, "\n%c. %s", 'A'+i, c)
		}
	}
	if req.UserAnswer != "" {
		fmt.Fprintf(&b, "\nStudent's last answer: %s", req.UserAnswer)
	}
	if req.IsCorrect != nil {
		if *req.IsCorrect {
			b.WriteString(" (correct)")
		} else {
			b.WriteString(" (incorrect)")
		}
	}
	return b.String()
}
