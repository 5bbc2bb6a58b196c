package explain

import (
	"fmt"
	"strings"
)

const (
	maxBullets   = 6
	maxTips      = 4
	maxNextSteps = 3
)

// FallbackNote is attached to canned explanations served after a provider
// failure.
const FallbackNote = "Using fallback while AI service is unavailable."

var commonBullets = []string{
	"Read the question stem twice; underline the task.",
	"Eliminate two choices fast; compare the last two carefully.",
	"Check units, definitions, or the cited lines before deciding.",
}

var subjectBullets = map[string][]string{
	"math": {
		"Translate words into an equation; solve step-by-step.",
		"If stuck, plug choices or pick easy numbers.",
	},
	"reading": {
		"Prove with the text: find a line that supports your choice.",
		"Beware answers that are too strong (always/never).",
	},
	"vocab": {
		"Use contrast/result words to infer meaning.",
		"Swap each choice into the sentence; test tone/fit.",
	},
}

// Guard-rail content for model replies that come back with an empty list.
var (
	defaultBullets = []string{
		"Clarify the exact target of the question.",
		"Translate givens into equations/claims and track constraints.",
		"Check choices quickly against constraints; eliminate aggressively.",
	}
	defaultTips      = []string{"Predict before looking at choices.", "Underline the target; circle key info."}
	defaultNextSteps = []string{"Try one similar problem to lock it in."}
)

// mockExplanation returns canned coaching for a normalized request. A
// non-empty note replaces the first tip.
func mockExplanation(req Request, note string) Explanation {
	bullets := append(append([]string{}, commonBullets...), subjectBullets[req.Subject]...)
	firstTip := "Pace yourself; don't let one item sink your momentum."
	if note != "" {
		firstTip = note
	}
	return Explanation{
		Bullets: capList(bullets, maxBullets),
		Tips:    []string{firstTip, "Mark-and-move if unsure; return later with fresh eyes."},
		NextSteps: []string{
			fmt.Sprintf("Practice 2-3 more %s items of the same type.", req.Subject),
			"Write one sentence: why the correct answer is right.",
		},
		Mock: true,
		Note: note,
	}
}

// shape trims model output to display limits and fills empty lists.
func shape(e Explanation) Explanation {
	return Explanation{
		Bullets:   orDefault(capList(nonBlank(e.Bullets), maxBullets), defaultBullets),
		Tips:      orDefault(capList(nonBlank(e.Tips), maxTips), defaultTips),
		NextSteps: orDefault(capList(nonBlank(e.NextSteps), maxNextSteps), defaultNextSteps),
		Mock:      e.Mock,
		Note:      e.Note,
	}
}

func nonBlank(in []string) []string {
	var out []string
	for _, s := range in {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func capList(in []string, n int) []string {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func orDefault(in, def []string) []string {
	if len(in) == 0 {
		return append([]string(nil), def...)
	}
	return in
}

const cannedTutorReply = "Let's work it out together. First, restate the question in your own words. " +
	"What is it asking for exactly? If there are choices, which can you eliminate quickly and why?"

var mockSuggestions = []string{
	"Give me a hint, not the answer",
	"Show me the first step",
	"Explain why choice B is wrong",
}

const maxSuggestions = 4

func buildSuggestions(req Request) []string {
	out := []string{"Give me a hint", "Show the first step", "Explain my mistake"}
	if len(req.Choices) > 0 {
		out = append(out, "Eliminate a wrong choice")
	}
	switch req.Subject {
	case "reading":
		out = append(out, "Point to a line as evidence")
	case "vocab":
		out = append(out, "Test the best synonym in the sentence")
	}
	return capList(out, maxSuggestions)
}

func fallbackReply(req Request) string {
	subj := ""
	if req.Subject != "" {
		subj = fmt.Sprintf(" (%s)", req.Subject)
	}
	return fmt.Sprintf("Let's reason it out%s. First, restate the question. What is it asking for? If choices, which can you eliminate and why?", subj)
}

func mockTutorReply(lastUser string) TutorReply {
	return TutorReply{
		Reply:       fmt.Sprintf("You said: \"%s\"\n\n%s", ellipsize(lastUser, 160), cannedTutorReply),
		Mock:        true,
		Suggestions: append([]string(nil), mockSuggestions...),
	}
}

func ellipsize(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
