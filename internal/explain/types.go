package explain

import (
	"fmt"

	"github.com/abhisek/satdrill/internal/catalog"
	"github.com/abhisek/satdrill/internal/llm"
)

// Subjects the explainer knows how to coach. Anything else is treated as
// reading.
var knownSubjects = map[string]bool{
	"math":    true,
	"reading": true,
	"vocab":   true,
}

const (
	defaultSubject = "reading"
	maxFieldRunes  = 2000
	maxChoices     = 8
)

// Request carries the question context sent to the explainer and tutor.
type Request struct {
	Subject    string   `json:"subject"`
	Topic      string   `json:"topic,omitempty"`
	Question   string   `json:"question,omitempty"`
	Passage    string   `json:"passage,omitempty"`
	Choices    []string `json:"choices,omitempty"`
	UserAnswer string   `json:"userAnswer,omitempty"`
	IsCorrect  *bool    `json:"isCorrect,omitempty"`
}

// FromItem builds a request for a catalog item. A negative answer means the
// student has not answered yet.
func FromItem(item catalog.Item, answer int) Request {
	req := Request{
		Subject:  item.Subject,
		Topic:    item.Topic,
		Question: item.Prompt,
		Passage:  item.Passage,
		Choices:  item.Choices,
	}
	if answer >= 0 {
		correct := item.Correct(answer)
		req.IsCorrect = &correct
		req.UserAnswer = choiceLabel(item.Choices, answer)
	}
	return req
}

func choiceLabel(choices []string, i int) string {
	letter := string(rune('A' + i))
	if i < len(choices) {
		return fmt.Sprintf("%s. %s", letter, choices[i])
	}
	return letter
}

// Normalized returns a copy with the subject mapped onto a known subject,
// long fields cut and at most eight non-empty choices.
func (r Request) Normalized() Request {
	out := r
	if !knownSubjects[out.Subject] {
		out.Subject = defaultSubject
	}
	out.Topic = truncateRunes(out.Topic, maxFieldRunes)
	out.Question = truncateRunes(out.Question, maxFieldRunes)
	out.Passage = truncateRunes(out.Passage, maxFieldRunes)
	out.UserAnswer = truncateRunes(out.UserAnswer, maxFieldRunes)

	choices := r.Choices
	if len(choices) > maxChoices {
		choices = choices[:maxChoices]
	}
	out.Choices = nil
	for _, c := range choices {
		if c = truncateRunes(c, maxFieldRunes); c != "" {
			out.Choices = append(out.Choices, c)
		}
	}
	return out
}

// Explanation is the structured answer breakdown shown after a quiz.
type Explanation struct {
	Bullets   []string `json:"bullets"`
	Tips      []string `json:"tips"`
	NextSteps []string `json:"nextSteps"`

	// Mock is set when the content is canned rather than model output.
	Mock bool   `json:"mock"`
	Note string `json:"note,omitempty"`
}

// TutorRequest is one turn of the tutor conversation.
type TutorRequest struct {
	Context  Request
	Messages []llm.Message
}

// TutorReply is the tutor's answer plus follow-up prompts for the student.
type TutorReply struct {
	Reply       string   `json:"reply"`
	Mock        bool     `json:"mock"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
