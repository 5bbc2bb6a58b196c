package catalog

import (
	"fmt"
	"strings"
)

// ItemType distinguishes lessons from gradable quizzes.
type ItemType string

const (
	TypeLesson ItemType = "lesson"
	TypeQuiz   ItemType = "quiz"
)

// DefaultTopic is used for items that carry a subject but no topic.
const DefaultTopic = "general"

// Item is a single piece of content: a lesson card or a quiz question.
// The adaptive engine only reads ID, Type, Subject, Topic and Difficulty.
type Item struct {
	ID          string   `json:"id" yaml:"id"`
	Type        ItemType `json:"type" yaml:"type"`
	Subject     string   `json:"subject" yaml:"subject"`
	Topic       string   `json:"topic,omitempty" yaml:"topic,omitempty"`
	Difficulty  *float64 `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`
	Caption     string   `json:"caption,omitempty" yaml:"caption,omitempty"`
	Passage     string   `json:"passage,omitempty" yaml:"passage,omitempty"`
	Prompt      string   `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Choices     []string `json:"choices,omitempty" yaml:"choices,omitempty"`
	AnswerIndex *int     `json:"answerIndex,omitempty" yaml:"answerIndex,omitempty"`
	Explanation string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// IsQuiz reports whether the item is a gradable quiz.
func (it Item) IsQuiz() bool {
	return it.Type == TypeQuiz
}

// TopicName returns the item's topic, or DefaultTopic when unset.
func (it Item) TopicName() string {
	if it.Topic == "" {
		return DefaultTopic
	}
	return it.Topic
}

// Key returns the item's topic key. ok is false when the item has no
// subject and therefore cannot take part in adaptive logic.
func (it Item) Key() (key TopicKey, ok bool) {
	if it.Subject == "" {
		return TopicKey{}, false
	}
	return NewTopicKey(it.Subject, it.TopicName()), true
}

// Correct reports whether the given choice index is the item's answer.
// Items without an answer index never grade as correct.
func (it Item) Correct(choice int) bool {
	return it.AnswerIndex != nil && *it.AnswerIndex == choice
}

// TopicKey identifies a topic within a subject. Both parts are lower-cased.
type TopicKey struct {
	Subject string
	Topic   string
}

const keySeparator = "::"

// Key parts are escaped in the text form so a separator inside a subject or
// topic survives a round trip.
var (
	keyEscaper   = strings.NewReplacer("%", "%25", ":", "%3A")
	keyUnescaper = strings.NewReplacer("%3A", ":", "%3a", ":", "%25", "%")
)

// NewTopicKey builds a normalized key.
func NewTopicKey(subject, topic string) TopicKey {
	return TopicKey{
		Subject: strings.ToLower(subject),
		Topic:   strings.ToLower(topic),
	}
}

// ParseTopicKey parses the "subject::topic" text form written by
// MarshalText. Unescaped input splits on the first separator.
func ParseTopicKey(s string) (TopicKey, error) {
	subject, topic, found := strings.Cut(s, keySeparator)
	if !found || subject == "" {
		return TopicKey{}, fmt.Errorf("invalid topic key %q", s)
	}
	return NewTopicKey(keyUnescaper.Replace(subject), keyUnescaper.Replace(topic)), nil
}

// IsZero reports whether the key is unset.
func (k TopicKey) IsZero() bool {
	return k.Subject == "" && k.Topic == ""
}

func (k TopicKey) String() string {
	if k.IsZero() {
		return ""
	}
	return k.Subject + keySeparator + k.Topic
}

// MarshalText lets TopicKey be used as a JSON map key. Unlike String, the
// parts are escaped.
func (k TopicKey) MarshalText() ([]byte, error) {
	if k.IsZero() {
		return nil, nil
	}
	return []byte(keyEscaper.Replace(k.Subject) + keySeparator + keyEscaper.Replace(k.Topic)), nil
}

// UnmarshalText accepts the empty string as the zero key.
func (k *TopicKey) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*k = TopicKey{}
		return nil
	}
	parsed, err := ParseTopicKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
