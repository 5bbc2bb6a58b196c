package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Catalog is an ordered, read-only list of items with an id index.
type Catalog struct {
	items []Item
	byID  map[string]int
}

// New builds a catalog from items, preserving their order.
// It returns a joined error describing every structural problem found.
func New(items []Item) (*Catalog, error) {
	if err := Validate(items); err != nil {
		return nil, err
	}
	c := &Catalog{
		items: make([]Item, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	copy(c.items, items)
	for i, it := range c.items {
		c.byID[it.ID] = i
	}
	return c, nil
}

// MustNew is like New but panics on invalid input. Intended for seed data.
func MustNew(items []Item) *Catalog {
	c, err := New(items)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks ids and item types. Quizzes without a subject are allowed;
// they simply never take part in adaptive selection.
func Validate(items []Item) error {
	var errs []error
	seen := make(map[string]bool, len(items))
	for i, it := range items {
		if it.ID == "" {
			errs = append(errs, fmt.Errorf("item %d: %w", i, ErrMissingID))
			continue
		}
		if seen[it.ID] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateID, it.ID))
		}
		seen[it.ID] = true
		if it.Type != TypeLesson && it.Type != TypeQuiz {
			errs = append(errs, fmt.Errorf("item %q: %w %q", it.ID, ErrUnknownType, it.Type))
		}
	}
	return errors.Join(errs...)
}

// Items returns a copy of all items in catalog order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Get returns the item with the given id.
func (c *Catalog) Get(id string) (Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Subjects returns the distinct subjects in order of first appearance.
func (c *Catalog) Subjects() []string {
	var out []string
	seen := make(map[string]bool)
	for _, it := range c.items {
		if it.Subject == "" || seen[it.Subject] {
			continue
		}
		seen[it.Subject] = true
		out = append(out, it.Subject)
	}
	return out
}

// BySubject returns every item (lessons and quizzes) of a subject.
func (c *Catalog) BySubject(subject string) []Item {
	var out []Item
	for _, it := range c.items {
		if it.Subject == subject {
			out = append(out, it)
		}
	}
	return out
}

// Quizzes returns the quiz items of a subject in catalog order.
func (c *Catalog) Quizzes(subject string) []Item {
	var out []Item
	for _, it := range c.items {
		if it.Subject == subject && it.IsQuiz() {
			out = append(out, it)
		}
	}
	return out
}

// QuizTopicKeys returns the distinct topic keys of all quiz items in order
// of first appearance.
func (c *Catalog) QuizTopicKeys() []TopicKey {
	return distinctKeys(c.items)
}

// TopicKeys returns the distinct topic keys among the given items in order
// of first appearance. Non-quiz items and items without subject are skipped.
func TopicKeys(items []Item) []TopicKey {
	return distinctKeys(items)
}

func distinctKeys(items []Item) []TopicKey {
	var out []TopicKey
	seen := make(map[TopicKey]bool)
	for _, it := range items {
		if !it.IsQuiz() {
			continue
		}
		k, ok := it.Key()
		if !ok || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

var (
	introPattern   = regexp.MustCompile(`(?i)intro`)
	summaryPattern = regexp.MustCompile(`(?i)^summary:`)
)

// Intro returns the subject's intro lesson: the first lesson whose id (or
// title, when the id is empty) mentions "intro".
func (c *Catalog) Intro(subject string) (Item, bool) {
	for _, it := range c.items {
		if it.Subject != subject || it.Type != TypeLesson {
			continue
		}
		label := it.ID
		if label == "" {
			label = it.Title
		}
		if introPattern.MatchString(label) {
			return it, true
		}
	}
	return Item{}, false
}

// Summary returns the subject's closing lesson: the first lesson titled
// "Summary: ..." or whose id ends with "-end".
func (c *Catalog) Summary(subject string) (Item, bool) {
	for _, it := range c.items {
		if it.Subject != subject || it.Type != TypeLesson {
			continue
		}
		if summaryPattern.MatchString(it.Title) || strings.HasSuffix(it.ID, "-end") {
			return it, true
		}
	}
	return Item{}, false
}
