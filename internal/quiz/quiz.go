package quiz

import (
	"time"
)

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// Test is a named, ordered collection of multiple-choice questions.
type Test struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
	IsDefault bool       `json:"isDefault"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Question is one multiple-choice item. ID is its 1-based position in the test.
type Question struct {
	ID            int      `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// Definition is the normalized output of the authoring form: a test before it
// has been assigned an id and creation time.
type Definition struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// ValidOption reports whether i indexes one of the question's options.
func (q Question) ValidOption(i int) bool {
	return i >= 0 && i < len(q.Options)
}

// CheckQuestions returns ErrMalformedTest when the question list is empty or
// any question's correct answer points outside its options.
func (t Test) CheckQuestions() error {
	if len(t.Questions) == 0 {
		return ErrMalformedTest
	}
	for _, q := range t.Questions {
		if !q.ValidOption(q.CorrectAnswer) {
			return ErrMalformedTest
		}
	}
	return nil
}

// Renumber sets each question's ID to its 1-based position.
func Renumber(questions []Question) []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		q.ID = i + 1
		out[i] = q
	}
	return out
}

// Bundle is the built-in test set as fetched and as cached in storage.
type Bundle struct {
	Version string `json:"version,omitempty"`
	Tests   []Test `json:"tests"`
}
