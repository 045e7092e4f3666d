package quiz

import "time"

// ProgressRecord is the durable snapshot of one attempt at a test.
// Answers maps a 0-based question index to the selected option index.
type ProgressRecord struct {
	TestID       string      `json:"testId"`
	Answers      map[int]int `json:"answers"`
	CurrentIndex int         `json:"currentIndex"`
	IsCompleted  bool        `json:"isCompleted"`
	LastUpdated  time.Time   `json:"lastUpdated"`
}

// NewProgress returns an empty record positioned on the first question.
func NewProgress(testID string) ProgressRecord {
	return ProgressRecord{
		TestID:  testID,
		Answers: make(map[int]int),
	}
}

// Clone returns a deep copy of the record.
func (r ProgressRecord) Clone() ProgressRecord {
	answers := make(map[int]int, len(r.Answers))
	for k, v := range r.Answers {
		answers[k] = v
	}
	r.Answers = answers
	return r
}

// AnsweredCount returns the number of questions with a recorded answer.
func (r ProgressRecord) AnsweredCount() int {
	return len(r.Answers)
}
