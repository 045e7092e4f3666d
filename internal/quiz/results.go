package quiz

// Mark classifies a single question within an attempt.
type Mark int

const (
	MarkUnanswered Mark = iota
	MarkCorrect
	MarkIncorrect
)

func (m Mark) String() string {
	switch m {
	case MarkCorrect:
		return "correct"
	case MarkIncorrect:
		return "incorrect"
	default:
		return "unanswered"
	}
}

// Classify is the per-question scoring rule shared by navigation marks and
// result totals.
func Classify(q Question, answer int, answered bool) Mark {
	if !answered {
		return MarkUnanswered
	}
	if answer == q.CorrectAnswer {
		return MarkCorrect
	}
	return MarkIncorrect
}

// Results summarizes an attempt. Correct+Incorrect+Unanswered == Total.
type Results struct {
	Correct    int `json:"correct"`
	Incorrect  int `json:"incorrect"`
	Unanswered int `json:"unanswered"`
	Total      int `json:"total"`
}

// Percent returns the share of correct answers in [0,1].
func (r Results) Percent() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// Marks classifies every question of questions against answers.
func Marks(questions []Question, answers map[int]int) []Mark {
	marks := make([]Mark, len(questions))
	for i, q := range questions {
		a, ok := answers[i]
		marks[i] = Classify(q, a, ok)
	}
	return marks
}

// CalculateResults scores answers against questions. Answers keyed outside
// the question range are ignored.
func CalculateResults(questions []Question, answers map[int]int) Results {
	r := Results{Total: len(questions)}
	for _, m := range Marks(questions, answers) {
		switch m {
		case MarkCorrect:
			r.Correct++
		case MarkIncorrect:
			r.Incorrect++
		default:
			r.Unanswered++
		}
	}
	return r
}
