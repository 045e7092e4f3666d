package runner

import "github.com/abhisek/quizbox/internal/quiz"

// State returns the current lifecycle phase.
func (r *Runner) State() State { return r.state }

// Test returns the open test. It is the zero Test in StateNotFound.
func (r *Runner) Test() quiz.Test { return r.test }

func (r *Runner) CurrentIndex() int { return r.rec.CurrentIndex }

func (r *Runner) QuestionCount() int { return len(r.test.Questions) }

func (r *Runner) AnsweredCount() int { return r.rec.AnsweredCount() }

// CurrentQuestion returns the question at the current index.
func (r *Runner) CurrentQuestion() (quiz.Question, bool) {
	if len(r.test.Questions) == 0 {
		return quiz.Question{}, false
	}
	return r.test.Questions[r.rec.CurrentIndex], true
}

func (r *Runner) IsAnswered(i int) bool {
	_, ok := r.rec.Answers[i]
	return ok
}

// Answer returns the option recorded for question i.
func (r *Runner) Answer(i int) (int, bool) {
	a, ok := r.rec.Answers[i]
	return a, ok
}

// Mark classifies question i with the same rule CalculateResults uses.
func (r *Runner) Mark(i int) quiz.Mark {
	if i < 0 || i >= len(r.test.Questions) {
		return quiz.MarkUnanswered
	}
	a, ok := r.rec.Answers[i]
	return quiz.Classify(r.test.Questions[i], a, ok)
}

// Marks classifies every question for the navigation list.
func (r *Runner) Marks() []quiz.Mark {
	return quiz.Marks(r.test.Questions, r.rec.Answers)
}

func (r *Runner) CanPrev() bool {
	return r.navigable() && r.rec.CurrentIndex > 0
}

func (r *Runner) CanNext() bool {
	return r.navigable() && r.rec.CurrentIndex < len(r.test.Questions)-1
}

// Progress returns a copy of the in-memory record.
func (r *Runner) Progress() quiz.ProgressRecord { return r.rec.Clone() }

// FinishPrompt is the confirmation FinishTest asks for.
func (r *Runner) FinishPrompt() quiz.Prompt {
	return quiz.FinishPrompt(r.rec.AnsweredCount(), len(r.test.Questions))
}
