package authoring

import "github.com/abhisek/quizbox/internal/quiz"

// Form is an editable draft with at least one question.
type Form struct {
	draft Draft
}

// NewForm returns a form with one blank question.
func NewForm() *Form {
	f := &Form{}
	f.Reset()
	return f
}

// NewFormFrom returns a form seeded with a copy of d.
func NewFormFrom(d Draft) *Form {
	f := &Form{draft: d.Clone()}
	if len(f.draft.Questions) == 0 {
		f.AddQuestion()
	}
	for i := range f.draft.Questions {
		f.draft.Questions[i].Options = padOptions(f.draft.Questions[i].Options)
	}
	return f
}

func padOptions(opts []string) []string {
	out := make([]string, quiz.OptionCount)
	copy(out, opts)
	return out
}

func blankQuestion() DraftQuestion {
	return DraftQuestion{Options: make([]string, quiz.OptionCount)}
}

// Reset clears the form back to one blank question.
func (f *Form) Reset() {
	f.draft = Draft{Questions: []DraftQuestion{blankQuestion()}}
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() Draft { return f.draft.Clone() }

func (f *Form) Title() string { return f.draft.Title }

func (f *Form) QuestionCount() int { return len(f.draft.Questions) }

// Question returns a copy of question i.
func (f *Form) Question(i int) (DraftQuestion, bool) {
	if !f.hasQuestion(i) {
		return DraftQuestion{}, false
	}
	return f.draft.Questions[i].clone(), true
}

func (f *Form) hasQuestion(i int) bool {
	return i >= 0 && i < len(f.draft.Questions)
}

func (f *Form) SetTitle(s string) { f.draft.Title = s }

// AddQuestion appends a blank question and returns its index.
func (f *Form) AddQuestion() int {
	f.draft.Questions = append(f.draft.Questions, blankQuestion())
	return len(f.draft.Questions) - 1
}

// RemoveQuestion deletes question i. The last remaining question cannot be
// removed.
func (f *Form) RemoveQuestion(i int) bool {
	if !f.hasQuestion(i) || len(f.draft.Questions) == 1 {
		return false
	}
	f.draft.Questions = append(f.draft.Questions[:i], f.draft.Questions[i+1:]...)
	return true
}

func (f *Form) SetQuestionText(i int, s string) bool {
	if !f.hasQuestion(i) {
		return false
	}
	f.draft.Questions[i].Text = s
	return true
}

func (f *Form) SetOption(i, opt int, s string) bool {
	if !f.hasQuestion(i) || opt < 0 || opt >= len(f.draft.Questions[i].Options) {
		return false
	}
	f.draft.Questions[i].Options[opt] = s
	return true
}

// SetCorrect marks option opt of question i as the correct answer.
func (f *Form) SetCorrect(i, opt int) bool {
	if !f.hasQuestion(i) || opt < 0 || opt >= len(f.draft.Questions[i].Options) {
		return false
	}
	f.draft.Questions[i].CorrectAnswer = &opt
	return true
}

// Validate checks the current draft.
func (f *Form) Validate() (quiz.Definition, error) {
	return Validate(f.draft)
}
