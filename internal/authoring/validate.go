package authoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/quizbox/internal/quiz"
)

// FieldKind identifies which part of a draft a violation refers to.
type FieldKind int

const (
	FieldTitle FieldKind = iota
	FieldQuestions
	FieldText
	FieldOptions
	FieldOption
	FieldCorrect
)

// Field locates a draft input. Question and Option are 0-based and only
// meaningful for the kinds that use them.
type Field struct {
	Kind     FieldKind
	Question int
	Option   int
}

func (f Field) String() string {
	switch f.Kind {
	case FieldTitle:
		return "title"
	case FieldQuestions:
		return "questions"
	case FieldText:
		return fmt.Sprintf("questions[%d].text", f.Question)
	case FieldOptions:
		return fmt.Sprintf("questions[%d].options", f.Question)
	case FieldOption:
		return fmt.Sprintf("questions[%d].options[%d]", f.Question, f.Option)
	case FieldCorrect:
		return fmt.Sprintf("questions[%d].correctAnswer", f.Question)
	default:
		return "unknown"
	}
}

// Violation is one failed field rule.
type Violation struct {
	Field   Field
	Message string
}

// ValidationError lists every violation of a draft, in input order.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		v := e.Violations[0]
		return fmt.Sprintf("%v: %s: %s", quiz.ErrValidationFailed, v.Field, v.Message)
	}
	return fmt.Sprintf("%v: %d problems, first %s: %s",
		quiz.ErrValidationFailed, len(e.Violations), e.Violations[0].Field, e.Violations[0].Message)
}

func (e *ValidationError) Unwrap() error { return quiz.ErrValidationFailed }

// Focus returns the field the UI should move to: the first violation.
func (e *ValidationError) Focus() Field {
	if len(e.Violations) == 0 {
		return Field{Kind: FieldTitle}
	}
	return e.Violations[0].Field
}

// Has reports whether f has a violation.
func (e *ValidationError) Has(f Field) bool {
	for _, v := range e.Violations {
		if v.Field == f {
			return true
		}
	}
	return false
}

// Validate checks every rule and returns the trimmed definition. All
// violations are collected; the error is a *ValidationError.
func Validate(d Draft) (quiz.Definition, error) {
	var vs []Violation
	add := func(f Field, msg string) {
		vs = append(vs, Violation{Field: f, Message: msg})
	}

	def := quiz.Definition{Title: strings.TrimSpace(d.Title)}
	if def.Title == "" {
		add(Field{Kind: FieldTitle}, "title is required")
	}
	if len(d.Questions) == 0 {
		add(Field{Kind: FieldQuestions}, "add at least one question")
	}

	for i, dq := range d.Questions {
		q := quiz.Question{
			ID:   i + 1,
			Text: strings.TrimSpace(dq.Text),
		}
		if q.Text == "" {
			add(Field{Kind: FieldText, Question: i}, "question text is required")
		}

		if len(dq.Options) != quiz.OptionCount {
			add(Field{Kind: FieldOptions, Question: i},
				fmt.Sprintf("exactly %d options are required, got %d", quiz.OptionCount, len(dq.Options)))
		}
		for j, opt := range dq.Options {
			opt = strings.TrimSpace(opt)
			if opt == "" {
				add(Field{Kind: FieldOption, Question: i, Option: j}, "option text is required")
			}
			q.Options = append(q.Options, opt)
		}

		switch {
		case dq.CorrectAnswer == nil:
			add(Field{Kind: FieldCorrect, Question: i}, "select the correct answer")
		case !q.ValidOption(*dq.CorrectAnswer):
			add(Field{Kind: FieldCorrect, Question: i}, "correct answer must be one of the options")
		default:
			q.CorrectAnswer = *dq.CorrectAnswer
		}

		def.Questions = append(def.Questions, q)
	}

	if len(vs) > 0 {
		return quiz.Definition{}, &ValidationError{Violations: vs}
	}
	return def, nil
}

// Adder persists a validated definition.
type Adder interface {
	Add(ctx context.Context, def quiz.Definition) (string, error)
}

// Submit validates d and adds it. Nothing is written when validation fails.
func Submit(ctx context.Context, a Adder, d Draft) (string, error) {
	def, err := Validate(d)
	if err != nil {
		return "", err
	}
	return a.Add(ctx, def)
}
