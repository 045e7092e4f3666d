package create

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/authoring"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/screens/notice"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// Input slots. One question is edited at a time; its inputs are reloaded
// from the form when the page changes.
const (
	inputTitle = iota
	inputText
	inputOption
	inputCount = inputOption + quiz.OptionCount
)

// CreateScreen edits an authoring.Form and submits it to the repository.
type CreateScreen struct {
	env      screen.Env
	form     *authoring.Form
	inputs   []components.TextInput
	question int
	focus    int
	verr     *authoring.ValidationError
}

var _ screen.Screen = (*CreateScreen)(nil)
var _ screen.KeyHintProvider = (*CreateScreen)(nil)
var _ screen.StatusProvider = (*CreateScreen)(nil)

// New creates a CreateScreen with an empty form.
func New(env screen.Env) *CreateScreen {
	return NewWithDraft(env, authoring.Draft{})
}

// NewWithDraft creates a CreateScreen seeded with d, e.g. a generated draft.
func NewWithDraft(env screen.Env, d authoring.Draft) *CreateScreen {
	inputs := make([]components.TextInput, inputCount)
	inputs[inputTitle] = components.NewTextInput("Title   ", "e.g. World Capitals", 120)
	inputs[inputText] = components.NewTextInput("Question", "Question text", 240)
	for i := range quiz.OptionCount {
		inputs[inputOption+i] = components.NewTextInput(
			fmt.Sprintf("Option %s", components.OptionLabels[i]), "", 120)
	}

	s := &CreateScreen{
		env:    env,
		form:   authoring.NewFormFrom(d),
		inputs: inputs,
	}
	s.inputs[inputTitle].SetValue(s.form.Title())
	s.loadQuestion(0)
	return s
}

func (s *CreateScreen) Init() tea.Cmd {
	return s.inputs[s.focus].Focus()
}

func (s *CreateScreen) Title() string {
	return "New test"
}

func (s *CreateScreen) Status() string {
	return fmt.Sprintf("question %d of %d", s.question+1, s.form.QuestionCount())
}

// Form exposes the underlying form.
func (s *CreateScreen) Form() *authoring.Form {
	return s.form
}

// Focus reports the edited question and the focused input slot.
func (s *CreateScreen) Focus() (question, input int) {
	return s.question, s.focus
}

func (s *CreateScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+T", Description: "Mark correct"},
		{Key: "Ctrl+N", Description: "Add question"},
		{Key: "PgUp/PgDn", Description: "Switch question"},
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}

// loadQuestion shows question i in the question inputs.
func (s *CreateScreen) loadQuestion(i int) {
	q, ok := s.form.Question(i)
	if !ok {
		return
	}
	s.question = i
	s.inputs[inputText].SetValue(q.Text)
	for j := range quiz.OptionCount {
		s.inputs[inputOption+j].SetValue(q.Options[j])
	}
	s.markInvalid()
}

// fieldFor maps an input slot on the current page to its draft field.
func (s *CreateScreen) fieldFor(slot int) authoring.Field {
	switch {
	case slot == inputTitle:
		return authoring.Field{Kind: authoring.FieldTitle}
	case slot == inputText:
		return authoring.Field{Kind: authoring.FieldText, Question: s.question}
	default:
		return authoring.Field{Kind: authoring.FieldOption, Question: s.question, Option: slot - inputOption}
	}
}

// slotFor maps a draft field to a question page and input slot.
func slotFor(f authoring.Field) (question, slot int) {
	switch f.Kind {
	case authoring.FieldTitle:
		return -1, inputTitle
	case authoring.FieldQuestions:
		return 0, inputText
	case authoring.FieldText:
		return f.Question, inputText
	case authoring.FieldOption:
		return f.Question, inputOption + f.Option
	default:
		return f.Question, inputOption
	}
}

func (s *CreateScreen) markInvalid() {
	for i := range s.inputs {
		s.inputs[i].Invalid = s.verr != nil && s.verr.Has(s.fieldFor(i))
	}
}

func (s *CreateScreen) setFocus(slot int) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = (slot + inputCount) % inputCount
	return s.inputs[s.focus].Focus()
}

func (s *CreateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "tab", "down":
		return s, s.setFocus(s.focus + 1)
	case "shift+tab", "up":
		return s, s.setFocus(s.focus - 1)
	case "pgdown":
		s.loadQuestion(s.question + 1)
		return s, nil
	case "pgup":
		s.loadQuestion(s.question - 1)
		return s, nil
	case "ctrl+n":
		s.loadQuestion(s.form.AddQuestion())
		return s, s.setFocus(inputText)
	case "ctrl+d":
		if s.form.RemoveQuestion(s.question) {
			s.loadQuestion(min(s.question, s.form.QuestionCount()-1))
		}
		return s, nil
	case "ctrl+t":
		if s.focus >= inputOption {
			s.form.SetCorrect(s.question, s.focus-inputOption)
		}
		return s, nil
	case "ctrl+r":
		s.form.Reset()
		s.verr = nil
		s.inputs[inputTitle].SetValue("")
		s.loadQuestion(0)
		return s, s.setFocus(inputTitle)
	case "ctrl+s":
		return s, s.submit()
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	s.syncFocused()
	return s, cmd
}

// syncFocused copies the focused input's value into the form.
func (s *CreateScreen) syncFocused() {
	v := s.inputs[s.focus].Value()
	switch {
	case s.focus == inputTitle:
		s.form.SetTitle(v)
	case s.focus == inputText:
		s.form.SetQuestionText(s.question, v)
	default:
		s.form.SetOption(s.question, s.focus-inputOption, v)
	}
}

func (s *CreateScreen) submit() tea.Cmd {
	d := s.form.Draft()
	id, err := authoring.Submit(context.Background(), s.env.Tests, d)

	var verr *authoring.ValidationError
	if errors.As(err, &verr) {
		s.verr = verr
		q, slot := slotFor(verr.Focus())
		if q >= 0 && q != s.question {
			s.loadQuestion(q)
		}
		s.markInvalid()
		return tea.Batch(s.setFocus(slot), router.Push(notice.FromError(err)))
	}
	if err != nil {
		return router.Push(notice.FromError(err))
	}

	s.verr = nil
	return router.Replace(notice.New("Test created",
		fmt.Sprintf("%q was saved as %s and is now in the test list.", strings.TrimSpace(d.Title), id)))
}

func (s *CreateScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + s.inputs[inputTitle].View())
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  Question %d of %d", s.question+1, s.form.QuestionCount())))
	b.WriteString("\n")
	b.WriteString("  " + s.inputs[inputText].View())
	b.WriteString("\n\n")

	q, _ := s.form.Question(s.question)
	for i := range quiz.OptionCount {
		line := "  " + s.inputs[inputOption+i].View()
		if q.CorrectAnswer != nil && *q.CorrectAnswer == i {
			line += "  " + theme.Correct.Render("✓ correct")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if s.verr != nil && s.verr.Has(authoring.Field{Kind: authoring.FieldCorrect, Question: s.question}) {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render("  Mark the correct option with Ctrl+T."))
		b.WriteString("\n")
	}

	if s.verr != nil {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(fmt.Sprintf("  %d problem(s):", len(s.verr.Violations))))
		b.WriteString("\n")
		for _, v := range s.verr.Violations {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
				Render(fmt.Sprintf("    %s: %s", v.Field, v.Message)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
