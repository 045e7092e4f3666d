package run

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/runner"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/screens/notice"
	"github.com/abhisek/quizbox/internal/screens/results"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
)

// RunScreen implements screen.Screen for taking a single test. It owns the
// engine for as long as it is on the stack.
type RunScreen struct {
	env    screen.Env
	testID string
	runner *runner.Runner
	choice components.MultiChoice

	// confirm is non-nil while a gated transition waits for the user.
	confirm *components.Confirm
}

var _ screen.Screen = (*RunScreen)(nil)
var _ screen.KeyHintProvider = (*RunScreen)(nil)
var _ screen.Modal = (*RunScreen)(nil)
var _ screen.StatusProvider = (*RunScreen)(nil)

// New creates a RunScreen for testID. The test is resolved in Init.
func New(env screen.Env, testID string) *RunScreen {
	return &RunScreen{env: env, testID: testID}
}

func (s *RunScreen) Init() tea.Cmd {
	return s.openRunner()
}

func (s *RunScreen) openRunner() tea.Cmd {
	env, id := s.env, s.testID
	return func() tea.Msg {
		r, err := runner.Open(context.Background(), env.Tests, env.Progress, id,
			runner.WithLogger(env.Log()))
		return runnerOpenedMsg{Runner: r, Err: err}
	}
}

func (s *RunScreen) Title() string {
	if s.runner == nil || s.runner.State() == runner.StateNotFound {
		return "Test"
	}
	return s.runner.Test().Title
}

// Runner exposes the engine, nil until the test has been resolved.
func (s *RunScreen) Runner() *runner.Runner {
	return s.runner
}

func (s *RunScreen) Modal() bool {
	return s.confirm != nil
}

func (s *RunScreen) Status() string {
	if s.runner == nil || s.runner.QuestionCount() == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d answered", s.runner.AnsweredCount(), s.runner.QuestionCount())
}

func (s *RunScreen) KeyHints() []layout.KeyHint {
	if s.runner == nil {
		return nil
	}
	if s.confirm != nil {
		return []layout.KeyHint{
			{Key: "Y", Description: "Yes"},
			{Key: "N", Description: "No"},
		}
	}
	hints := []layout.KeyHint{{Key: "←→", Description: "Prev/Next"}}
	if s.runner.State() == runner.StateInProgress {
		hints = append(hints,
			layout.KeyHint{Key: "1-4", Description: "Answer"},
			layout.KeyHint{Key: "F", Description: "Finish"},
		)
	} else {
		hints = append(hints, layout.KeyHint{Key: "F", Description: "Results"})
	}
	return append(hints,
		layout.KeyHint{Key: "R", Description: "Start over"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *RunScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case runnerOpenedMsg:
		return s.handleOpened(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *RunScreen) handleOpened(msg runnerOpenedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.env.Log().Info("test unavailable", zap.String("test_id", s.testID), zap.Error(msg.Err))
		return s, router.Replace(notice.FromError(msg.Err))
	}
	s.runner = msg.Runner
	s.syncChoice()
	return s, nil
}

// syncChoice rebuilds the option list for the current question.
func (s *RunScreen) syncChoice() {
	q, ok := s.runner.CurrentQuestion()
	if !ok {
		return
	}
	chosen := -1
	if a, answered := s.runner.Answer(s.runner.CurrentIndex()); answered {
		chosen = a
	}
	s.choice = components.NewMultiChoice(q.Text, q.Options, q.CorrectAnswer, chosen)
}

func (s *RunScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.runner == nil {
		return s, nil
	}

	if s.confirm != nil {
		c, d := s.confirm.Update(msg)
		if d == components.Pending {
			s.confirm = &c
			return s, nil
		}
		kind := c.Prompt.Kind
		s.confirm = nil
		return s.resolve(kind, d)
	}

	r := s.runner
	switch key := msg.String(); key {
	case "left", "h":
		r.PrevQuestion()
	case "right", "l":
		r.NextQuestion()
	case "home":
		r.GoToQuestion(0)
	case "end":
		r.GoToQuestion(r.QuestionCount() - 1)
	case "1", "2", "3", "4":
		r.SelectAnswer(int(key[0] - '1'))
	case "enter":
		if !s.choice.Answered() {
			r.SelectAnswer(s.choice.Cursor)
		} else {
			r.NextQuestion()
		}
	case "f":
		return s.finish()
	case "r":
		c := components.NewConfirm(quiz.ResetPrompt())
		s.confirm = &c
		return s, nil
	default:
		s.choice, _ = s.choice.Update(msg)
		return s, nil
	}

	s.syncChoice()
	return s, nil
}

// finish asks for confirmation only when questions are left unanswered.
func (s *RunScreen) finish() (screen.Screen, tea.Cmd) {
	if s.runner.NeedsFinishConfirmation() {
		c := components.NewConfirm(s.runner.FinishPrompt())
		s.confirm = &c
		return s, nil
	}
	return s.completeWith(quiz.Yes)
}

func (s *RunScreen) completeWith(c quiz.Confirmer) (screen.Screen, tea.Cmd) {
	res, ok := s.runner.FinishTest(c)
	if !ok {
		return s, nil
	}
	s.syncChoice()
	return s, router.Push(results.New(s.runner.Test().Title, res))
}

func (s *RunScreen) resolve(kind quiz.PromptKind, d components.Decision) (screen.Screen, tea.Cmd) {
	switch kind {
	case quiz.PromptFinish:
		return s.completeWith(d.Confirmer())
	case quiz.PromptReset:
		if s.runner.ResetTest(d.Confirmer()) {
			s.syncChoice()
		}
	}
	return s, nil
}
