package run

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/runner"
	"github.com/abhisek/quizbox/internal/screen/screentest"
	"github.com/abhisek/quizbox/internal/screens/notice"
	"github.com/abhisek/quizbox/internal/screens/results"
)

func openScreen(t *testing.T, fx screentest.Fixture, id string) (*RunScreen, tea.Cmd) {
	t.Helper()
	s := New(fx.Env, id)
	_, cmd := screentest.Init(t, s)
	return s, cmd
}

func TestRunScreen_OpensBuiltin(t *testing.T) {
	fx := screentest.NewEnv(t)

	s, cmd := openScreen(t, fx, "builtin-1")

	assert.Nil(t, cmd)
	require.NotNil(t, s.Runner())
	assert.Equal(t, runner.StateInProgress, s.Runner().State())
	assert.Equal(t, "Capitals", s.Title())
	assert.Equal(t, "0/3 answered", s.Status())
	assert.Contains(t, s.View(80, 24), "Capital of France?")
}

func TestRunScreen_UnknownIDReplacesWithNotice(t *testing.T) {
	fx := screentest.NewEnv(t)

	_, cmd := openScreen(t, fx, "nope")

	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	n, ok := msg.Screen.(*notice.NoticeScreen)
	require.True(t, ok)
	assert.Equal(t, "Test not found", n.Title())
}

func TestRunScreen_NumberKeyAnswersAndPersists(t *testing.T) {
	fx := screentest.NewEnv(t)
	s, _ := openScreen(t, fx, "builtin-1")

	screentest.Press(s, screentest.Key('2'))

	a, ok := s.Runner().Answer(0)
	require.True(t, ok)
	assert.Equal(t, 1, a)
	assert.Equal(t, quiz.MarkCorrect, s.Runner().Mark(0))

	rec, ok := fx.Storage.LoadProgress(context.Background(), "builtin-1")
	require.True(t, ok)
	assert.Equal(t, map[int]int{0: 1}, rec.Answers)
}

func TestRunScreen_FirstAnswerWins(t *testing.T) {
	fx := screentest.NewEnv(t)
	s, _ := openScreen(t, fx, "builtin-1")

	screentest.Press(s, screentest.Key('1'), screentest.Key('2'))

	a, _ := s.Runner().Answer(0)
	assert.Equal(t, 0, a)
	assert.Equal(t, quiz.MarkIncorrect, s.Runner().Mark(0))
}

func TestRunScreen_CursorAndEnter(t *testing.T) {
	fx := screentest.NewEnv(t)
	s, _ := openScreen(t, fx, "builtin-1")

	screentest.Press(s,
		screentest.Special(tea.KeyDown),
		screentest.Special(tea.KeyEnter),
	)
	a, ok := s.Runner().Answer(0)
	require.True(t, ok)
	assert.Equal(t, 1, a)

	// Enter on an answered question moves on.
	screentest.Press(s, screentest.Special(tea.KeyEnter))
	assert.Equal(t, 1, s.Runner().CurrentIndex())
}

func TestRunScreen_Navigation(t *testing.T) {
	fx := screentest.NewEnv(t)
	s, _ := openScreen(t, fx, "builtin-1")

	screentest.Press(s, screentest.Special(tea.KeyRight), screentest.Special(tea.KeyRight), screentest.Special(tea.KeyRight))
	assert.Equal(t, 2, s.Runner().CurrentIndex(), "next is a no-op on the last question")

	screentest.Press(s, screentest.Special(tea.KeyHome))
	assert.Equal(t, 0, s.Runner().CurrentIndex())

	screentest.Press(s, screentest.Special(tea.KeyEnd), screentest.Special(tea.KeyLeft))
	assert.Equal(t, 1, s.Runner().CurrentIndex())
}

func TestRunScreen_FinishWithUnansweredAsks(t *testing.T) {
	fx := screentest.NewEnv(t)
	s, _ := openScreen(t, fx, "builtin-1")
	screentest.Press(s, screentest.Key('2'))

	_, cmd := screentest.Press(s, screentest.Key('f'))
	assert.Nil(t, cmd)
	assert.True(t, s.Modal())
	assert.Contains(t, s.View(80, 24), "You answered 1 of 3 questions")

	// Declining leaves the attempt open.
	_, cmd = screentest.Press(s, screentest.Key('n'))
	assert.Nil(t, cmd)
	assert.False(t, s.Modal())
	assert.Equal(t, runner.StateInProgress, s.Runner().State())

	_, cmd = screentest.Press(s, screentest.Key('f'), screentest.Key('y'))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	res, ok := push.Screen.(*results.ResultsScreen)
	require.True(t, ok)
	assert.Equal(t, quiz.Results{Correct: 1, Unanswered: 2, Total: 3}, res.Results())
	assert.Equal(t, runner.StateCompleted, s.Runner().State())
}

func TestRunScreen_FinishAllAnsweredSkipsPrompt(t *testing.T) {
	fx := screentest.NewEnv(t)
	s, _ := openScreen(t, fx, "builtin-1")

	_, cmd := screentest.Press(s,
		screentest.Key('2'), screentest.Special(tea.KeyRight),
		screentest.Key('1'), screentest.Special(tea.KeyRight),
		screentest.Key('4'),
		screentest.Key('f'),
	)

	require.NotNil(t, cmd)
	assert.False(t, s.Modal())
	push := cmd().(router.PushScreenMsg)
	res := push.Screen.(*results.ResultsScreen)
	assert.Equal(t, quiz.Results{Correct: 2, Incorrect: 1, Total: 3}, res.Results())
}

func TestRunScreen_CompletedIsReviewOnly(t *testing.T) {
	fx := screentest.NewEnv(t)
	s, _ := openScreen(t, fx, "builtin-1")
	screentest.Press(s, screentest.Key('f'), screentest.Key('y'))

	screentest.Press(s, screentest.Special(tea.KeyRight), screentest.Key('1'))

	assert.Equal(t, 1, s.Runner().CurrentIndex(), "review navigation still works")
	assert.False(t, s.Runner().IsAnswered(1), "answers are locked after finishing")
	assert.Contains(t, s.View(80, 24), "Completed.")
}

func TestRunScreen_ResetConfirmed(t *testing.T) {
	fx := screentest.NewEnv(t)
	s, _ := openScreen(t, fx, "builtin-1")
	screentest.Press(s, screentest.Key('2'), screentest.Special(tea.KeyRight))

	screentest.Press(s, screentest.Key('r'))
	assert.Contains(t, s.View(80, 24), "Start over?")

	screentest.Press(s, screentest.Key('y'))

	assert.Equal(t, 0, s.Runner().AnsweredCount())
	assert.Equal(t, 0, s.Runner().CurrentIndex())
	rec, ok := fx.Storage.LoadProgress(context.Background(), "builtin-1")
	require.True(t, ok)
	assert.Empty(t, rec.Answers)
}

func TestRunScreen_ResetDeclinedKeepsAnswers(t *testing.T) {
	fx := screentest.NewEnv(t)
	s, _ := openScreen(t, fx, "builtin-1")
	screentest.Press(s, screentest.Key('2'))

	screentest.Press(s, screentest.Key('r'), screentest.Special(tea.KeyEscape))

	assert.Equal(t, 1, s.Runner().AnsweredCount())
	assert.False(t, s.Modal())
}

func TestRunScreen_RestoresStoredProgress(t *testing.T) {
	fx := screentest.NewEnv(t)
	rec := quiz.NewProgress("builtin-1")
	rec.Answers[0] = 1
	rec.CurrentIndex = 2
	require.True(t, fx.Storage.SaveProgress(context.Background(), "builtin-1", rec))

	s, _ := openScreen(t, fx, "builtin-1")

	assert.Equal(t, 2, s.Runner().CurrentIndex())
	assert.Equal(t, "1/3 answered", s.Status())
	assert.Contains(t, s.View(80, 24), "Capital of Italy?")
}

func TestRunScreen_KeyHints(t *testing.T) {
	fx := screentest.NewEnv(t)
	s, _ := openScreen(t, fx, "builtin-1")

	assert.NotEmpty(t, s.KeyHints())

	screentest.Press(s, screentest.Key('r'))
	assert.Len(t, s.KeyHints(), 2)
}
