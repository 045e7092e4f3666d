package testlist

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen/screentest"
	"github.com/abhisek/quizbox/internal/screens/create"
	"github.com/abhisek/quizbox/internal/screens/notice"
	"github.com/abhisek/quizbox/internal/screens/run"
)

func userDefinition(title string) quiz.Definition {
	return quiz.Definition{
		Title: title,
		Questions: []quiz.Question{
			{Text: "Pick C", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2},
		},
	}
}

func loaded(t *testing.T, fx screentest.Fixture) *TestListScreen {
	t.Helper()
	s := New(fx.Env)
	screentest.Init(t, s)
	return s
}

func TestTestList_ListsBuiltinsAndUsers(t *testing.T) {
	fx := screentest.NewEnv(t)
	_, err := fx.Repo.Add(context.Background(), userDefinition("Mine"))
	require.NoError(t, err)

	s := loaded(t, fx)

	require.Len(t, s.Tests(), 2)
	view := s.View(100, 24)
	assert.Contains(t, view, "Capitals")
	assert.Contains(t, view, "built-in")
	assert.Contains(t, view, "Mine")
}

func TestTestList_EnterPushesRunScreen(t *testing.T) {
	fx := screentest.NewEnv(t)
	s := loaded(t, fx)

	_, cmd := s.Update(screentest.Special(tea.KeyEnter))

	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &run.RunScreen{}, push.Screen)
}

func TestTestList_NPushesCreate(t *testing.T) {
	fx := screentest.NewEnv(t)
	s := loaded(t, fx)

	_, cmd := s.Update(screentest.Key('n'))

	require.NotNil(t, cmd)
	push := cmd().(router.PushScreenMsg)
	assert.IsType(t, &create.CreateScreen{}, push.Screen)
}

func TestTestList_DeleteBuiltinShowsNotice(t *testing.T) {
	fx := screentest.NewEnv(t)
	s := loaded(t, fx)

	_, cmd := s.Update(screentest.Key('d'))

	require.NotNil(t, cmd)
	push := cmd().(router.PushScreenMsg)
	n, ok := push.Screen.(*notice.NoticeScreen)
	require.True(t, ok)
	assert.Equal(t, "Cannot delete", n.Title())
	assert.False(t, s.Modal())
}

func TestTestList_DeleteUserTestAfterConfirm(t *testing.T) {
	fx := screentest.NewEnv(t)
	id, err := fx.Repo.Add(context.Background(), userDefinition("Mine"))
	require.NoError(t, err)
	rec := quiz.NewProgress(id)
	rec.Answers[0] = 2
	fx.Storage.SaveProgress(context.Background(), id, rec)
	s := loaded(t, fx)

	s.Update(screentest.Special(tea.KeyDown))
	s.Update(screentest.Key('d'))
	require.True(t, s.Modal())
	assert.Contains(t, s.View(80, 24), `Delete "Mine"`)

	_, cmd := s.Update(screentest.Key('y'))
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.Len(t, s.Tests(), 1)
	_, found := fx.Repo.FindByID(context.Background(), id)
	assert.False(t, found)
	_, hasProgress := fx.Storage.LoadProgress(context.Background(), id)
	assert.False(t, hasProgress)
}

func TestTestList_DeleteDeclinedKeepsTest(t *testing.T) {
	fx := screentest.NewEnv(t)
	_, err := fx.Repo.Add(context.Background(), userDefinition("Mine"))
	require.NoError(t, err)
	s := loaded(t, fx)

	s.Update(screentest.Special(tea.KeyDown))
	s.Update(screentest.Key('d'))
	_, cmd := s.Update(screentest.Key('n'))

	assert.Nil(t, cmd)
	assert.False(t, s.Modal())
	assert.Len(t, fx.Repo.UserTests(), 1)
}

func TestTestList_RefreshShowsProgress(t *testing.T) {
	fx := screentest.NewEnv(t)
	s := loaded(t, fx)

	rec := quiz.NewProgress("builtin-1")
	rec.Answers[0] = 1
	fx.Storage.SaveProgress(context.Background(), "builtin-1", rec)
	s.Update(s.Refresh()())

	assert.Contains(t, s.View(100, 24), "1/3")
}

func TestBadge(t *testing.T) {
	tst := screentest.Builtin()
	tst.IsDefault = true

	assert.Equal(t, "built-in", Badge(tst, quiz.ProgressRecord{}, false))

	rec := quiz.NewProgress(tst.ID)
	rec.Answers[0] = 1
	rec.Answers[1] = 3
	assert.Equal(t, "built-in · 2/3", Badge(tst, rec, true))

	rec.IsCompleted = true
	assert.Equal(t, "built-in · done 1/3 correct", Badge(tst, rec, true))
}

func TestTestList_QQuits(t *testing.T) {
	fx := screentest.NewEnv(t)
	s := loaded(t, fx)

	_, cmd := s.Update(screentest.Key('q'))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
