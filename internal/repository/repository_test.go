package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/storage"
	"github.com/abhisek/quizbox/internal/store"
)

var fixedNow = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func builtinBundle() quiz.Bundle {
	return quiz.Bundle{
		Version: "v1.0.0",
		Tests: []quiz.Test{
			{ID: "builtin-1", Title: "Capitals", Questions: []quiz.Question{
				{ID: 1, Text: "France?", Options: []string{"Rome", "Paris", "Oslo", "Bern"}, CorrectAnswer: 1},
			}},
		},
	}
}

func okFetch(ctx context.Context) (quiz.Bundle, error) { return builtinBundle(), nil }

func failFetch(ctx context.Context) (quiz.Bundle, error) {
	return quiz.Bundle{}, errors.New("offline")
}

func quizDefinition() quiz.Definition {
	return quiz.Definition{
		Title: "Quiz",
		Questions: []quiz.Question{
			{Text: "Pick C", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2},
		},
	}
}

func newTestRepo(t *testing.T, fetch FetchFunc) (*Repository, *storage.Storage) {
	t.Helper()
	st := storage.New(store.NewMemory(), nil)
	r := New(st, nil, WithClock(func() time.Time { return fixedNow }))
	r.Init(context.Background(), fetch)
	return r, st
}

func TestInit_MarksBuiltinsAndCaches(t *testing.T) {
	r, st := newTestRepo(t, okFetch)

	all := r.LoadAll(context.Background())
	require.Len(t, all, 1)
	assert.True(t, all[0].IsDefault)

	cached, ok := st.LoadTests(context.Background())
	require.True(t, ok)
	assert.Equal(t, "builtin-1", cached.Tests[0].ID)
}

func TestInit_FetchFailureFallsBackToCache(t *testing.T) {
	st := storage.New(store.NewMemory(), nil)
	ctx := context.Background()
	require.True(t, st.SaveTests(ctx, builtinBundle()))

	r := New(st, nil)
	r.Init(ctx, failFetch)

	b := r.Builtins()
	require.Len(t, b, 1)
	assert.True(t, b[0].IsDefault)
}

func TestInit_FetchFailureWithoutCacheIsEmpty(t *testing.T) {
	r, _ := newTestRepo(t, failFetch)
	assert.Empty(t, r.LoadAll(context.Background()))
}

func TestAdd_ThenFindByID(t *testing.T) {
	r, st := newTestRepo(t, okFetch)
	ctx := context.Background()

	id, err := r.Add(ctx, quizDefinition())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, ok := r.FindByID(ctx, id)
	require.True(t, ok)
	assert.False(t, got.IsDefault)
	assert.Equal(t, "Quiz", got.Title)
	assert.Equal(t, 1, got.Questions[0].ID)
	assert.Equal(t, 2, got.Questions[0].CorrectAnswer)
	assert.True(t, got.CreatedAt.Equal(fixedNow))

	stored := st.LoadUserTests(ctx)
	require.Len(t, stored, 1)
	assert.Equal(t, id, stored[0].ID)
}

func TestAdd_OrderBuiltinsFirst(t *testing.T) {
	r, _ := newTestRepo(t, okFetch)
	ctx := context.Background()

	id1, _ := r.Add(ctx, quizDefinition())
	id2, _ := r.Add(ctx, quizDefinition())

	all := r.LoadAll(ctx)
	require.Len(t, all, 3)
	assert.Equal(t, "builtin-1", all[0].ID)
	assert.Equal(t, id1, all[1].ID)
	assert.Equal(t, id2, all[2].ID)
	assert.NotEqual(t, id1, id2)
}

func TestAdd_RegeneratesClashingID(t *testing.T) {
	ids := []string{"builtin-1", "fresh"}
	n := 0
	st := storage.New(store.NewMemory(), nil)
	r := New(st, nil, WithIDGenerator(func() (string, error) {
		id := ids[n]
		n++
		return id, nil
	}))
	r.Init(context.Background(), okFetch)

	id, err := r.Add(context.Background(), quizDefinition())
	require.NoError(t, err)
	assert.Equal(t, "fresh", id)
}

func TestAdd_RejectsEmptyQuestions(t *testing.T) {
	r, _ := newTestRepo(t, okFetch)
	_, err := r.Add(context.Background(), quiz.Definition{Title: "Empty"})
	assert.ErrorIs(t, err, quiz.ErrMalformedTest)
}

func TestDelete_BuiltinRefusedWithoutPrompt(t *testing.T) {
	r, _ := newTestRepo(t, okFetch)
	ctx := context.Background()
	before := r.LoadAll(ctx)

	prompted := false
	ok, err := r.Delete(ctx, "builtin-1", quiz.ConfirmFunc(func(quiz.Prompt) bool {
		prompted = true
		return true
	}))

	assert.False(t, ok)
	assert.ErrorIs(t, err, quiz.ErrCannotDeleteDefault)
	assert.False(t, prompted)
	assert.Equal(t, before, r.LoadAll(ctx))
}

func TestDelete_UnknownID(t *testing.T) {
	r, _ := newTestRepo(t, okFetch)
	_, err := r.Delete(context.Background(), "nope", quiz.Yes)
	assert.ErrorIs(t, err, quiz.ErrNotFound)
}

func TestDelete_Declined(t *testing.T) {
	r, _ := newTestRepo(t, okFetch)
	ctx := context.Background()
	id, _ := r.Add(ctx, quizDefinition())

	ok, err := r.Delete(ctx, id, quiz.No)

	require.NoError(t, err)
	assert.False(t, ok)
	_, found := r.FindByID(ctx, id)
	assert.True(t, found)
}

func TestDelete_ConfirmedRemovesTestAndProgress(t *testing.T) {
	r, st := newTestRepo(t, okFetch)
	ctx := context.Background()
	id, _ := r.Add(ctx, quizDefinition())
	st.SaveProgress(ctx, id, quiz.NewProgress(id))

	var seen quiz.Prompt
	ok, err := r.Delete(ctx, id, quiz.ConfirmFunc(func(p quiz.Prompt) bool {
		seen = p
		return true
	}))

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, quiz.PromptDelete, seen.Kind)
	_, found := r.FindByID(ctx, id)
	assert.False(t, found)
	assert.Empty(t, st.LoadUserTests(ctx))
	_, hasProgress := st.LoadProgress(ctx, id)
	assert.False(t, hasProgress)
}

func TestInit_LoadsStoredUserTests(t *testing.T) {
	st := storage.New(store.NewMemory(), nil)
	ctx := context.Background()
	for i := range 3 {
		st.AddUserTest(ctx, quiz.Test{ID: fmt.Sprintf("u%d", i), Title: "T", IsDefault: true})
	}

	r := New(st, nil)
	r.Init(ctx, okFetch)

	users := r.UserTests()
	require.Len(t, users, 3)
	for i, u := range users {
		assert.Equal(t, fmt.Sprintf("u%d", i), u.ID)
		assert.False(t, u.IsDefault)
	}
}

func TestInit_SkipsUserTestsShadowingBuiltins(t *testing.T) {
	st := storage.New(store.NewMemory(), nil)
	ctx := context.Background()
	st.AddUserTest(ctx, quiz.Test{ID: "builtin-1", Title: "Impostor"})
	st.AddUserTest(ctx, quiz.Test{ID: "u1", Title: "Mine"})
	st.AddUserTest(ctx, quiz.Test{ID: "u1", Title: "Copy"})

	r := New(st, nil)
	r.Init(ctx, okFetch)

	users := r.UserTests()
	require.Len(t, users, 1)
	assert.Equal(t, "Mine", users[0].Title)

	got, ok := r.FindByID(ctx, "builtin-1")
	require.True(t, ok)
	assert.Equal(t, "Capitals", got.Title)
	assert.True(t, got.IsDefault)
}
