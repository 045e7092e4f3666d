// Package screentest provides an in-memory environment and key helpers for
// screen tests.
package screentest

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap/zaptest"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/repository"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/storage"
	"github.com/abhisek/quizbox/internal/store"
)

// Builtin is the single built-in test of the fixture environment.
func Builtin() quiz.Test {
	return quiz.Test{
		ID:    "builtin-1",
		Title: "Capitals",
		Questions: []quiz.Question{
			{ID: 1, Text: "Capital of France?", Options: []string{"Rome", "Paris", "Oslo", "Bern"}, CorrectAnswer: 1},
			{ID: 2, Text: "Capital of Norway?", Options: []string{"Oslo", "Rome", "Bern", "Riga"}, CorrectAnswer: 0},
			{ID: 3, Text: "Capital of Italy?", Options: []string{"Bern", "Riga", "Rome", "Oslo"}, CorrectAnswer: 2},
		},
	}
}

// Fixture bundles the services behind a test Env.
type Fixture struct {
	Env     screen.Env
	Repo    *repository.Repository
	Storage *storage.Storage
}

// NewEnv returns an Env backed by in-memory storage holding Builtin.
func NewEnv(t testing.TB) Fixture {
	t.Helper()
	log := zaptest.NewLogger(t)
	st := storage.New(store.NewMemory(), log)
	repo := repository.New(st, log)
	repo.Init(context.Background(), func(context.Context) (quiz.Bundle, error) {
		return quiz.Bundle{Version: "v1.0.0", Tests: []quiz.Test{Builtin()}}, nil
	})
	return Fixture{
		Env:     screen.Env{Tests: repo, Progress: st, Logger: log},
		Repo:    repo,
		Storage: st,
	}
}

// Key returns a printable key press.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special returns a non-printable key press such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Ctrl returns a ctrl-modified key press.
func Ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// Init runs s.Init and feeds the resulting message back into s.
func Init(t testing.TB, s screen.Screen) (screen.Screen, tea.Cmd) {
	t.Helper()
	cmd := s.Init()
	if cmd == nil {
		return s, nil
	}
	return s.Update(cmd())
}

// Press sends each key to s in order and returns the last command.
func Press(s screen.Screen, keys ...tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		s, cmd = s.Update(k)
	}
	return s, cmd
}
