package screen

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/runner"
)

// Catalog is the test repository as seen by screens.
type Catalog interface {
	runner.Finder
	LoadAll(ctx context.Context) []quiz.Test
	Add(ctx context.Context, def quiz.Definition) (string, error)
	Delete(ctx context.Context, id string, c quiz.Confirmer) (bool, error)
}

// Progress is the progress namespace of the storage adapter.
type Progress interface {
	runner.ProgressStore
	LoadAllProgress(ctx context.Context) map[string]quiz.ProgressRecord
}

// Env carries the services shared by every screen.
type Env struct {
	Tests    Catalog
	Progress Progress
	Logger   *zap.Logger
}

// Log returns the environment logger, or a no-op logger when none is set.
func (e Env) Log() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
