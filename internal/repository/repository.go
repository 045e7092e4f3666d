// Package repository is the union of built-in and user-authored tests.
package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/storage"
)

// FetchFunc loads the built-in bundle.
type FetchFunc func(ctx context.Context) (quiz.Bundle, error)

// Repository serves built-in tests first, then user tests in storage order.
type Repository struct {
	storage *storage.Storage
	logger  *zap.Logger
	now     func() time.Time
	newID   func() (string, error)

	mu       sync.RWMutex
	builtins []quiz.Test
	users    []quiz.Test
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides the creation-time source.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(r *Repository) { r.newID = gen }
}

// New returns an empty repository. Call Init to load tests.
func New(st *storage.Storage, logger *zap.Logger, opts ...Option) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Repository{
		storage: st,
		logger:  logger.Named("repository"),
		now:     time.Now,
		newID:   uuidV7,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// uuidV7 combines a millisecond timestamp with random bits.
func uuidV7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Init performs the one-time bundle fetch and loads user tests. A failed
// fetch falls back to the cached bundle, then to an empty built-in set; it
// never fails.
func (r *Repository) Init(ctx context.Context, fetch FetchFunc) {
	var builtins []quiz.Test

	b, err := fetch(ctx)
	if err == nil {
		builtins = markDefault(b.Tests)
		b.Tests = builtins
		if !r.storage.SaveTests(ctx, b) {
			r.logger.Warn("bundle cache not written")
		}
		r.logger.Info("bundle loaded", zap.Int("tests", len(builtins)), zap.String("version", b.Version))
	} else {
		r.logger.Warn("bundle fetch failed", zap.Error(err))
		if cached, ok := r.storage.LoadTests(ctx); ok {
			builtins = markDefault(cached.Tests)
			r.logger.Info("using cached bundle", zap.Int("tests", len(builtins)))
		}
	}

	users := r.dropShadowed(builtins, r.storage.LoadUserTests(ctx))
	for i := range users {
		users[i].IsDefault = false
	}

	r.mu.Lock()
	r.builtins = builtins
	r.users = users
	r.mu.Unlock()
}

// dropShadowed removes user tests whose id is already served by a built-in
// or an earlier user test. Such a test could never be found by id and would
// share another test's progress record.
func (r *Repository) dropShadowed(builtins, users []quiz.Test) []quiz.Test {
	taken := make(map[string]bool, len(builtins)+len(users))
	for _, t := range builtins {
		taken[t.ID] = true
	}
	kept := users[:0:0]
	for _, u := range users {
		if taken[u.ID] {
			r.logger.Warn("user test id clashes, skipping", zap.String("id", u.ID), zap.String("title", u.Title))
			continue
		}
		taken[u.ID] = true
		kept = append(kept, u)
	}
	return kept
}

func markDefault(tests []quiz.Test) []quiz.Test {
	out := slices.Clone(tests)
	for i := range out {
		out[i].IsDefault = true
	}
	return out
}

// LoadAll returns built-in tests followed by user tests.
func (r *Repository) LoadAll(_ context.Context) []quiz.Test {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]quiz.Test, 0, len(r.builtins)+len(r.users))
	all = append(all, r.builtins...)
	return append(all, r.users...)
}

// Builtins returns the built-in tests.
func (r *Repository) Builtins() []quiz.Test {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.builtins)
}

// UserTests returns the user tests in storage order.
func (r *Repository) UserTests() []quiz.Test {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.users)
}

// FindByID returns the test with the given id.
func (r *Repository) FindByID(_ context.Context, id string) (quiz.Test, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := find(r.builtins, id); ok {
		return t, true
	}
	return find(r.users, id)
}

func find(tests []quiz.Test, id string) (quiz.Test, bool) {
	for _, t := range tests {
		if t.ID == id {
			return t, true
		}
	}
	return quiz.Test{}, false
}

// Add stores def as a new user test and returns its id.
func (r *Repository) Add(ctx context.Context, def quiz.Definition) (string, error) {
	t := quiz.Test{
		Title:     def.Title,
		Questions: quiz.Renumber(def.Questions),
		IsDefault: false,
		CreatedAt: r.now(),
	}
	if err := t.CheckQuestions(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.freshIDLocked()
	if err != nil {
		return "", fmt.Errorf("generate test id: %w", err)
	}
	t.ID = id

	r.users = append(r.users, t)
	if !r.storage.SaveUserTests(ctx, r.users) {
		r.logger.Warn("user test not persisted", zap.String("test_id", id))
	}
	r.logger.Info("test added", zap.String("test_id", id), zap.Int("questions", len(t.Questions)))
	return id, nil
}

func (r *Repository) freshIDLocked() (string, error) {
	for {
		id, err := r.newID()
		if err != nil {
			return "", err
		}
		_, inBuiltins := find(r.builtins, id)
		_, inUsers := find(r.users, id)
		if !inBuiltins && !inUsers {
			return id, nil
		}
	}
}

// Delete removes a user test and its progress after confirmation. Built-in
// tests are refused with quiz.ErrCannotDeleteDefault before any prompt.
// A declined prompt returns (false, nil).
func (r *Repository) Delete(ctx context.Context, id string, c quiz.Confirmer) (bool, error) {
	r.mu.RLock()
	_, builtin := find(r.builtins, id)
	t, user := find(r.users, id)
	r.mu.RUnlock()

	if builtin {
		return false, quiz.ErrCannotDeleteDefault
	}
	if !user {
		return false, quiz.ErrNotFound
	}
	if !c.Confirm(quiz.DeletePrompt(t.Title)) {
		return false, nil
	}

	r.mu.Lock()
	r.users = slices.DeleteFunc(r.users, func(u quiz.Test) bool { return u.ID == id })
	users := slices.Clone(r.users)
	r.mu.Unlock()

	if !r.storage.SaveUserTests(ctx, users) {
		r.logger.Warn("user test deletion not persisted", zap.String("test_id", id))
	}
	r.storage.ClearProgress(ctx, id)
	r.logger.Info("test deleted", zap.String("test_id", id))
	return true, nil
}
