// Package storage persists tests and progress records under fixed keys of a
// key-value backend. Every failure is logged and treated as absent data.
package storage

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/store"
)

// Keys under which the adapter stores its values.
const (
	KeyPlatformTests = "platform_tests"
	KeyUserTests     = "user_tests"
	KeyProgress      = "test_progress"
)

// Storage is the namespaced adapter over a store.KV.
type Storage struct {
	kv     store.KV
	logger *zap.Logger
}

// New returns an adapter over kv. A nil logger discards output.
func New(kv store.KV, logger *zap.Logger) *Storage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Storage{kv: kv, logger: logger.Named("storage")}
}

// SaveTests caches the built-in bundle.
func (s *Storage) SaveTests(ctx context.Context, b quiz.Bundle) bool {
	return s.write(ctx, KeyPlatformTests, b)
}

// LoadTests returns the cached built-in bundle, if any.
func (s *Storage) LoadTests(ctx context.Context) (quiz.Bundle, bool) {
	var b quiz.Bundle
	if !s.read(ctx, KeyPlatformTests, &b) {
		return quiz.Bundle{}, false
	}
	return b, true
}

// SaveUserTests replaces the stored user test list. An empty list removes
// the key.
func (s *Storage) SaveUserTests(ctx context.Context, tests []quiz.Test) bool {
	if len(tests) == 0 {
		return s.remove(ctx, KeyUserTests)
	}
	return s.write(ctx, KeyUserTests, tests)
}

// LoadUserTests returns the stored user tests in storage order. It returns an
// empty list when the key is absent or the value is corrupt.
func (s *Storage) LoadUserTests(ctx context.Context) []quiz.Test {
	var tests []quiz.Test
	if !s.read(ctx, KeyUserTests, &tests) || tests == nil {
		return []quiz.Test{}
	}
	return tests
}

// AddUserTest appends t to the stored user tests.
func (s *Storage) AddUserTest(ctx context.Context, t quiz.Test) bool {
	tests := s.LoadUserTests(ctx)
	return s.SaveUserTests(ctx, append(tests, t))
}

// UpdateUserTest replaces the stored user test with t's id. It reports false
// when no such test exists.
func (s *Storage) UpdateUserTest(ctx context.Context, t quiz.Test) bool {
	tests := s.LoadUserTests(ctx)
	for i := range tests {
		if tests[i].ID == t.ID {
			tests[i] = t
			return s.SaveUserTests(ctx, tests)
		}
	}
	return false
}

// DeleteUserTest removes the stored user test with the given id. It reports
// false when no such test exists.
func (s *Storage) DeleteUserTest(ctx context.Context, id string) bool {
	tests := s.LoadUserTests(ctx)
	for i := range tests {
		if tests[i].ID == id {
			return s.SaveUserTests(ctx, append(tests[:i], tests[i+1:]...))
		}
	}
	return false
}

// SaveProgress stores rec under testID, rewriting the whole progress map.
func (s *Storage) SaveProgress(ctx context.Context, testID string, rec quiz.ProgressRecord) bool {
	all := s.LoadAllProgress(ctx)
	rec = rec.Clone()
	rec.TestID = testID
	all[testID] = rec
	return s.write(ctx, KeyProgress, all)
}

// LoadProgress returns the record stored for testID.
func (s *Storage) LoadProgress(ctx context.Context, testID string) (quiz.ProgressRecord, bool) {
	rec, ok := s.LoadAllProgress(ctx)[testID]
	if !ok {
		return quiz.ProgressRecord{}, false
	}
	if rec.Answers == nil {
		rec.Answers = make(map[int]int)
	}
	return rec, true
}

// ClearProgress deletes the record stored for testID. Clearing the last
// record removes the key.
func (s *Storage) ClearProgress(ctx context.Context, testID string) bool {
	all := s.LoadAllProgress(ctx)
	if _, ok := all[testID]; !ok {
		return true
	}
	delete(all, testID)
	if len(all) == 0 {
		return s.remove(ctx, KeyProgress)
	}
	return s.write(ctx, KeyProgress, all)
}

// LoadAllProgress returns every stored progress record keyed by test id.
func (s *Storage) LoadAllProgress(ctx context.Context) map[string]quiz.ProgressRecord {
	all := make(map[string]quiz.ProgressRecord)
	if !s.read(ctx, KeyProgress, &all) || all == nil {
		return make(map[string]quiz.ProgressRecord)
	}
	return all
}

func (s *Storage) read(ctx context.Context, key string, v any) bool {
	data, err := s.kv.Get(ctx, key)
	if errors.Is(err, store.ErrKeyNotFound) {
		return false
	}
	if err != nil {
		s.logger.Warn("storage: read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("storage: corrupt value", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Storage) write(ctx context.Context, key string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("storage: encode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		s.logger.Warn("storage: write failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Storage) remove(ctx context.Context, key string) bool {
	if err := s.kv.Delete(ctx, key); err != nil {
		s.logger.Warn("storage: delete failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}
