// Package runner is the test-taking state machine. A Runner owns the
// in-memory progress record of one open test and writes it through to a
// ProgressStore after every applied change.
package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/quizbox/internal/quiz"
)

// Finder resolves tests by id.
type Finder interface {
	FindByID(ctx context.Context, id string) (quiz.Test, bool)
}

// ProgressStore is the durable side of a progress record.
type ProgressStore interface {
	LoadProgress(ctx context.Context, testID string) (quiz.ProgressRecord, bool)
	SaveProgress(ctx context.Context, testID string, rec quiz.ProgressRecord) bool
	ClearProgress(ctx context.Context, testID string) bool
}

// Runner drives one attempt at a test.
type Runner struct {
	store  ProgressStore
	now    func() time.Time
	logger *zap.Logger

	state State
	test  quiz.Test
	rec   quiz.ProgressRecord
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock overrides the LastUpdated time source.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithLogger sets the logger used for persistence warnings.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// Open resolves testID and restores any stored progress for it. When the id
// does not resolve, or the test has no usable question list, the returned
// Runner is in StateNotFound and the error wraps quiz.ErrNotFound or
// quiz.ErrMalformedTest. Open never writes.
func Open(ctx context.Context, finder Finder, store ProgressStore, testID string, opts ...Option) (*Runner, error) {
	r := &Runner{
		store:  store,
		now:    time.Now,
		logger: zap.NewNop(),
		state:  StateLoading,
	}
	for _, o := range opts {
		o(r)
	}
	r.logger = r.logger.With(zap.String("test_id", testID))

	t, ok := finder.FindByID(ctx, testID)
	if !ok {
		r.state = StateNotFound
		return r, fmt.Errorf("open %q: %w", testID, quiz.ErrNotFound)
	}
	if err := t.CheckQuestions(); err != nil {
		r.state = StateNotFound
		return r, fmt.Errorf("open %q: %w", testID, err)
	}

	r.test = t
	r.rec = quiz.NewProgress(t.ID)
	if prior, ok := store.LoadProgress(ctx, t.ID); ok {
		r.restore(prior)
	}

	r.state = StateInProgress
	if r.rec.IsCompleted {
		r.state = StateCompleted
	}
	return r, nil
}

// restore copies a stored record, dropping answers that no longer fit the
// test and clamping the index into range.
func (r *Runner) restore(prior quiz.ProgressRecord) {
	n := len(r.test.Questions)
	for i, a := range prior.Answers {
		if i >= 0 && i < n && r.test.Questions[i].ValidOption(a) {
			r.rec.Answers[i] = a
		}
	}
	r.rec.CurrentIndex = min(max(prior.CurrentIndex, 0), n-1)
	r.rec.IsCompleted = prior.IsCompleted
	r.rec.LastUpdated = prior.LastUpdated
}

func (r *Runner) persist() {
	r.rec.LastUpdated = r.now()
	if !r.store.SaveProgress(context.Background(), r.test.ID, r.rec.Clone()) {
		r.logger.Warn("progress not persisted")
	}
}

// navigable reports whether the current question may change. Completed
// attempts remain navigable for review.
func (r *Runner) navigable() bool {
	return r.state == StateInProgress || r.state == StateCompleted
}

// SelectAnswer records option for the current question. It applies only in
// StateInProgress, only to an unanswered question, and only for an option
// the question actually has. The first answer wins.
func (r *Runner) SelectAnswer(option int) bool {
	if r.state != StateInProgress {
		return false
	}
	idx := r.rec.CurrentIndex
	if _, answered := r.rec.Answers[idx]; answered {
		return false
	}
	if !r.test.Questions[idx].ValidOption(option) {
		return false
	}
	r.rec.Answers[idx] = option
	r.persist()
	return true
}

// NextQuestion moves forward one question. It is a no-op on the last one.
func (r *Runner) NextQuestion() bool {
	return r.GoToQuestion(r.rec.CurrentIndex + 1)
}

// PrevQuestion moves back one question. It is a no-op on the first one.
func (r *Runner) PrevQuestion() bool {
	return r.GoToQuestion(r.rec.CurrentIndex - 1)
}

// GoToQuestion jumps to index. Out-of-range indexes and the current index
// are ignored.
func (r *Runner) GoToQuestion(index int) bool {
	if !r.navigable() {
		return false
	}
	if index < 0 || index >= len(r.test.Questions) || index == r.rec.CurrentIndex {
		return false
	}
	r.rec.CurrentIndex = index
	r.persist()
	return true
}

// NeedsFinishConfirmation reports whether finishing would leave questions
// unanswered.
func (r *Runner) NeedsFinishConfirmation() bool {
	return r.state == StateInProgress && r.rec.AnsweredCount() < len(r.test.Questions)
}

// FinishTest completes the attempt. With unanswered questions left, c is
// asked first; a declined prompt leaves everything unchanged and returns
// ok=false. Finishing an already completed attempt returns its results
// without prompting.
func (r *Runner) FinishTest(c quiz.Confirmer) (quiz.Results, bool) {
	switch r.state {
	case StateCompleted:
		return r.CalculateResults(), true
	case StateInProgress:
	default:
		return quiz.Results{}, false
	}

	if r.NeedsFinishConfirmation() && !c.Confirm(r.FinishPrompt()) {
		return quiz.Results{}, false
	}

	r.rec.IsCompleted = true
	r.state = StateCompleted
	r.persist()

	res := r.CalculateResults()
	r.logger.Info("test finished",
		zap.Int("correct", res.Correct),
		zap.Int("incorrect", res.Incorrect),
		zap.Int("unanswered", res.Unanswered),
		zap.Int("total", res.Total),
	)
	return res, true
}

// CalculateResults scores the current answers. It is valid in any state.
func (r *Runner) CalculateResults() quiz.Results {
	return quiz.CalculateResults(r.test.Questions, r.rec.Answers)
}

// ResetTest discards the attempt after c confirms: the stored record is
// deleted, then a fresh one is written, and the runner is back on question
// 0 in StateInProgress.
func (r *Runner) ResetTest(c quiz.Confirmer) bool {
	if !r.navigable() {
		return false
	}
	if !c.Confirm(quiz.ResetPrompt()) {
		return false
	}

	r.rec = quiz.NewProgress(r.test.ID)
	r.state = StateInProgress
	if !r.store.ClearProgress(context.Background(), r.test.ID) {
		r.logger.Warn("progress not cleared")
	}
	r.persist()
	r.logger.Info("test reset")
	return true
}
