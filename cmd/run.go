package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizbox/internal/app"
	"github.com/abhisek/quizbox/internal/bundle"
	"github.com/abhisek/quizbox/internal/config"
	"github.com/abhisek/quizbox/internal/logger"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/repository"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/storage"
	"github.com/abhisek/quizbox/internal/store"
)

// services is everything a command needs, built once per invocation.
type services struct {
	cfg     *config.Config
	log     *zap.Logger
	storage *storage.Storage
	repo    *repository.Repository

	closers []func() error
}

// setup loads config, builds the logger, opens the store and initialises
// the repository. console tees warnings to stderr; the TUI passes false.
func setup(cmd *cobra.Command, console bool) (*services, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := cfg.ResolvePaths(); err != nil {
		return nil, err
	}

	var consoleOut io.Writer
	if console {
		consoleOut = cmd.ErrOrStderr()
	}
	log, closeLog, err := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Console:    consoleOut,
	})
	if err != nil {
		return nil, err
	}
	s := &services{cfg: cfg, log: log, closers: []func() error{closeLog}}

	var kv store.KV
	if cfg.Ephemeral {
		kv = store.NewMemory()
	} else {
		st, err := store.Open(cfg.DB)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		s.closers = append(s.closers, st.Close)
		kv = st
	}
	log.Debug("store opened", zap.String("db", cfg.DB), zap.Bool("ephemeral", cfg.Ephemeral))

	s.storage = storage.New(kv, log)
	s.repo = repository.New(s.storage, log)

	fetcher := bundle.NewFetcher()
	source := cfg.Bundle
	s.repo.Init(cmd.Context(), func(ctx context.Context) (quiz.Bundle, error) {
		return fetcher.Fetch(ctx, source)
	})
	return s, nil
}

// Close releases resources in reverse order of acquisition.
func (s *services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *services) env() screen.Env {
	return screen.Env{Tests: s.repo, Progress: s.storage, Logger: s.log}
}

// runTUI builds services and launches the terminal UI with opts.
func runTUI(cmd *cobra.Command, opts app.Options) error {
	s, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	opts.Env = s.env()
	return app.Run(opts)
}
