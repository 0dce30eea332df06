package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/anikan666/pirate-lab/internal/port"
	"github.com/anthanhphan/gosdk/logger"
)

// RetentionSweeper deletes expired files in a fixed-interval background
// loop. Each cycle runs two independent phases: the long-retention sweep
// over every listed file (temp_ files are not exempt) and, when the backend
// supports it, the short-retention temp sweep.
type RetentionSweeper struct {
	store      port.FileStore
	maxAge     time.Duration
	tempMaxAge time.Duration
	interval   time.Duration
	started    atomic.Bool
}

// NewRetentionSweeper builds a sweeper over the given backend.
func NewRetentionSweeper(store port.FileStore, maxAge, tempMaxAge, interval time.Duration) *RetentionSweeper {
	return &RetentionSweeper{
		store:      store,
		maxAge:     maxAge,
		tempMaxAge: tempMaxAge,
		interval:   interval,
	}
}

// Start launches the background loop. It is idempotent: a second call
// reports false and spawns nothing, so double bootstrap cannot produce two
// competing sweepers.
func (s *RetentionSweeper) Start(ctx context.Context) bool {
	if !s.started.CompareAndSwap(false, true) {
		logger.Warnw("Retention sweeper already running, ignoring second start")
		return false
	}

	go s.run(ctx)
	return true
}

func (s *RetentionSweeper) run(ctx context.Context) {
	logger.Infow("Retention sweeper started",
		"max_age", s.maxAge.String(),
		"temp_max_age", s.tempMaxAge.String(),
		"interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.RunCycle(ctx)

		select {
		case <-ctx.Done():
			logger.Infow("Retention sweeper stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunCycle executes one sweep cycle. A failure in either phase is contained
// and logged; the loop always reaches its next sleep. Exposed so tests can
// drive cycles deterministically instead of waiting on real timers.
func (s *RetentionSweeper) RunCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorw("Sweep cycle panicked", "panic", r)
		}
	}()

	s.sweepExpired(ctx)
	s.sweepTemp(ctx)
}

// sweepExpired is the long-retention phase: every listed file is considered,
// with no prefix exclusion, and deleted once older than maxAge.
func (s *RetentionSweeper) sweepExpired(ctx context.Context) {
	now := time.Now()
	var deleted int

	for _, file := range s.store.List(ctx, "") {
		age := file.Age(now)
		if age <= s.maxAge {
			continue
		}
		if !s.store.Delete(ctx, file.Filename) {
			// The file stays listed and is retried on the next cycle.
			logger.Warnw("Expired file delete failed", "file", file.Filename, "age_seconds", int64(age.Seconds()))
			continue
		}
		deleted++
		logger.Infow("Auto-deleted expired file", "file", file.Filename, "age_seconds", int64(age.Seconds()))
	}

	if deleted > 0 {
		logger.Infow("Long-retention sweep finished", "deleted", deleted)
	}
}

// sweepTemp is the short-retention phase, delegated to backends that can
// enumerate temp_ artifacts themselves.
func (s *RetentionSweeper) sweepTemp(ctx context.Context) {
	cleaner, ok := s.store.(port.TempCleaner)
	if !ok {
		return
	}
	cleaner.CleanupTemp(ctx, s.tempMaxAge)
}
