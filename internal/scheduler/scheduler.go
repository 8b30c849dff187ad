// Package scheduler runs background maintenance tasks on a fixed interval.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Task is a named unit of periodic work.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Scheduler owns the maintenance loop: it ticks on an interval and runs each
// task sequentially.
type Scheduler struct {
	tasks    []Task
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a scheduler that runs all tasks at the given interval.
func NewScheduler(tasks []Task, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		tasks:    tasks,
		interval: interval,
		logger:   logger,
	}
}

// Run executes one immediate cycle, then ticks on the configured interval. It
// returns nil when ctx is cancelled. Task failures are logged, never returned.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler",
		"interval", s.interval.String(),
		"tasks", len(s.tasks),
	)

	s.runAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-ticker.C:
			s.runAll(ctx)
		}
	}
}

func (s *Scheduler) runAll(ctx context.Context) {
	for _, t := range s.tasks {
		if ctx.Err() != nil {
			return
		}
		start := time.Now()
		if err := t.Run(ctx); err != nil {
			s.logger.Warn("task failed",
				"task", t.Name,
				"error", err,
			)
			continue
		}
		s.logger.Debug("task complete",
			"task", t.Name,
			"duration", time.Since(start),
		)
	}
}
