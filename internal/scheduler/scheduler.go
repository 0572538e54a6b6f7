// Package scheduler wires up the cron entries that fire the alert engine at
// the two daily notification windows, plus a one-time delayed run after
// process startup.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jobpulse/jobpulse-api/internal/alerts"
)

// ReadyCheck gates the startup run: it only fires once the backing store
// answers.
type ReadyCheck func(ctx context.Context) error

// Scheduler wraps robfig/cron and manages the twice-daily trigger loop.
type Scheduler struct {
	cron         *cron.Cron
	engine       *alerts.Engine
	ready        ReadyCheck
	morningSpec  string // cron spec, e.g. "0 10 * * *"
	eveningSpec  string // cron spec, e.g. "0 22 * * *"
	startupDelay time.Duration
	logger       *slog.Logger
}

// New creates a Scheduler firing at the given cron specs.
func New(engine *alerts.Engine, ready ReadyCheck, morningSpec, eveningSpec string, startupDelay time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		engine:       engine,
		ready:        ready,
		morningSpec:  morningSpec,
		eveningSpec:  eveningSpec,
		startupDelay: startupDelay,
		logger:       logger,
	}
}

// Start registers both daily entries and starts the scheduler. A single
// delayed run also fires shortly after startup, but only when the store
// connection is confirmed ready; a routine run outside the notification
// windows is a no-op anyway, so this costs nothing on off-hours restarts.
func (s *Scheduler) Start(ctx context.Context) error {
	for _, spec := range []string{s.morningSpec, s.eveningSpec} {
		if _, err := s.cron.AddFunc(spec, func() { s.run(ctx) }); err != nil {
			return fmt.Errorf("cron.AddFunc(%q): %w", spec, err)
		}
	}

	s.cron.Start()
	s.logger.Info("alert scheduler started",
		"morning", s.morningSpec, "evening", s.eveningSpec)

	go s.startupRun(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("alert scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	result := s.engine.Trigger(ctx, time.Time{})
	s.logger.Info("scheduled trigger finished",
		"jobs_processed", result.JobsProcessed,
		"notifications_sent", result.NotificationsSent,
		"users_notified", result.UsersNotified)
}

// startupRun fires one trigger a fixed delay after boot, catching a window
// the process may have slept through. Skipped when the store is not ready.
func (s *Scheduler) startupRun(ctx context.Context) {
	select {
	case <-time.After(s.startupDelay):
	case <-ctx.Done():
		return
	}

	if err := s.ready(ctx); err != nil {
		s.logger.Warn("skipping startup trigger, store not ready", "error", err)
		return
	}

	s.logger.Info("running startup trigger", "delay", s.startupDelay)
	s.run(ctx)
}
