package alerts

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// UserSource loads users who may receive alerts: notifications enabled and
// at least one declared skill or interest.
type UserSource interface {
	FindNotifiableUsers(ctx context.Context) ([]UserProfile, error)
}

// JobSource loads the postings eligible for matching, excluding sentinel
// test postings.
type JobSource interface {
	FindActiveJobs(ctx context.Context) ([]JobPosting, error)
}

// HealthChecker answers whether the backing store is reachable. A trigger
// fails soft to a zero result when it is not.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Engine is the trigger coordinator: the public entry point orchestrating
// window policy, the daily tracker, matching, and dispatch over the full
// user and job catalog.
//
// Trigger is guarded by a mutex so an overlapping cron run and manual run
// cannot both pass the tracker's check for the same user in the same window.
type Engine struct {
	mu         sync.Mutex
	users      UserSource
	jobs       JobSource
	health     HealthChecker
	tracker    Tracker
	dispatcher *Dispatcher
	now        func() time.Time
	logger     *slog.Logger
}

// NewEngine wires an Engine. `now` may be nil, defaulting to time.Now;
// tests inject a fixed clock instead.
func NewEngine(users UserSource, jobs JobSource, health HealthChecker, tracker Tracker, dispatcher *Dispatcher, now func() time.Time, logger *slog.Logger) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		users:      users,
		jobs:       jobs,
		health:     health,
		tracker:    tracker,
		dispatcher: dispatcher,
		now:        now,
		logger:     logger,
	}
}

// Trigger runs one notification cycle and returns aggregate statistics.
// A zero `since` defaults to a 24-hour lookback, as used by the scheduler;
// an explicitly older `since` marks the run as a forced backfill.
//
// Trigger never panics or returns an error: any failure degrades to a
// zero-valued result with a logged diagnostic, so a scheduler loop calling
// it repeatedly is never killed by one bad run.
func (e *Engine) Trigger(ctx context.Context, since time.Time) (result TriggerResult) {
	e.mu.Lock()
	defer e.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("trigger panicked, returning zero result", "panic", r)
			result = TriggerResult{}
		}
	}()

	now := e.now()
	if since.IsZero() {
		since = now.Add(-DefaultLookback)
	}

	if err := e.health.HealthCheck(ctx); err != nil {
		e.logger.Warn("store unavailable, skipping trigger", "error", err)
		return TriggerResult{}
	}

	e.tracker.ResetIfNewDay(now)

	window := ClassifyWindow(now)
	forced := IsForced(since, now)
	if !forced && window == WindowOutside {
		e.logger.Info("outside notification windows, nothing to do", "hour", now.Hour())
		return TriggerResult{}
	}

	users, err := e.users.FindNotifiableUsers(ctx)
	if err != nil {
		e.logger.Warn("loading notifiable users failed", "error", err)
		return TriggerResult{}
	}
	jobs, err := e.jobs.FindActiveJobs(ctx)
	if err != nil {
		e.logger.Warn("loading active jobs failed", "error", err)
		return TriggerResult{}
	}
	jobs = excludeSentinels(jobs)
	if len(users) == 0 || len(jobs) == 0 {
		e.logger.Info("no eligible users or jobs", "users", len(users), "jobs", len(jobs))
		return TriggerResult{}
	}

	e.logger.Info("trigger cycle started",
		"window", window.String(), "forced", forced,
		"users", len(users), "jobs", len(jobs))

	notifiedUsers := make(map[string]struct{})
	processedJobs := make(map[string]struct{})
	sent := 0

	// Sequential on purpose: the dispatcher's throttle spaces out sends,
	// and parallel users would defeat it.
	for _, user := range users {
		if !HasMatchableProfile(user) {
			continue
		}

		if forced {
			// Forced runs send regardless of tracker state but still
			// record it, so a later routine run stays gated.
			e.tracker.MarkNotified(ctx, user.ID, window)
		} else if !e.tracker.ShouldNotify(ctx, user.ID, window) {
			continue
		}

		candidates := Match(user, jobs)
		outcome := e.dispatcher.Dispatch(ctx, user, candidates)
		if outcome.Job != nil {
			processedJobs[outcome.Job.ID] = struct{}{}
		}
		if outcome.Sent {
			sent++
			notifiedUsers[user.ID] = struct{}{}
		}
	}

	result = TriggerResult{
		JobsProcessed:     len(processedJobs),
		NotificationsSent: sent,
		UsersNotified:     len(notifiedUsers),
	}
	e.logger.Info("trigger cycle complete",
		"jobs_processed", result.JobsProcessed,
		"notifications_sent", result.NotificationsSent,
		"users_notified", result.UsersNotified)
	return result
}

// excludeSentinels drops synthetic test postings. The job store's query
// already filters them; this covers sources that do not.
func excludeSentinels(jobs []JobPosting) []JobPosting {
	out := make([]JobPosting, 0, len(jobs))
	for _, j := range jobs {
		if j.Title == SentinelTitle {
			continue
		}
		out = append(out, j)
	}
	return out
}
