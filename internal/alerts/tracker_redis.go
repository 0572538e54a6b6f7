package alerts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTracker is a Tracker backed by Redis, for deployments running more
// than one API instance against the same user base. Keys are scoped to the
// calendar day and expire shortly after local midnight, so the daily reset
// needs no sweeper.
//
// On a Redis error ShouldNotify answers false: skipping a user for one cycle
// is preferred over double-mailing them.
type RedisTracker struct {
	rdb    *redis.Client
	prefix string
	now    func() time.Time
	logger *slog.Logger
}

// NewRedisTracker creates a tracker on the given client.
func NewRedisTracker(rdb *redis.Client, logger *slog.Logger) *RedisTracker {
	return &RedisTracker{
		rdb:    rdb,
		prefix: "alerts:notified",
		now:    time.Now,
		logger: logger,
	}
}

// SelectTracker picks the tracker implementation for a process: the shared
// Redis tracker when a client is available, otherwise an in-process one.
// Every binary that triggers alert runs must select the same way, or marks
// written by one process are invisible to the others.
func SelectTracker(rdb *redis.Client, now time.Time, logger *slog.Logger) Tracker {
	if rdb != nil {
		return NewRedisTracker(rdb, logger)
	}
	return NewMemoryTracker(now)
}

func (t *RedisTracker) key(userID string, w Window, now time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%s", t.prefix, now.Format(time.DateOnly), userID, w)
}

// untilNextMidnight returns the TTL that lets a key expire once the day it
// belongs to is over, plus a small grace period for clock drift.
func untilNextMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)
	return next.Sub(now) + 5*time.Minute
}

// ShouldNotify implements Tracker via SETNX on a day-scoped key.
func (t *RedisTracker) ShouldNotify(ctx context.Context, userID string, w Window) bool {
	if w == WindowOutside {
		return false
	}

	now := t.now()
	ok, err := t.rdb.SetNX(ctx, t.key(userID, w, now), 1, untilNextMidnight(now)).Result()
	if err != nil {
		t.logger.Warn("redis tracker check failed, skipping user this cycle",
			"user_id", userID, "window", w.String(), "error", err)
		return false
	}
	return ok
}

// MarkNotified implements Tracker.
func (t *RedisTracker) MarkNotified(ctx context.Context, userID string, w Window) {
	if w == WindowOutside {
		return
	}

	now := t.now()
	if err := t.rdb.Set(ctx, t.key(userID, w, now), 1, untilNextMidnight(now)).Err(); err != nil {
		t.logger.Warn("redis tracker mark failed",
			"user_id", userID, "window", w.String(), "error", err)
	}
}

// ResetIfNewDay implements Tracker. Day scoping plus TTLs make this a no-op:
// yesterday's keys are unreachable today and expire on their own.
func (t *RedisTracker) ResetIfNewDay(time.Time) {}
