package alerts

import (
	"context"
	"sync"
	"time"
)

// Tracker records, per user and per calendar day, which notification windows
// have already produced an email. It is the one piece of shared mutable
// state in the subsystem: the cron scheduler and the admin API share a
// single instance.
//
// Implementations are pure bookkeeping and must not make a user eligible
// twice for the same window on the same day.
type Tracker interface {
	// ShouldNotify returns true and marks the window used for userID, but
	// only if that window was still unused today. Outside-window calls
	// always return false.
	ShouldNotify(ctx context.Context, userID string, w Window) bool

	// MarkNotified records the window as used without checking it first.
	// Forced runs bypass the ShouldNotify gate but still call this, so a
	// later routine run that day is correctly suppressed.
	MarkNotified(ctx context.Context, userID string, w Window)

	// ResetIfNewDay drops all entries when the calendar day has changed
	// since the last reset.
	ResetIfNewDay(now time.Time)
}

// --------------------------------------------------------------------------
// In-memory tracker
// --------------------------------------------------------------------------

type trackerEntry struct {
	morning bool
	evening bool
}

// MemoryTracker is the single-process Tracker. State lives for the lifetime
// of the process and is wiped on the first call that observes a new day.
type MemoryTracker struct {
	mu      sync.Mutex
	entries map[string]trackerEntry
	day     string // calendar day of the last reset, "2006-01-02"
}

// NewMemoryTracker creates an empty tracker anchored to the given time's day.
func NewMemoryTracker(now time.Time) *MemoryTracker {
	return &MemoryTracker{
		entries: make(map[string]trackerEntry),
		day:     now.Format(time.DateOnly),
	}
}

// ShouldNotify implements Tracker.
func (t *MemoryTracker) ShouldNotify(_ context.Context, userID string, w Window) bool {
	if w == WindowOutside {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entries[userID]
	switch w {
	case WindowMorning:
		if e.morning {
			return false
		}
		e.morning = true
	case WindowEvening:
		if e.evening {
			return false
		}
		e.evening = true
	}
	t.entries[userID] = e
	return true
}

// MarkNotified implements Tracker.
func (t *MemoryTracker) MarkNotified(_ context.Context, userID string, w Window) {
	if w == WindowOutside {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entries[userID]
	switch w {
	case WindowMorning:
		e.morning = true
	case WindowEvening:
		e.evening = true
	}
	t.entries[userID] = e
}

// ResetIfNewDay implements Tracker. The comparison is by calendar day, so a
// process that slept across several midnights still resets exactly once.
func (t *MemoryTracker) ResetIfNewDay(now time.Time) {
	day := now.Format(time.DateOnly)

	t.mu.Lock()
	defer t.mu.Unlock()

	if day != t.day {
		t.entries = make(map[string]trackerEntry)
		t.day = day
	}
}

// Len returns the number of tracked users. Used by health reporting.
func (t *MemoryTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
