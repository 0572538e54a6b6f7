package alerts

import "time"

// Window is one of the two daily time bands during which routine
// notification checks are allowed to fire.
type Window int

const (
	WindowOutside Window = iota
	WindowMorning
	WindowEvening
)

// String returns the window name for logging.
func (w Window) String() string {
	switch w {
	case WindowMorning:
		return "morning"
	case WindowEvening:
		return "evening"
	default:
		return "outside"
	}
}

// ClassifyWindow maps a timestamp onto a notification window using fixed
// local-hour bands: 9–11 is morning, 21–23 is evening, anything else is
// outside. Pure; the hour is read from the location the timestamp carries.
func ClassifyWindow(t time.Time) Window {
	switch h := t.Hour(); {
	case h >= morningStartHour && h <= morningEndHour:
		return WindowMorning
	case h >= eveningStartHour && h <= eveningEndHour:
		return WindowEvening
	default:
		return WindowOutside
	}
}

// IsForced reports whether a trigger with the given lookback horizon is an
// explicit backfill run. A `since` older than two days before `now` cannot
// come from the routine twice-daily schedule, so such runs bypass window
// gating for every user.
func IsForced(since, now time.Time) bool {
	return since.Before(now.Add(-forcedLookback))
}
