// Package alerts implements the job-alert notification engine: the component
// that decides which users should receive an email about which newly-relevant
// job posting.
//
// Pipeline: window gate → load users/jobs → per-user daily dedup → skill
// matching → throttled email dispatch → aggregate stats. A trigger is fired
// either by the cron scheduler (twice daily) or synchronously from the admin
// API; both paths share one Engine and one Tracker.
package alerts

import "time"

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	// Local-hour bands for the two daily notification windows.
	morningStartHour = 9
	morningEndHour   = 11 // inclusive
	eveningStartHour = 21
	eveningEndHour   = 23 // inclusive

	// A lookback horizon older than this marks a trigger as a forced
	// backfill run, bypassing window gating.
	forcedLookback = 48 * time.Hour

	// Default lookback for routine scheduler-driven triggers.
	DefaultLookback = 24 * time.Hour
)

// SentinelTitle marks synthetic test postings. Postings with this exact
// title are excluded from matching and from all statistics.
const SentinelTitle = "Test Position"

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// UserProfile is the slice of the user record this subsystem reads.
// Owned by the external user store; never mutated here.
type UserProfile struct {
	ID        string
	Name      string
	Email     string
	Skills    []string
	Interests []string
}

// JobPosting is the slice of the job record this subsystem reads.
// Owned by the external job store; never mutated here.
type JobPosting struct {
	ID        string
	Title     string
	Company   string
	Skills    []string
	CreatedAt time.Time
}

// TriggerResult holds the aggregate statistics of one trigger invocation.
type TriggerResult struct {
	JobsProcessed     int `json:"jobs_processed"`
	NotificationsSent int `json:"notifications_sent"`
	UsersNotified     int `json:"users_notified"`
}

// Outcome reports what the dispatcher did for a single user.
type Outcome struct {
	Sent             bool
	Job              *JobPosting
	MatchedSkills    []string
	MatchedInterests []string
}
