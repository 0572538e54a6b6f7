package alerts

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"
)

// EmailSender is the delivery collaborator. Implementations own their
// transport (SMTP in production); failures are transport or auth errors and
// are never fatal to a batch.
type EmailSender interface {
	SendJobAlert(ctx context.Context, user UserProfile, job JobPosting, matchedSkills, matchedInterests []string) error
}

// Dispatcher sends at most one job alert to one user per call, throttled to
// stay under the email provider's rate limit.
type Dispatcher struct {
	sender  EmailSender
	limiter *rate.Limiter
	rng     *rand.Rand
	logger  *slog.Logger
}

// NewDispatcher creates a Dispatcher. sendInterval is the minimum spacing
// between consecutive sends; zero or negative disables throttling. Pass a
// seeded rng for deterministic job selection in tests; nil uses a
// time-seeded source.
func NewDispatcher(sender EmailSender, sendInterval time.Duration, rng *rand.Rand, logger *slog.Logger) *Dispatcher {
	var limiter *rate.Limiter
	if sendInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(sendInterval), 1)
		// Every send waits, the first included: drain the initial token.
		limiter.ReserveN(time.Now(), 1)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &Dispatcher{
		sender:  sender,
		limiter: limiter,
		rng:     rng,
		logger:  logger,
	}
}

// Dispatch picks one job uniformly at random from the candidates, computes
// the matched skill and interest sets for the email body, waits out the
// throttle, and hands the alert to the sender. A send failure is logged and
// reported as Sent=false — one user's failure never aborts the batch.
func (d *Dispatcher) Dispatch(ctx context.Context, user UserProfile, candidates []JobPosting) Outcome {
	if len(candidates) == 0 {
		return Outcome{}
	}

	// Uniform random pick: variety across runs is intentional, this is
	// not a ranking system.
	job := candidates[d.rng.IntN(len(candidates))]

	outcome := Outcome{
		Job:              &job,
		MatchedSkills:    MatchedSkills(user, job),
		MatchedInterests: MatchedInterests(user, job),
	}

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			d.logger.Warn("send throttle interrupted",
				"user_id", user.ID, "error", err)
			return outcome
		}
	}

	if err := d.sender.SendJobAlert(ctx, user, job, outcome.MatchedSkills, outcome.MatchedInterests); err != nil {
		d.logger.Warn("job alert send failed",
			"user_id", user.ID, "job_id", job.ID, "error", err)
		return outcome
	}

	outcome.Sent = true
	return outcome
}
