// Command alertctl is the JobPulse alert administration CLI.
//
// Usage:
//
//	alertctl trigger
//	alertctl trigger --since 2026-08-20T00:00:00Z
//	alertctl trigger --dry-run
//	alertctl preview --user 42
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/jobpulse/jobpulse-api/internal/alerts"
	"github.com/jobpulse/jobpulse-api/internal/config"
	"github.com/jobpulse/jobpulse-api/internal/db"
	"github.com/jobpulse/jobpulse-api/internal/mail"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "alertctl",
		Short: "JobPulse alert administration CLI",
	}

	root.AddCommand(triggerCmd())
	root.AddCommand(previewCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// trigger command
// --------------------------------------------------------------------------

func triggerCmd() *cobra.Command {
	var (
		sinceStr string
		dryRun   bool
	)
	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Run one alert cycle (an old --since forces a backfill)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var since time.Time
			if sinceStr != "" {
				t, err := time.Parse(time.RFC3339, sinceStr)
				if err != nil {
					return fmt.Errorf("--since must be RFC3339: %w", err)
				}
				since = t
			}

			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				store := alerts.NewStore(pool.Pool)

				// The CLI must mark the same tracker the server reads, or a
				// manual run can double-mail users the server already covered.
				var rdb *redis.Client
				if cfg.RedisURL != "" {
					var err error
					rdb, err = db.NewRedisClient(ctx, cfg.RedisURL)
					if err != nil {
						return fmt.Errorf("connect to redis: %w", err)
					}
					defer rdb.Close()
				} else {
					logger.Warn("REDIS_URL not set; this run cannot see sends already made by a running server")
				}
				tracker := alerts.SelectTracker(rdb, time.Now(), logger)

				var sender alerts.EmailSender
				if dryRun {
					sender = dryRunSender{}
				} else {
					sender = mail.NewSender(mail.Config{
						SMTPServer: cfg.SMTPServer,
						SMTPPort:   cfg.SMTPPort,
						SMTPUser:   cfg.SMTPUser,
						SMTPPass:   cfg.SMTPPass,
						FromEmail:  cfg.SMTPFrom,
						Enabled:    cfg.EmailEnabled,
					}, logger)
				}

				dispatcher := alerts.NewDispatcher(sender, cfg.AlertSendInterval, nil, logger)
				engine := alerts.NewEngine(store, store, store, tracker, dispatcher, nil, logger)

				start := time.Now()
				result := engine.Trigger(ctx, since)
				logger.Info("trigger finished",
					"duration", time.Since(start).Round(time.Second),
					"jobs_processed", result.JobsProcessed,
					"notifications_sent", result.NotificationsSent,
					"users_notified", result.UsersNotified)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&sinceStr, "since", "", "Lookback horizon (RFC3339); older than 48h forces a backfill")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log sends instead of emailing")
	return cmd
}

// dryRunSender logs what would have been sent.
type dryRunSender struct{}

func (dryRunSender) SendJobAlert(_ context.Context, user alerts.UserProfile, job alerts.JobPosting, matchedSkills, _ []string) error {
	logger.Info("dry-run send",
		"to", user.Email, "job", job.Title,
		"matched_skills", strings.Join(matchedSkills, ", "))
	return nil
}

// --------------------------------------------------------------------------
// preview command
// --------------------------------------------------------------------------

func previewCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show a user's matching jobs without sending anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return fmt.Errorf("--user is required")
			}
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				store := alerts.NewStore(pool.Pool)

				user, err := store.FindUser(ctx, userID)
				if err != nil {
					return err
				}
				jobs, err := store.FindActiveJobs(ctx)
				if err != nil {
					return err
				}

				matched := alerts.Match(user, jobs)
				if len(matched) == 0 {
					fmt.Printf("No matching jobs for %s (%s)\n", user.Name, user.Email)
					return nil
				}

				fmt.Printf("%d matching job(s) for %s (%s):\n", len(matched), user.Name, user.Email)
				for _, job := range matched {
					skills := alerts.MatchedSkills(user, job)
					fmt.Printf("  - %s", job.Title)
					if job.Company != "" {
						fmt.Printf(" @ %s", job.Company)
					}
					fmt.Printf("  [%s]\n", strings.Join(skills, ", "))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User ID to preview")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// run handles config loading, DB connection, and context cancellation.
func run(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
