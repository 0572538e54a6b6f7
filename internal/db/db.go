// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobpulse/jobpulse-api/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// preparedStatements is every statement the alert engine and API layer use.
// Prepared statements eliminate parse overhead on each run.
var preparedStatements = map[string]string{
	// Health
	"health_check": "SELECT 1",

	// Alerts: eligible users, meaning they have not opted out (NULL counts
	// as enabled) and have something to match on
	"find_notifiable_users": `
		SELECT id, name, email, skills, interests
		FROM users
		WHERE notifications_enabled IS DISTINCT FROM false
		  AND (cardinality(skills) > 0 OR cardinality(interests) > 0)
		ORDER BY created_at`,

	// Alerts: single user lookup (admin preview)
	"find_user": "SELECT id, name, email, skills, interests FROM users WHERE id = $1",

	// Alerts: active postings, sentinel test postings excluded
	"find_active_jobs": `
		SELECT id, title, company, skills, created_at
		FROM job_postings
		WHERE title <> $1
		ORDER BY created_at DESC`,
}

func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	for name, sql := range preparedStatements {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
