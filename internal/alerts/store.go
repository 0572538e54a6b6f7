package alerts

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store reads user and job records from Postgres. It implements UserSource,
// JobSource, and HealthChecker over prepared statements registered by the
// db package. Read-only: the engine never writes back to either table.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store on the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// FindNotifiableUsers implements UserSource: users with notifications
// enabled and at least one skill or interest.
func (s *Store) FindNotifiableUsers(ctx context.Context) ([]UserProfile, error) {
	rows, err := s.pool.Query(ctx, "find_notifiable_users")
	if err != nil {
		return nil, fmt.Errorf("find notifiable users: %w", err)
	}
	defer rows.Close()

	var users []UserProfile
	for rows.Next() {
		var u UserProfile
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Skills, &u.Interests); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// FindActiveJobs implements JobSource: all postings except sentinel test
// postings, newest first.
func (s *Store) FindActiveJobs(ctx context.Context) ([]JobPosting, error) {
	rows, err := s.pool.Query(ctx, "find_active_jobs", SentinelTitle)
	if err != nil {
		return nil, fmt.Errorf("find active jobs: %w", err)
	}
	defer rows.Close()

	var jobs []JobPosting
	for rows.Next() {
		var j JobPosting
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Skills, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// FindUser loads a single user by id. Used by the admin CLI's preview.
func (s *Store) FindUser(ctx context.Context, userID string) (UserProfile, error) {
	var u UserProfile
	err := s.pool.QueryRow(ctx, "find_user", userID).
		Scan(&u.ID, &u.Name, &u.Email, &u.Skills, &u.Interests)
	if err != nil {
		return UserProfile{}, fmt.Errorf("find user %s: %w", userID, err)
	}
	return u, nil
}

// HealthCheck implements HealthChecker.
func (s *Store) HealthCheck(ctx context.Context) error {
	var n int
	return s.pool.QueryRow(ctx, "health_check").Scan(&n)
}
