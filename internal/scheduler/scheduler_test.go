package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobpulse/jobpulse-api/internal/alerts"
)

type emptyCatalog struct{}

func (emptyCatalog) FindNotifiableUsers(context.Context) ([]alerts.UserProfile, error) {
	return nil, nil
}
func (emptyCatalog) FindActiveJobs(context.Context) ([]alerts.JobPosting, error) { return nil, nil }
func (emptyCatalog) HealthCheck(context.Context) error                           { return nil }

type nopSender struct{}

func (nopSender) SendJobAlert(context.Context, alerts.UserProfile, alerts.JobPosting, []string, []string) error {
	return nil
}

func testEngine() *alerts.Engine {
	logger := slog.New(slog.DiscardHandler)
	cat := emptyCatalog{}
	dispatcher := alerts.NewDispatcher(nopSender{}, 0, nil, logger)
	return alerts.NewEngine(cat, cat, cat, alerts.NewMemoryTracker(time.Now()), dispatcher, nil, logger)
}

func TestStart_InvalidCronSpec(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	ready := func(context.Context) error { return nil }
	s := New(testEngine(), ready, "not a cron spec", "0 22 * * *", time.Hour, logger)

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cron.AddFunc")
}

func TestStartAndStop(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	ready := func(context.Context) error { return nil }
	s := New(testEngine(), ready, "0 10 * * *", "0 22 * * *", time.Hour, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	s.Stop()
}

func TestStartupRun_SkippedWhenStoreNotReady(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	var readyCalls atomic.Int32
	ready := func(context.Context) error {
		readyCalls.Add(1)
		return errors.New("store down")
	}
	s := New(testEngine(), ready, "0 10 * * *", "0 22 * * *", time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Start(ctx))
	defer s.Stop()

	assert.Eventually(t, func() bool { return readyCalls.Load() == 1 },
		time.Second, 5*time.Millisecond, "the startup run probes readiness once")
}
