package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobpulse/jobpulse-api/internal/alerts"
	"github.com/jobpulse/jobpulse-api/internal/config"
)

// fakeTriggerer records the since it was invoked with.
type fakeTriggerer struct {
	calls  int
	since  time.Time
	result alerts.TriggerResult
}

func (f *fakeTriggerer) Trigger(_ context.Context, since time.Time) alerts.TriggerResult {
	f.calls++
	f.since = since
	return f.result
}

func newTestHandler(trigger Triggerer) *Handler {
	return New(nil, trigger, &config.Config{})
}

func TestTriggerAlerts_NoBodyDefaults(t *testing.T) {
	fake := &fakeTriggerer{result: alerts.TriggerResult{JobsProcessed: 2, NotificationsSent: 3, UsersNotified: 3}}
	h := newTestHandler(fake)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/trigger", nil)
	rec := httptest.NewRecorder()
	h.TriggerAlerts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, fake.calls)
	assert.True(t, fake.since.IsZero(), "no since means the engine applies its default lookback")

	var result alerts.TriggerResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, fake.result, result)
}

func TestTriggerAlerts_BodySince(t *testing.T) {
	fake := &fakeTriggerer{}
	h := newTestHandler(fake)

	body := `{"since": "2026-08-20T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/trigger", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.TriggerAlerts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), fake.since.UTC())
}

func TestTriggerAlerts_QuerySince(t *testing.T) {
	fake := &fakeTriggerer{}
	h := newTestHandler(fake)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/trigger?since=2026-08-20T00:00:00Z", nil)
	rec := httptest.NewRecorder()
	h.TriggerAlerts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), fake.since.UTC())
}

func TestTriggerAlerts_InvalidBody(t *testing.T) {
	fake := &fakeTriggerer{}
	h := newTestHandler(fake)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/trigger", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.TriggerAlerts(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, fake.calls)
}

func TestTriggerAlerts_InvalidQuerySince(t *testing.T) {
	fake := &fakeTriggerer{}
	h := newTestHandler(fake)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/trigger?since=yesterday", nil)
	rec := httptest.NewRecorder()
	h.TriggerAlerts(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, fake.calls)
}

func TestRoot(t *testing.T) {
	h := newTestHandler(&fakeTriggerer{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Root(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "JobPulse Alert API")
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandler(&fakeTriggerer{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
