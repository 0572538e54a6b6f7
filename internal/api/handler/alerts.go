package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/jobpulse/jobpulse-api/internal/api/respond"
)

// triggerRequest is the optional body of a manual trigger call.
type triggerRequest struct {
	// Since bounds the lookback horizon. A value older than two days
	// marks the run as a forced backfill that bypasses window gating.
	Since *time.Time `json:"since,omitempty"`
}

// TriggerAlerts runs one notification cycle synchronously and returns its
// aggregate statistics. The engine itself never fails; a malformed body is
// the only client error.
// @Summary Trigger a job-alert cycle
// @Description Runs the alert engine once. An optional `since` timestamp older than 48h marks the run as a forced backfill.
// @Tags alerts
// @Accept json
// @Produce json
// @Param request body triggerRequest false "Optional lookback horizon"
// @Success 200 {object} alerts.TriggerResult
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/alerts/trigger [post]
func (h *Handler) TriggerAlerts(w http.ResponseWriter, r *http.Request) {
	var since time.Time

	var req triggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Body must be JSON with an optional RFC3339 `since` field")
		return
	}
	if req.Since != nil {
		since = *req.Since
	}

	// Query param alternative for curl-friendly manual runs.
	if s := r.URL.Query().Get("since"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_SINCE", "`since` must be an RFC3339 timestamp")
			return
		}
		since = t
	}

	result := h.trigger.Trigger(r.Context(), since)
	respond.WriteJSONObject(w, http.StatusOK, result)
}
