package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreparedStatementsComplete(t *testing.T) {
	for _, name := range []string{"health_check", "find_notifiable_users", "find_user", "find_active_jobs"} {
		assert.Contains(t, preparedStatements, name)
	}
}

func TestNotifiableUsersTreatsUnsetAsEnabled(t *testing.T) {
	// Users who never touched the notification toggle still get alerts; only
	// an explicit opt-out excludes them, so the filter must be NULL-safe.
	sql, ok := preparedStatements["find_notifiable_users"]
	require.True(t, ok)
	assert.Contains(t, sql, "notifications_enabled IS DISTINCT FROM false")
}
