package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour int) time.Time {
	return time.Date(2026, 3, 5, hour, 30, 0, 0, time.UTC)
}

func TestClassifyWindow_Bands(t *testing.T) {
	cases := []struct {
		hour int
		want Window
	}{
		{0, WindowOutside},
		{8, WindowOutside},
		{9, WindowMorning},
		{10, WindowMorning},
		{11, WindowMorning},
		{12, WindowOutside},
		{15, WindowOutside},
		{20, WindowOutside},
		{21, WindowEvening},
		{22, WindowEvening},
		{23, WindowEvening},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyWindow(at(c.hour)), "hour %d", c.hour)
	}
}

func TestClassifyWindow_UsesLocalHour(t *testing.T) {
	// 10:00 in a +10h zone is midnight UTC; the window is decided by the
	// hour in the timestamp's own location.
	loc := time.FixedZone("UTC+10", 10*3600)
	assert.Equal(t, WindowMorning, ClassifyWindow(time.Date(2026, 3, 5, 10, 0, 0, 0, loc)))
}

func TestIsForced(t *testing.T) {
	now := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)

	assert.False(t, IsForced(now.Add(-24*time.Hour), now), "routine 24h lookback")
	assert.False(t, IsForced(now.Add(-47*time.Hour), now), "just inside the horizon")
	assert.True(t, IsForced(now.Add(-49*time.Hour), now), "older than two days")
	assert.True(t, IsForced(now.AddDate(0, 0, -10), now), "ten-day backfill")
}

func TestWindowString(t *testing.T) {
	assert.Equal(t, "morning", WindowMorning.String())
	assert.Equal(t, "evening", WindowEvening.String())
	assert.Equal(t, "outside", WindowOutside.String())
}
