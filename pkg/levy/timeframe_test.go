package levy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveRange_WeekStartsSunday(t *testing.T) {
	// Wednesday 2026-03-11.
	now := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)
	r := ResolveRange(TimeFrameThisWeek, now, time.Time{}, time.Time{})

	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Sunday, r.Start.Weekday())
	assert.Equal(t, now, r.End)
}

func TestResolveRange_WeekStartOnSundayIsSameDay(t *testing.T) {
	now := time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC) // a Sunday
	r := ResolveRange(TimeFrameThisWeek, now, time.Time{}, time.Time{})
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), r.Start)
}

func TestResolveRange_Presets(t *testing.T) {
	now := time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		tf        TimeFrame
		wantStart time.Time
		wantEnd   time.Time
	}{
		{TimeFrameToday, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), now},
		{TimeFrameLast7Days, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), now},
		{TimeFrameThisMonth, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), now},
		{TimeFrameThisYear, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), now},
		{TimeFrameLastSixMonths, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), now},
	}
	for _, tt := range tests {
		t.Run(string(tt.tf), func(t *testing.T) {
			r := ResolveRange(tt.tf, now, time.Time{}, time.Time{})
			assert.Equal(t, tt.wantStart, r.Start)
			assert.Equal(t, tt.wantEnd, r.End)
			assert.True(t, r.IsPreset)
		})
	}
}

func TestResolveRange_YesterdayAndLastMonthExcludeCurrent(t *testing.T) {
	now := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)

	y := ResolveRange(TimeFrameYesterday, now, time.Time{}, time.Time{})
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), y.Start)
	assert.True(t, y.End.Before(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)))

	lm := ResolveRange(TimeFrameLastMonth, now, time.Time{}, time.Time{})
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), lm.Start)
	assert.True(t, lm.End.Before(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestResolveRange_CustomKeepsBounds(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	r := ResolveRange(TimeFrameCustom, time.Now(), start, end)
	assert.Equal(t, start, r.Start)
	assert.Equal(t, end, r.End)
	assert.False(t, r.IsPreset)
}

func TestResolveRange_UnknownFrameFallsBackToThisYear(t *testing.T) {
	now := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)
	r := ResolveRange(TimeFrame("Bogus"), now, time.Time{}, time.Time{})
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, now, r.End)
}

func TestYearRange(t *testing.T) {
	r := YearRange(2025, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.True(t, r.End.Before(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025", r.Label)
	assert.Equal(t, GranularityMonth, r.Granularity)
}
