package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentWeek_SkipsSunday(t *testing.T) {
	// 2025-01-04 is a Saturday.
	now := date(2025, time.January, 4, 10, 0)
	w := CurrentWeek(testHours, now)

	require.Len(t, w.Days, 6)
	assert.Equal(t, "2025-01-04", w.Days[0].Date)
	assert.Equal(t, "2025-01-06", w.Days[1].Date) // Monday, Sunday skipped
	assert.Equal(t, "2025-01-04", w.StartDate)
	assert.Equal(t, "2025-01-10", w.EndDate)
	for _, d := range w.Days {
		assert.NotEqual(t, time.Sunday.String(), d.DayName)
	}
}

func TestCurrentWeek_TodayFlag(t *testing.T) {
	now := date(2025, time.January, 4, 10, 0)
	w := CurrentWeek(testHours, now)
	assert.True(t, w.Days[0].IsToday)
	for _, d := range w.Days[1:] {
		assert.False(t, d.IsToday)
	}
}

func TestCurrentWeek_CutoffShiftsWindow(t *testing.T) {
	// At 19:25 the last slot of the day has already started; Saturday is
	// no longer offered and the window begins on Monday.
	now := date(2025, time.January, 4, 19, 25)
	w := CurrentWeek(testHours, now)

	require.Len(t, w.Days, 6)
	assert.Equal(t, "2025-01-06", w.StartDate)
	assert.Equal(t, "2025-01-11", w.EndDate)
	for _, d := range w.Days {
		assert.False(t, d.IsToday)
	}
}

func TestCurrentWeek_BeforeCutoffKeepsToday(t *testing.T) {
	now := date(2025, time.January, 4, 19, 24)
	w := CurrentWeek(testHours, now)
	assert.Equal(t, "2025-01-04", w.StartDate)
}

func TestCurrentWeek_Metadata(t *testing.T) {
	now := date(2025, time.January, 6, 10, 0)
	w := CurrentWeek(testHours, now)

	assert.Equal(t, 2, w.WeekNumber) // ISO week of 2025-01-06
	assert.Equal(t, 2025, w.Year)
	assert.Equal(t, "Monday", w.Days[0].DayName)
	assert.Equal(t, "Mon", w.Days[0].DayShort)
	assert.Equal(t, "06", w.Days[0].DayNumber)
	assert.Equal(t, "January", w.Days[0].Month)
}

func TestWeekContains(t *testing.T) {
	now := date(2025, time.January, 4, 10, 0)
	w := CurrentWeek(testHours, now)

	assert.True(t, w.Contains("2025-01-04"))
	assert.True(t, w.Contains("2025-01-10"))
	assert.True(t, w.Contains("2025-01-05")) // Sunday is inside the range; rejected elsewhere
	assert.False(t, w.Contains("2025-01-03"))
	assert.False(t, w.Contains("2025-01-11"))
}
