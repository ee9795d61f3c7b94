package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHours = Hours{OpenHour: 9, CloseHour: 20, SlotMinutes: 25}

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestDaySlots_FullDay(t *testing.T) {
	// A future date relative to "now": no time filtering applies.
	now := date(2025, time.January, 6, 10, 0)
	slots := DaySlots(testHours, date(2025, time.January, 8, 0, 0), now)

	// 11 hours at 25 minutes per slot: 26 whole slots fit.
	require.Len(t, slots, 26)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "09:25", slots[0].EndTime)
	assert.Equal(t, "09:00 - 09:25", slots[0].Display)
	assert.Equal(t, "19:25", slots[25].StartTime)
	assert.Equal(t, "19:50", slots[25].EndTime)

	for _, s := range slots {
		assert.True(t, s.IsAvailable)
		assert.LessOrEqual(t, s.EndTime, "20:00")
	}
}

func TestDaySlots_NoTruncatedSlot(t *testing.T) {
	// 25 does not divide 660 evenly; the generator must stop at 19:50
	// rather than emit a slot ending past 20:00.
	now := date(2025, time.January, 6, 10, 0)
	slots := DaySlots(testHours, date(2025, time.January, 8, 0, 0), now)
	last := slots[len(slots)-1]
	assert.Equal(t, "19:50", last.EndTime)
}

func TestDaySlots_EvenDivision(t *testing.T) {
	h := Hours{OpenHour: 9, CloseHour: 20, SlotMinutes: 30}
	now := date(2025, time.January, 6, 10, 0)
	slots := DaySlots(h, date(2025, time.January, 8, 0, 0), now)
	require.Len(t, slots, 22)
	assert.Equal(t, "19:30", slots[21].StartTime)
	assert.Equal(t, "20:00", slots[21].EndTime)
}

func TestDaySlots_TodayDropsElapsed(t *testing.T) {
	now := date(2025, time.January, 6, 12, 10)
	slots := DaySlots(testHours, date(2025, time.January, 6, 0, 0), now)

	// Slots ending at or before 12:10 are gone; 11:55-12:20 is the first
	// survivor because part of it is still in the future.
	require.NotEmpty(t, slots)
	assert.Equal(t, "11:55", slots[0].StartTime)
	for _, s := range slots {
		assert.Greater(t, s.EndTime, "12:10")
	}
}

func TestDaySlots_EndEqualsNowIsElapsed(t *testing.T) {
	now := date(2025, time.January, 6, 9, 25)
	slots := DaySlots(testHours, date(2025, time.January, 6, 0, 0), now)
	require.NotEmpty(t, slots)
	assert.Equal(t, "09:25", slots[0].StartTime)
}

func TestLastSlotStart(t *testing.T) {
	assert.Equal(t, 19*60+25, LastSlotStart(testHours))
	assert.Equal(t, 19*60+30, LastSlotStart(Hours{OpenHour: 9, CloseHour: 20, SlotMinutes: 30}))
	assert.Equal(t, -1, LastSlotStart(Hours{OpenHour: 9, CloseHour: 9, SlotMinutes: 25}))
}
