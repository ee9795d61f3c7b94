// Package schedule holds the calendar core of the booking system: slot
// generation over business hours, the rolling week window and the
// reconciliation of generated slots against stored reservations. Everything
// here is a pure function of its inputs; "now" is always passed in so the
// logic stays testable.
package schedule

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// TimeLayout is the wire format for wall-clock slot times.
const TimeLayout = "15:04"

// ClosedWeekday is the fixed weekly closed day. The shop never opens on
// Sundays regardless of administrative rest days.
const ClosedWeekday = time.Sunday

// Hours describes the bookable day: opening and closing hour (whole hours)
// and the fixed slot duration in minutes. Values come from configuration;
// the historical defaults are 09:00-20:00 with 25-minute slots.
type Hours struct {
	OpenHour    int
	CloseHour   int
	SlotMinutes int
}

// ReservedInfo annotates a taken slot with the owning reservation.
type ReservedInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Slot is one fixed-duration bookable interval on a given date.
type Slot struct {
	Date        string        `json:"date"`
	StartTime   string        `json:"startTime"`
	EndTime     string        `json:"endTime"`
	Display     string        `json:"display"`
	IsAvailable bool          `json:"isAvailable"`
	Reserved    *ReservedInfo `json:"reserved"`
}

// DaySlots generates the ordered slot sequence for one calendar date. Slots
// step from opening time in fixed increments; generation stops before any
// slot whose end would pass closing time, so the sequence never contains a
// truncated slot. When date is the same day as now, slots whose end time is
// at or before now are dropped: a slot stays bookable while any part of it
// is still in the future.
func DaySlots(h Hours, date, now time.Time) []Slot {
	open := h.OpenHour * 60
	close := h.CloseHour * 60
	today := sameDay(date, now)
	nowMin := now.Hour()*60 + now.Minute()
	ds := date.Format(DateLayout)

	slots := make([]Slot, 0, (close-open)/h.SlotMinutes)
	for start := open; start+h.SlotMinutes <= close; start += h.SlotMinutes {
		end := start + h.SlotMinutes
		if today && end <= nowMin {
			continue
		}
		slots = append(slots, Slot{
			Date:        ds,
			StartTime:   minutesToClock(start),
			EndTime:     minutesToClock(end),
			Display:     minutesToClock(start) + " - " + minutesToClock(end),
			IsAvailable: true,
		})
	}
	return slots
}

// LastSlotStart returns the start of the day's final slot in minutes since
// midnight, or -1 when the hours admit no slot at all. Once the current
// time reaches this point, today stops being offered in the week window.
func LastSlotStart(h Hours) int {
	open := h.OpenHour * 60
	close := h.CloseHour * 60
	n := (close - open) / h.SlotMinutes
	if n <= 0 {
		return -1
	}
	return open + (n-1)*h.SlotMinutes
}

func minutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// clockToMinutes parses "HH:MM" into minutes since midnight.
func clockToMinutes(s string) (int, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
