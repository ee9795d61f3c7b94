package schedule

import (
	"errors"
	"time"
)

// Validation errors for booking and change requests. Handlers translate
// these into 400 responses with user-facing messages.
var (
	ErrBadDate       = errors.New("invalid date")
	ErrBadTime       = errors.New("invalid start time")
	ErrOutsideWindow = errors.New("date outside the current week")
	ErrClosedDay     = errors.New("weekly closed day")
	ErrOutsideHours  = errors.New("slot outside business hours")
)

// CheckBookable validates a requested (date, startTime) against the current
// window and business hours and returns the computed end time. All checks
// run before any mutation is attempted; the storage uniqueness constraint
// remains the final arbiter for slot exclusivity.
func CheckBookable(h Hours, w Week, date, startTime string, loc *time.Location) (string, error) {
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return "", ErrBadDate
	}
	if !w.Contains(date) {
		return "", ErrOutsideWindow
	}
	if d.Weekday() == ClosedWeekday {
		return "", ErrClosedDay
	}
	start, err := clockToMinutes(startTime)
	if err != nil {
		return "", ErrBadTime
	}
	open := h.OpenHour * 60
	close := h.CloseHour * 60
	end := start + h.SlotMinutes
	if start < open || end > close {
		return "", ErrOutsideHours
	}
	return minutesToClock(end), nil
}
