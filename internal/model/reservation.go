package model

import "time"

// Reservation statuses. Cancellation flips the status instead of deleting
// the row so the admin view keeps history until the purge removes it.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// Reservation records a customer's booking of a single slot.
// Dates are ISO calendar dates ("2006-01-02") and times are wall-clock
// "HH:MM" strings, both in the shop's timezone.
//
// Fields:
//
//	ID        - primary key identifier.
//	FullName  - customer name as entered, trimmed.
//	Date      - calendar date of the slot.
//	StartTime - slot start, "HH:MM".
//	EndTime   - slot end, StartTime plus the configured slot duration.
//	Code      - unique 6-character uppercase alphanumeric lookup code.
//	Status    - active or cancelled.
//	CreatedAt - insertion timestamp.
type Reservation struct {
	ID        int64     // reservations.id
	FullName  string    // reservations.full_name
	Date      string    // reservations.date
	StartTime string    // reservations.start_time
	EndTime   string    // reservations.end_time
	Code      string    // reservations.reservation_code
	Status    string    // reservations.status
	CreatedAt time.Time // reservations.created_at
}

// RestDay marks a calendar date as administratively closed. No slots are
// bookable on a rest day and marking one deletes its reservations.
type RestDay struct {
	ID        int64     // rest_days.id
	Date      string    // rest_days.date
	CreatedAt time.Time // rest_days.created_at
}
