// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into notifications.
package queue

// Reservation event types carried in ReservationEvent.Type.
const (
	EventCreated   = "created"
	EventCancelled = "cancelled"
	EventChanged   = "changed"
)

// ReservationEvent is published whenever a reservation is created,
// cancelled or moved. It carries enough information for downstream
// consumers to notify or log without querying the primary database. The
// Old* fields are set only for change events.
type ReservationEvent struct {
	Type         string `json:"type"`
	Code         string `json:"code"`
	FullName     string `json:"full_name"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	OldDate      string `json:"old_date,omitempty"`
	OldStartTime string `json:"old_start_time,omitempty"`
	OldEndTime   string `json:"old_end_time,omitempty"`
	OccurredAt   string `json:"occurred_at"`
}
