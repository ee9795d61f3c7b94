package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"berberi/internal/queue"
)

func TestEnabled(t *testing.T) {
	assert.False(t, NewTelegram("", "").Enabled())
	assert.False(t, NewTelegram("token", "").Enabled())
	assert.False(t, NewTelegram("", "chat").Enabled())
	assert.True(t, NewTelegram("token", "chat").Enabled())
}

func TestSendDisabledIsNoOp(t *testing.T) {
	err := NewTelegram("", "").Send(queue.ReservationEvent{Type: queue.EventCreated})
	assert.NoError(t, err)
}

func TestFormatMessageCreated(t *testing.T) {
	msg := formatMessage(queue.ReservationEvent{
		Type:      queue.EventCreated,
		Code:      "A1B2C3",
		FullName:  "Arben Hoxha",
		Date:      "2025-01-06",
		StartTime: "09:00",
		EndTime:   "09:25",
	})
	assert.Contains(t, msg, "New reservation")
	assert.Contains(t, msg, "Arben Hoxha")
	assert.Contains(t, msg, "2025-01-06")
	assert.Contains(t, msg, "09:00 - 09:25")
	assert.Contains(t, msg, "<code>A1B2C3</code>")
}

func TestFormatMessageCancelled(t *testing.T) {
	msg := formatMessage(queue.ReservationEvent{
		Type:      queue.EventCancelled,
		Code:      "A1B2C3",
		FullName:  "Arben Hoxha",
		Date:      "2025-01-06",
		StartTime: "09:00",
		EndTime:   "09:25",
	})
	assert.Contains(t, msg, "Reservation cancelled")
	assert.Contains(t, msg, "<code>A1B2C3</code>")
}

func TestFormatMessageChanged(t *testing.T) {
	msg := formatMessage(queue.ReservationEvent{
		Type:         queue.EventChanged,
		Code:         "A1B2C3",
		FullName:     "Arben Hoxha",
		Date:         "2025-01-07",
		StartTime:    "10:00",
		EndTime:      "10:25",
		OldDate:      "2025-01-06",
		OldStartTime: "09:00",
		OldEndTime:   "09:25",
	})
	assert.Contains(t, msg, "Reservation changed")
	assert.Contains(t, msg, "FROM:")
	assert.Contains(t, msg, "2025-01-06")
	assert.Contains(t, msg, "TO:")
	assert.Contains(t, msg, "2025-01-07")
}
