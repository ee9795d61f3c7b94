package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berberi/internal/schedule"
)

func TestHealth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, Health(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestBookingErrorMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{schedule.ErrBadDate, "invalid date, expected YYYY-MM-DD"},
		{schedule.ErrBadTime, "invalid start time, expected HH:MM"},
		{schedule.ErrOutsideWindow, "this date is outside the current booking week"},
		{schedule.ErrClosedDay, "the barbershop is closed on Sundays"},
		{schedule.ErrOutsideHours, "this time is outside working hours"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, bookingErrorMessage(tc.err))
	}
}

func TestFriendlyDate(t *testing.T) {
	assert.Equal(t, "Monday, 6 January 2025", friendlyDate("2025-01-06", time.UTC))
	assert.Equal(t, "Monday", dayName("2025-01-06", time.UTC))

	// Unparseable input falls back instead of panicking.
	assert.Equal(t, "nonsense", friendlyDate("nonsense", time.UTC))
	assert.Equal(t, "", dayName("nonsense", time.UTC))
}
