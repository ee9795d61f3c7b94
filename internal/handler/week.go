package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"berberi/internal/schedule"
)

// WeekHandler serves the public calendar: the rolling window with per-day
// slot availability.
type WeekHandler struct {
	Hours        schedule.Hours
	Loc          *time.Location
	Reservations ReservationStore
	RestDays     RestDayStore
}

func NewWeekHandler(hours schedule.Hours, loc *time.Location, res ReservationStore, rest RestDayStore) *WeekHandler {
	return &WeekHandler{Hours: hours, Loc: loc, Reservations: res, RestDays: rest}
}

// GetWeek returns the current bookable window, every day's slots reconciled
// against stored reservations and rest days, and aggregate counts.
func (h *WeekHandler) GetWeek(c echo.Context) error {
	now := time.Now().In(h.Loc)
	week := schedule.CurrentWeek(h.Hours, now)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	reservations, err := h.Reservations.ListRange(ctx, week.StartDate, week.EndDate)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load the calendar")
	}
	restDays, err := h.RestDays.ListRange(ctx, week.StartDate, week.EndDate)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load the calendar")
	}

	views, meta := schedule.BuildWeekView(h.Hours, week, reservations, restDays, now)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"week": echo.Map{
			"startDate":  week.StartDate,
			"endDate":    week.EndDate,
			"weekNumber": week.WeekNumber,
			"year":       week.Year,
			"days":       views,
		},
		"meta": meta,
	})
}
