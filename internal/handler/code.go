package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"berberi/internal/queue"
	"berberi/internal/repository"
	"berberi/internal/schedule"
)

// CodeHandler is the self-service surface: everything a visitor can do with
// a reservation code they already hold.
type CodeHandler struct {
	Hours        schedule.Hours
	Loc          *time.Location
	Reservations ReservationStore
	RestDays     RestDayStore
}

func NewCodeHandler(hours schedule.Hours, loc *time.Location, res ReservationStore, rest RestDayStore) *CodeHandler {
	return &CodeHandler{Hours: hours, Loc: loc, Reservations: res, RestDays: rest}
}

type codeRequest struct {
	Code string `json:"code"`
}

type changeRequest struct {
	Code         string `json:"code"`
	NewDate      string `json:"new_date"`
	NewStartTime string `json:"new_start_time"`
}

// Find looks up an active reservation by its code. Reservations whose date
// has slipped out of the current window answer 410 so the client can tell
// "expired" apart from "never existed".
func (h *CodeHandler) Find(c echo.Context) error {
	var req codeRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	code := repository.NormalizeCode(req.Code)
	if code == "" {
		return fail(c, http.StatusBadRequest, "please enter your reservation code")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	res, err := h.Reservations.GetActiveByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "no reservation found for this code")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not look up the reservation")
	}

	now := time.Now().In(h.Loc)
	week := schedule.CurrentWeek(h.Hours, now)
	if !week.Contains(res.Date) {
		return fail(c, http.StatusGone, "this reservation has expired")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"reservation": echo.Map{
			"code":      res.Code,
			"name":      res.FullName,
			"date":      res.Date,
			"startTime": res.StartTime,
			"endTime":   res.EndTime,
			"display":   res.StartTime + " - " + res.EndTime,
			"dayName":   dayName(res.Date, h.Loc),
			"fullDate":  friendlyDate(res.Date, h.Loc),
		},
	})
}

// Cancel releases the slot held by the code. The row is kept as history; the
// slot becomes bookable again immediately.
func (h *CodeHandler) Cancel(c echo.Context) error {
	var req codeRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	code := repository.NormalizeCode(req.Code)
	if code == "" {
		return fail(c, http.StatusBadRequest, "please enter your reservation code")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	res, err := h.Reservations.GetActiveByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "no reservation found for this code")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not cancel the reservation")
	}

	if err := h.Reservations.CancelByCode(ctx, code); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "no reservation found for this code")
		}
		return fail(c, http.StatusInternalServerError, "could not cancel the reservation")
	}

	publishEvent(queue.ReservationEvent{
		Type:       queue.EventCancelled,
		Code:       res.Code,
		FullName:   res.FullName,
		Date:       res.Date,
		StartTime:  res.StartTime,
		EndTime:    res.EndTime,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "reservation cancelled",
		"cancelledReservation": echo.Map{
			"code":      res.Code,
			"name":      res.FullName,
			"date":      res.Date,
			"startTime": res.StartTime,
		},
	})
}

// Change moves the reservation to a new slot while keeping its code. The new
// slot passes the same validation as a fresh booking; a pre-check gives a
// friendly conflict answer, the unique index settles races.
func (h *CodeHandler) Change(c echo.Context) error {
	var req changeRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	code := repository.NormalizeCode(req.Code)
	if code == "" || req.NewDate == "" || req.NewStartTime == "" {
		return fail(c, http.StatusBadRequest, "code, new date and new start time are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	orig, err := h.Reservations.GetActiveByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "no reservation found for this code")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not change the reservation")
	}

	now := time.Now().In(h.Loc)
	week := schedule.CurrentWeek(h.Hours, now)
	endTime, err := schedule.CheckBookable(h.Hours, week, req.NewDate, req.NewStartTime, h.Loc)
	if err != nil {
		return fail(c, http.StatusBadRequest, bookingErrorMessage(err))
	}

	closed, err := h.RestDays.Exists(ctx, req.NewDate)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not change the reservation")
	}
	if closed {
		return fail(c, http.StatusBadRequest, "the barbershop is closed on this day")
	}

	taken, err := h.Reservations.ActiveExistsAt(ctx, req.NewDate, req.NewStartTime, code)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not change the reservation")
	}
	if taken {
		return fail(c, http.StatusConflict, "this slot is already taken, please pick another one")
	}

	if err := h.Reservations.UpdateSlot(ctx, code, req.NewDate, req.NewStartTime, endTime); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotTaken):
			return fail(c, http.StatusConflict, "this slot has just been taken, please pick another one")
		case errors.Is(err, repository.ErrNotFound):
			return fail(c, http.StatusNotFound, "no reservation found for this code")
		default:
			return fail(c, http.StatusInternalServerError, "could not change the reservation")
		}
	}

	publishEvent(queue.ReservationEvent{
		Type:         queue.EventChanged,
		Code:         orig.Code,
		FullName:     orig.FullName,
		Date:         req.NewDate,
		StartTime:    req.NewStartTime,
		EndTime:      endTime,
		OldDate:      orig.Date,
		OldStartTime: orig.StartTime,
		OldEndTime:   orig.EndTime,
		OccurredAt:   now.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "reservation updated",
		"updatedReservation": echo.Map{
			"code":         orig.Code,
			"name":         orig.FullName,
			"oldDate":      orig.Date,
			"oldTime":      orig.StartTime,
			"newDate":      req.NewDate,
			"newStartTime": req.NewStartTime,
			"newEndTime":   endTime,
			"newDayName":   dayName(req.NewDate, h.Loc),
			"newFullDate":  friendlyDate(req.NewDate, h.Loc),
		},
	})
}

func dayName(date string, loc *time.Location) string {
	d, err := time.ParseInLocation(schedule.DateLayout, date, loc)
	if err != nil {
		return ""
	}
	return d.Weekday().String()
}

func friendlyDate(date string, loc *time.Location) string {
	d, err := time.ParseInLocation(schedule.DateLayout, date, loc)
	if err != nil {
		return date
	}
	return d.Format("Monday, 2 January 2006")
}
