package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"berberi/internal/model"
	"berberi/internal/queue"
	"berberi/internal/repository"
	"berberi/internal/schedule"
	"berberi/internal/service/queue_publisher"
	"berberi/internal/utils"
)

// maxCodeAttempts bounds how many fresh codes are tried when an insert loses
// the race on the reservation_code unique index.
const maxCodeAttempts = 10

// BookingHandler creates reservations on the public surface. No account is
// involved; the caller receives a reservation code that later identifies the
// booking for lookup, change and cancellation.
type BookingHandler struct {
	Hours        schedule.Hours
	Loc          *time.Location
	Reservations ReservationStore
	RestDays     RestDayStore
}

func NewBookingHandler(hours schedule.Hours, loc *time.Location, res ReservationStore, rest RestDayStore) *BookingHandler {
	return &BookingHandler{Hours: hours, Loc: loc, Reservations: res, RestDays: rest}
}

type createReservationRequest struct {
	FullName  string `json:"full_name"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
}

// Create books a slot. Validation runs against the current window; the slot
// uniqueness constraint in storage settles concurrent requests for the same
// slot, so at most one of them succeeds.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	name := strings.TrimSpace(req.FullName)
	if utf8.RuneCountInString(name) < 2 {
		return fail(c, http.StatusBadRequest, "please enter your full name")
	}

	now := time.Now().In(h.Loc)
	week := schedule.CurrentWeek(h.Hours, now)
	endTime, err := schedule.CheckBookable(h.Hours, week, req.Date, req.StartTime, h.Loc)
	if err != nil {
		return fail(c, http.StatusBadRequest, bookingErrorMessage(err))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	closed, err := h.RestDays.Exists(ctx, req.Date)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not create the reservation")
	}
	if closed {
		return fail(c, http.StatusBadRequest, "the barbershop is closed on this day")
	}

	res := model.Reservation{
		FullName:  name,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   endTime,
	}
	created := false
	for attempt := 0; attempt < maxCodeAttempts && !created; attempt++ {
		code, err := utils.NewReservationCode()
		if err != nil {
			return fail(c, http.StatusInternalServerError, "could not create the reservation")
		}
		exists, err := h.Reservations.CodeExists(ctx, code)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "could not create the reservation")
		}
		if exists {
			continue
		}
		res.Code = code
		switch err := h.Reservations.Create(ctx, &res); {
		case err == nil:
			created = true
		case errors.Is(err, repository.ErrCodeTaken):
			// Collision on the code index; retry with a fresh code.
		case errors.Is(err, repository.ErrSlotTaken):
			return fail(c, http.StatusConflict, "this slot has just been taken, please pick another one")
		default:
			return fail(c, http.StatusInternalServerError, "could not create the reservation")
		}
	}
	if !created {
		return fail(c, http.StatusInternalServerError, "could not create the reservation")
	}

	publishEvent(queue.ReservationEvent{
		Type:       queue.EventCreated,
		Code:       res.Code,
		FullName:   res.FullName,
		Date:       res.Date,
		StartTime:  res.StartTime,
		EndTime:    res.EndTime,
		OccurredAt: now.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "reservation confirmed",
		"reservation": echo.Map{
			"id":        res.ID,
			"code":      res.Code,
			"name":      res.FullName,
			"date":      res.Date,
			"startTime": res.StartTime,
			"endTime":   res.EndTime,
			"display":   res.StartTime + " - " + res.EndTime,
		},
	})
}

// bookingErrorMessage maps validation errors to user-facing text.
func bookingErrorMessage(err error) string {
	switch {
	case errors.Is(err, schedule.ErrBadDate):
		return "invalid date, expected YYYY-MM-DD"
	case errors.Is(err, schedule.ErrBadTime):
		return "invalid start time, expected HH:MM"
	case errors.Is(err, schedule.ErrOutsideWindow):
		return "this date is outside the current booking week"
	case errors.Is(err, schedule.ErrClosedDay):
		return "the barbershop is closed on Sundays"
	case errors.Is(err, schedule.ErrOutsideHours):
		return "this time is outside working hours"
	default:
		return "invalid reservation request"
	}
}

// publishEvent hands the event to the broker without blocking the request.
// Delivery is best effort; a broker outage never fails a booking.
func publishEvent(ev queue.ReservationEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishReservationEvent(ctx, ev)
	}()
}
