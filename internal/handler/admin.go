package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"berberi/internal/config"
	"berberi/internal/middleware"
	"berberi/internal/queue"
	"berberi/internal/repository"
	"berberi/internal/schedule"
	"berberi/internal/utils"
)

// AdminHandler groups the authenticated management surface: login/logout,
// the full week listing with history and statistics, forced cancellation and
// rest-day control.
type AdminHandler struct {
	Cfg          config.Config
	Hours        schedule.Hours
	Loc          *time.Location
	Admins       AdminStore
	Sessions     SessionStore
	Reservations ReservationStore
	RestDays     RestDayStore
}

func NewAdminHandler(cfg config.Config, hours schedule.Hours, loc *time.Location,
	admins AdminStore, sessions SessionStore,
	res ReservationStore, rest RestDayStore) *AdminHandler {
	return &AdminHandler{
		Cfg: cfg, Hours: hours, Loc: loc,
		Admins: admins, Sessions: sessions,
		Reservations: res, RestDays: rest,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type logoutRequest struct {
	SessionToken string `json:"session_token"`
}

type dateRequest struct {
	Date string `json:"date"`
}

// Session reports whether the caller holds a valid admin token. It sits
// outside the auth middleware on purpose: an anonymous caller gets a clean
// 200 with loggedIn=false instead of a 401. When the access token is gone
// but the X-Session-Token header carries a live session, the session is
// validated against the store and a fresh access token is issued, so a
// revoked session stops refreshing immediately.
func (h *AdminHandler) Session(c echo.Context) error {
	if id, username, ok := middleware.AdminFromBearer(c, h.Cfg.JWTSecret); ok {
		return c.JSON(http.StatusOK, echo.Map{
			"success":  true,
			"loggedIn": true,
			"admin":    echo.Map{"id": id, "username": username},
		})
	}

	raw := c.Request().Header.Get("X-Session-Token")
	if raw == "" {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "loggedIn": false})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	adminID, err := h.Sessions.Validate(ctx, utils.HashSessionRaw(raw))
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "loggedIn": false})
	}
	admin, err := h.Admins.GetByID(ctx, adminID)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "loggedIn": false})
	}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, admin.ID, admin.Username, h.Cfg.AccessTTLMin)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not refresh the session")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"loggedIn": true,
		"admin":    echo.Map{"id": admin.ID, "username": admin.Username},
		"access":   echo.Map{"token": access.Token, "expiresAt": access.Exp.Format(time.RFC3339)},
	})
}

// Login verifies credentials and issues both a short-lived access token and
// a revocable session token. Unknown username and wrong password produce the
// same answer so the endpoint does not leak which accounts exist.
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "username and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	admin, err := h.Admins.GetByUsername(ctx, req.Username)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && !utils.VerifyPassword(admin.PasswordHash, req.Password)) {
		return fail(c, http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not log in")
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, admin.ID, admin.Username, h.Cfg.AccessTTLMin)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not log in")
	}
	session, err := utils.NewSessionToken(h.Cfg.SessionTTLDays)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not log in")
	}
	if err := h.Sessions.Store(ctx, admin.ID, utils.HashSessionRaw(session.Raw), session.Exp); err != nil {
		return fail(c, http.StatusInternalServerError, "could not log in")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"admin":   echo.Map{"id": admin.ID, "username": admin.Username},
		"access":  echo.Map{"token": access.Token, "expiresAt": access.Exp.Format(time.RFC3339)},
		"session": echo.Map{"token": session.Raw, "expiresAt": session.Exp.Format(time.RFC3339)},
	})
}

// Logout revokes the presented session token, or every session of the
// authenticated admin when the body carries none.
func (h *AdminHandler) Logout(c echo.Context) error {
	var req logoutRequest
	_ = c.Bind(&req) // empty body is fine

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if req.SessionToken != "" {
		if err := h.Sessions.RevokeByHash(ctx, utils.HashSessionRaw(req.SessionToken)); err != nil {
			return fail(c, http.StatusInternalServerError, "could not log out")
		}
	} else {
		adminID, _ := c.Get("admin_id").(uint64)
		if err := h.Sessions.RevokeAllForAdmin(ctx, adminID); err != nil {
			return fail(c, http.StatusInternalServerError, "could not log out")
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "logged out"})
}

type adminReservation struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Display   string `json:"display"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

type adminDay struct {
	DayInfo      schedule.Day       `json:"dayInfo"`
	IsRestDay    bool               `json:"isRestDay"`
	Reservations []adminReservation `json:"reservations"`
}

// ListReservations returns the whole window grouped by day, cancelled rows
// included, plus the rest-day list and the occupancy statistics. The window
// and today-cutoff are the same ones the public calendar uses.
func (h *AdminHandler) ListReservations(c echo.Context) error {
	now := time.Now().In(h.Loc)
	week := schedule.CurrentWeek(h.Hours, now)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	reservations, err := h.Reservations.ListRange(ctx, week.StartDate, week.EndDate)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load reservations")
	}
	restDays, err := h.RestDays.ListRange(ctx, week.StartDate, week.EndDate)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load reservations")
	}

	closed := make(map[string]bool, len(restDays))
	for _, d := range restDays {
		closed[d] = true
	}
	byDay := make(map[string]*adminDay, len(week.Days))
	for _, day := range week.Days {
		byDay[day.Date] = &adminDay{
			DayInfo:      day,
			IsRestDay:    closed[day.Date],
			Reservations: []adminReservation{},
		}
	}
	// ListRange orders by date then start time, so per-day lists stay sorted.
	for _, r := range reservations {
		day, ok := byDay[r.Date]
		if !ok {
			continue
		}
		day.Reservations = append(day.Reservations, adminReservation{
			ID:        r.ID,
			Name:      r.FullName,
			Code:      r.Code,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Display:   r.StartTime + " - " + r.EndTime,
			Status:    r.Status,
			CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	stats := schedule.WeekStats(h.Hours, week, reservations, restDays, now)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"week": echo.Map{
			"startDate":  week.StartDate,
			"endDate":    week.EndDate,
			"weekNumber": week.WeekNumber,
			"year":       week.Year,
		},
		"reservationsByDay": byDay,
		"restDays":          restDays,
		"statistics":        stats,
	})
}

// CancelReservation force-cancels any active reservation by code. Same state
// transition as the self-service cancel, same notification event.
func (h *AdminHandler) CancelReservation(c echo.Context) error {
	var req codeRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	code := repository.NormalizeCode(req.Code)
	if code == "" {
		return fail(c, http.StatusBadRequest, "reservation code is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	res, err := h.Reservations.GetActiveByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "no active reservation found for this code")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not cancel the reservation")
	}
	if err := h.Reservations.CancelByCode(ctx, code); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "no active reservation found for this code")
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

// MarkRestDay closes a date. Existing reservations on that date are removed
// first, so the response reports how many bookings the closure displaced.
func (h *AdminHandler) MarkRestDay(c echo.Context) error {
	var req dateRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if _, err := time.ParseInLocation(schedule.DateLayout, req.Date, h.Loc); err != nil {
		return fail(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	deleted, err := h.Reservations.DeleteForDate(ctx, req.Date)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not mark the rest day")
	}
	if err := h.RestDays.Mark(ctx, req.Date); err != nil {
		return fail(c, http.StatusInternalServerError, "could not mark the rest day")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":             true,
		"message":             "rest day marked",
		"date":                req.Date,
		"deletedReservations": deleted,
	})
}

// UnmarkRestDay reopens a previously closed date.
func (h *AdminHandler) UnmarkRestDay(c echo.Context) error {
	var req dateRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if _, err := time.ParseInLocation(schedule.DateLayout, req.Date, h.Loc); err != nil {
		return fail(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.RestDays.Unmark(ctx, req.Date); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "this date is not marked as a rest day")
		}
		return fail(c, http.StatusInternalServerError, "could not unmark the rest day")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "rest day removed", "date": req.Date})
}
