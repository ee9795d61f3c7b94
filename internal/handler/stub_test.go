package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"berberi/internal/model"
	"berberi/internal/repository"
)

// In-memory stand-ins for the store interfaces so request logic can be
// exercised without a database.

type stubReservations struct {
	active       map[string]model.Reservation
	collisions   int // first N CodeExists calls answer true
	codeChecks   int
	slotOccupied bool
	createErr    error
	updateErr    error
	created      []model.Reservation
	updatedTo    []string
}

func newStubReservations() *stubReservations {
	return &stubReservations{active: make(map[string]model.Reservation)}
}

func (s *stubReservations) Create(ctx context.Context, res *model.Reservation) error {
	if s.createErr != nil {
		return s.createErr
	}
	res.ID = int64(len(s.created) + 1)
	res.Status = model.StatusActive
	res.CreatedAt = time.Now()
	s.created = append(s.created, *res)
	s.active[res.Code] = *res
	return nil
}

func (s *stubReservations) GetActiveByCode(ctx context.Context, code string) (model.Reservation, error) {
	r, ok := s.active[code]
	if !ok {
		return model.Reservation{}, repository.ErrNotFound
	}
	return r, nil
}

func (s *stubReservations) CodeExists(ctx context.Context, code string) (bool, error) {
	s.codeChecks++
	return s.codeChecks <= s.collisions, nil
}

func (s *stubReservations) ActiveExistsAt(ctx context.Context, date, startTime, excludeCode string) (bool, error) {
	return s.slotOccupied, nil
}

func (s *stubReservations) UpdateSlot(ctx context.Context, code, date, startTime, endTime string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if _, ok := s.active[code]; !ok {
		return repository.ErrNotFound
	}
	s.updatedTo = append(s.updatedTo, date+" "+startTime)
	r := s.active[code]
	r.Date, r.StartTime, r.EndTime = date, startTime, endTime
	s.active[code] = r
	return nil
}

func (s *stubReservations) CancelByCode(ctx context.Context, code string) error {
	if _, ok := s.active[code]; !ok {
		return repository.ErrNotFound
	}
	delete(s.active, code)
	return nil
}

func (s *stubReservations) ListRange(ctx context.Context, startDate, endDate string) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0, len(s.active))
	for _, r := range s.active {
		if r.Date >= startDate && r.Date <= endDate {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubReservations) DeleteForDate(ctx context.Context, date string) (int64, error) {
	var n int64
	for code, r := range s.active {
		if r.Date == date {
			delete(s.active, code)
			n++
		}
	}
	return n, nil
}

type stubRestDays struct {
	closed map[string]bool
}

func newStubRestDays() *stubRestDays { return &stubRestDays{closed: make(map[string]bool)} }

func (s *stubRestDays) Mark(ctx context.Context, date string) error {
	s.closed[date] = true
	return nil
}

func (s *stubRestDays) Unmark(ctx context.Context, date string) error {
	if !s.closed[date] {
		return repository.ErrNotFound
	}
	delete(s.closed, date)
	return nil
}

func (s *stubRestDays) Exists(ctx context.Context, date string) (bool, error) {
	return s.closed[date], nil
}

func (s *stubRestDays) ListRange(ctx context.Context, startDate, endDate string) ([]string, error) {
	out := []string{}
	for d := range s.closed {
		if d >= startDate && d <= endDate {
			out = append(out, d)
		}
	}
	return out, nil
}

type stubAdmins struct {
	users map[uint64]model.AdminUser
}

func (s *stubAdmins) GetByUsername(ctx context.Context, username string) (model.AdminUser, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.AdminUser{}, repository.ErrNotFound
}

func (s *stubAdmins) GetByID(ctx context.Context, id uint64) (model.AdminUser, error) {
	u, ok := s.users[id]
	if !ok {
		return model.AdminUser{}, repository.ErrNotFound
	}
	return u, nil
}

type stubSessions struct {
	valid map[string]uint64 // token hash -> admin id
}

func newStubSessions() *stubSessions { return &stubSessions{valid: make(map[string]uint64)} }

func (s *stubSessions) Store(ctx context.Context, adminID uint64, tokenHash string, exp time.Time) error {
	s.valid[tokenHash] = adminID
	return nil
}

func (s *stubSessions) Validate(ctx context.Context, tokenHash string) (uint64, error) {
	id, ok := s.valid[tokenHash]
	if !ok {
		return 0, sql.ErrNoRows
	}
	return id, nil
}

func (s *stubSessions) RevokeByHash(ctx context.Context, tokenHash string) error {
	delete(s.valid, tokenHash)
	return nil
}

func (s *stubSessions) RevokeAllForAdmin(ctx context.Context, adminID uint64) error {
	for h, id := range s.valid {
		if id == adminID {
			delete(s.valid, h)
		}
	}
	return nil
}

// doJSON drives a handler through httptest and decodes the JSON reply.
func doJSON(t *testing.T, fn echo.HandlerFunc, method, target, body string, header map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, fn(e.NewContext(req, rec)))

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec, out
}
