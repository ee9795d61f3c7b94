package repository

import (
	"context"
	"database/sql"
	"strings"

	"berberi/internal/model"
)

// ReservationRepo provides CRUD operations for reservations. Exclusivity of
// a (date, start_time) slot is not coordinated in process: the unique index
// uq_slot over (date, start_time, active) is the sole guarantee against
// double-booking, where `active` is 1 for live rows and NULL once a
// reservation is cancelled so history rows stop occupying the slot.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Create inserts a new active reservation and populates the generated ID.
// A losing race on the slot surfaces as ErrSlotTaken; a code collision as
// ErrCodeTaken so the caller can retry with a fresh code.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (full_name, date, start_time, end_time, reservation_code, status, active)
	           VALUES (?, ?, ?, ?, ?, 'active', 1)`
	result, err := r.db.ExecContext(ctx, q, res.FullName, res.Date, res.StartTime, res.EndTime, res.Code)
	if err != nil {
		if isDuplicate(err, "uq_slot") {
			return ErrSlotTaken
		}
		if isDuplicate(err, "reservation_code") {
			return ErrCodeTaken
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = id
	res.Status = model.StatusActive

	// Query back the row to populate the insertion timestamp.
	const sel = `SELECT created_at FROM reservations WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt)
}

// GetActiveByCode returns the active reservation carrying the code.
// Lookup is exact; callers normalize the code to upper case first.
// ErrNotFound is returned when no active row matches, so already-cancelled
// and never-existing codes are indistinguishable to the caller.
func (r *ReservationRepo) GetActiveByCode(ctx context.Context, code string) (model.Reservation, error) {
	const q = `SELECT id, full_name, date, start_time, end_time, reservation_code, status, created_at
	           FROM reservations WHERE reservation_code = ? AND status = 'active' LIMIT 1`
	var res model.Reservation
	err := r.db.QueryRowContext(ctx, q, code).Scan(
		&res.ID, &res.FullName, &res.Date, &res.StartTime, &res.EndTime,
		&res.Code, &res.Status, &res.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Reservation{}, ErrNotFound
	}
	return res, err
}

// CodeExists reports whether any reservation row carries the code,
// regardless of status.
func (r *ReservationRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	const q = `SELECT 1 FROM reservations WHERE reservation_code = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, code).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ActiveExistsAt reports whether a slot is occupied by an active
// reservation other than excludeCode. Used by the change flow for a
// friendly conflict answer before the update hits the unique index.
func (r *ReservationRepo) ActiveExistsAt(ctx context.Context, date, startTime, excludeCode string) (bool, error) {
	const q = `SELECT 1 FROM reservations
	           WHERE date = ? AND start_time = ? AND status = 'active' AND reservation_code <> ?
	           LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, date, startTime, excludeCode).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateSlot moves an active reservation to a new date and time, keeping
// code and identity. The unique index still fires on a lost race, which
// surfaces as ErrSlotTaken. ErrNotFound means no active row carries the code.
func (r *ReservationRepo) UpdateSlot(ctx context.Context, code, date, startTime, endTime string) error {
	const q = `UPDATE reservations SET date = ?, start_time = ?, end_time = ?
	           WHERE reservation_code = ? AND status = 'active'`
	result, err := r.db.ExecContext(ctx, q, date, startTime, endTime, code)
	if err != nil {
		if isDuplicate(err, "uq_slot") {
			return ErrSlotTaken
		}
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CancelByCode flips an active reservation to cancelled and frees its slot
// by nulling the active marker. ErrNotFound means the code resolves to no
// active reservation.
func (r *ReservationRepo) CancelByCode(ctx context.Context, code string) error {
	const q = `UPDATE reservations SET status = 'cancelled', active = NULL
	           WHERE reservation_code = ? AND status = 'active'`
	result, err := r.db.ExecContext(ctx, q, code)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRange returns all reservations, any status, whose date falls in the
// inclusive [startDate, endDate] range, ordered by date then start time.
func (r *ReservationRepo) ListRange(ctx context.Context, startDate, endDate string) ([]model.Reservation, error) {
	const q = `SELECT id, full_name, date, start_time, end_time, reservation_code, status, created_at
	           FROM reservations WHERE date BETWEEN ? AND ?
	           ORDER BY date, start_time`
	rows, err := r.db.QueryContext(ctx, q, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(
			&res.ID, &res.FullName, &res.Date, &res.StartTime, &res.EndTime,
			&res.Code, &res.Status, &res.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// DeleteBefore hard-deletes every reservation dated strictly before the
// given date, regardless of status. Returns the number of rows removed.
func (r *ReservationRepo) DeleteBefore(ctx context.Context, date string) (int64, error) {
	const q = `DELETE FROM reservations WHERE date < ?`
	result, err := r.db.ExecContext(ctx, q, date)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteElapsed hard-deletes reservations on the given date whose end time
// is at or before the given wall-clock time, regardless of status.
func (r *ReservationRepo) DeleteElapsed(ctx context.Context, date, clock string) (int64, error) {
	const q = `DELETE FROM reservations WHERE date = ? AND end_time <= ?`
	result, err := r.db.ExecContext(ctx, q, date, clock)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteForDate hard-deletes every reservation on the given date. Used when
// a day is marked as a rest day.
func (r *ReservationRepo) DeleteForDate(ctx context.Context, date string) (int64, error) {
	const q = `DELETE FROM reservations WHERE date = ?`
	result, err := r.db.ExecContext(ctx, q, date)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// NormalizeCode uppercases and trims a user-entered reservation code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
