package repository

import (
	"context"
	"database/sql"
)

// RestDayRepo persists the set of administratively closed dates.
type RestDayRepo struct {
	db *sql.DB
}

// NewRestDayRepo returns a new RestDayRepo bound to the given database.
func NewRestDayRepo(db *sql.DB) *RestDayRepo { return &RestDayRepo{db: db} }

// Mark records the date as closed. Marking an already-closed date is a
// no-op thanks to the unique key on date.
func (r *RestDayRepo) Mark(ctx context.Context, date string) error {
	const q = `INSERT INTO rest_days (date) VALUES (?)`
	_, err := r.db.ExecContext(ctx, q, date)
	if isDuplicate(err, "date") {
		return nil
	}
	return err
}

// Unmark reopens the date. ErrNotFound is returned when the date was not
// marked as a rest day.
func (r *RestDayRepo) Unmark(ctx context.Context, date string) error {
	const q = `DELETE FROM rest_days WHERE date = ?`
	result, err := r.db.ExecContext(ctx, q, date)
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

// Exists reports whether the date is marked as closed.
func (r *RestDayRepo) Exists(ctx context.Context, date string) (bool, error) {
	const q = `SELECT 1 FROM rest_days WHERE date = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, date).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListRange returns the closed dates inside the inclusive range, ordered.
func (r *RestDayRepo) ListRange(ctx context.Context, startDate, endDate string) ([]string, error) {
	const q = `SELECT date FROM rest_days WHERE date BETWEEN ? AND ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, q, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
