package repository

import (
	"context"
	"database/sql"
	"time"
)

// SessionRepo persists/validates admin sessions (single 'token_hash' column).
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Store inserts a session token hash row.
func (r *SessionRepo) Store(ctx context.Context, adminID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO admin_sessions (admin_id, token_hash, expires_at) VALUES (?,?,?)",
		adminID, tokenHash, exp)
	return err
}

// Validate returns adminID if a non-revoked, non-expired session exists.
func (r *SessionRepo) Validate(ctx context.Context, tokenHash string) (uint64, error) {
	var (
		adminID   uint64
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT admin_id, expires_at, revoked_at FROM admin_sessions WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&adminID, &expiresAt, &revokedAt)
	if err != nil {
		return 0, err
	}
	if revokedAt.Valid {
		return 0, sql.ErrNoRows
	}
	if time.Now().UTC().After(expiresAt) {
		return 0, sql.ErrNoRows
	}
	return adminID, nil
}

// RevokeByHash marks a session as revoked.
func (r *SessionRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE admin_sessions SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL",
		tokenHash)
	return err
}

// RevokeAllForAdmin revokes all of an admin's active sessions.
func (r *SessionRepo) RevokeAllForAdmin(ctx context.Context, adminID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE admin_sessions SET revoked_at=NOW() WHERE admin_id=? AND revoked_at IS NULL",
		adminID)
	return err
}

// DeleteExpired removes session rows whose expiry has passed, revoked or
// not. Validate already rejects them; this keeps the table from growing.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM admin_sessions WHERE expires_at < ?", now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
