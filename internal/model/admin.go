package model

import "time"

// AdminUser mirrors the `admin_users` table. Exactly one is seeded on first
// startup when the table is empty.
type AdminUser struct {
	ID           uint64    // admin_users.id
	Username     string    // admin_users.username
	PasswordHash string    // admin_users.password_hash (bcrypt)
	CreatedAt    time.Time // admin_users.created_at
}

// AdminSession models an entry in the `admin_sessions` table. The plain
// session token is not stored; only its SHA-256 hash.
//
// Fields:
//
//	ID        - primary key identifier.
//	AdminID   - owner of the session.
//	TokenHash - SHA-256 hex digest of the token value.
//	ExpiresAt - expiration timestamp.
//	RevokedAt - when the session was revoked (null while active).
//	CreatedAt - timestamp of creation.
type AdminSession struct {
	ID        uint64     // admin_sessions.id
	AdminID   uint64     // admin_sessions.admin_id
	TokenHash string     // admin_sessions.token_hash
	ExpiresAt time.Time  // admin_sessions.expires_at
	RevokedAt *time.Time // admin_sessions.revoked_at (nullable)
	CreatedAt time.Time  // admin_sessions.created_at
}
