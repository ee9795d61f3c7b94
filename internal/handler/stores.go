package handler

import (
	"context"
	"time"

	"berberi/internal/model"
)

// Storage interfaces consumed by the handlers, satisfied by the repository
// types. Handlers depend on these rather than the concrete repos so request
// logic can be exercised without a database.

// ReservationStore is the reservation persistence surface.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetActiveByCode(ctx context.Context, code string) (model.Reservation, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	ActiveExistsAt(ctx context.Context, date, startTime, excludeCode string) (bool, error)
	UpdateSlot(ctx context.Context, code, date, startTime, endTime string) error
	CancelByCode(ctx context.Context, code string) error
	ListRange(ctx context.Context, startDate, endDate string) ([]model.Reservation, error)
	DeleteForDate(ctx context.Context, date string) (int64, error)
}

// RestDayStore is the rest-day persistence surface.
type RestDayStore interface {
	Mark(ctx context.Context, date string) error
	Unmark(ctx context.Context, date string) error
	Exists(ctx context.Context, date string) (bool, error)
	ListRange(ctx context.Context, startDate, endDate string) ([]string, error)
}

// AdminStore is the admin-account lookup surface.
type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (model.AdminUser, error)
	GetByID(ctx context.Context, id uint64) (model.AdminUser, error)
}

// SessionStore is the revocable admin-session surface.
type SessionStore interface {
	Store(ctx context.Context, adminID uint64, tokenHash string, exp time.Time) error
	Validate(ctx context.Context, tokenHash string) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForAdmin(ctx context.Context, adminID uint64) error
}
