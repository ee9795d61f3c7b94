// Package repository implements MySQL persistence for reservations, rest
// days and admin accounts. Sentinel errors defined here let handlers map
// failure scenarios onto HTTP statuses without inspecting driver errors:
// ErrSlotTaken covers the (date, start_time) uniqueness violation that is
// the system's double-booking arbiter, ErrCodeTaken a collision on the
// reservation code, and ErrNotFound a lookup that resolved nothing.
package repository

import (
	"errors"
	"strings"
)

// ErrSlotTaken is returned when an insert or update loses the race for a
// slot to another active reservation. Handlers translate this into 409.
var ErrSlotTaken = errors.New("slot already reserved")

// ErrCodeTaken is returned when a freshly generated reservation code
// collides with an existing row. Callers retry with a new code.
var ErrCodeTaken = errors.New("reservation code already exists")

// ErrNotFound is returned when a row the caller named does not exist.
// Handlers translate this into 404.
var ErrNotFound = errors.New("not found")

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062) on the named key.
func isDuplicate(err error, key string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1062") && strings.Contains(msg, strings.ToLower(key))
}
