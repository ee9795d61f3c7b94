package repository

import (
	"context"
	"database/sql"
	"strings"

	"berberi/internal/model"
	"berberi/internal/utils"
)

// AdminRepo accesses the admin_users table.
type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

// GetByUsername fetches an admin by normalized username.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (model.AdminUser, error) {
	username = strings.TrimSpace(username)
	var a model.AdminUser
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM admin_users WHERE username=? LIMIT 1",
		username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return model.AdminUser{}, ErrNotFound
	}
	return a, err
}

// GetByID fetches an admin by primary key.
func (r *AdminRepo) GetByID(ctx context.Context, id uint64) (model.AdminUser, error) {
	var a model.AdminUser
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM admin_users WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return model.AdminUser{}, ErrNotFound
	}
	return a, err
}

// Count returns the number of admin accounts.
func (r *AdminRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM admin_users").Scan(&n)
	return n, err
}

// Create hashes the password and inserts a new admin, returning its ID.
func (r *AdminRepo) Create(ctx context.Context, username, password string, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO admin_users (username, password_hash) VALUES (?,?)",
		username, hash)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}
