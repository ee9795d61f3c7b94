package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"berberi/internal/repository"
)

// buildDSN assembles the MySQL connection string. parseTime maps DATETIME
// columns onto time.Time and loc=UTC keeps those values consistent.
// clientFoundRows makes RowsAffected count matched rows instead of changed
// rows: an UPDATE that writes the same values the row already holds must
// still report the row, otherwise moving a reservation onto its own slot
// would look like a missing row.
func buildDSN(user, pass, host, port, name string) string {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		auth, host, port, name)
}

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	db, err := sql.Open("mysql", buildDSN(user, pass, host, port, name))
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// schema holds the idempotent table definitions. The `active` column on
// reservations is 1 for live rows and NULL for cancelled ones so uq_slot
// enforces at most one active reservation per (date, start_time) while
// cancelled history rows remain until the purge removes them.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS reservations (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		full_name VARCHAR(255) NOT NULL,
		date CHAR(10) NOT NULL,
		start_time CHAR(5) NOT NULL,
		end_time CHAR(5) NOT NULL,
		reservation_code CHAR(6) NOT NULL,
		status ENUM('active','cancelled') NOT NULL DEFAULT 'active',
		active TINYINT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY reservation_code (reservation_code),
		UNIQUE KEY uq_slot (date, start_time, active)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS rest_days (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		date CHAR(10) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY date (date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS admin_users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		username VARCHAR(64) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS admin_sessions (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		admin_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY token_hash (token_hash),
		KEY admin_id (admin_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// SeedDefaultAdmin creates the initial admin account when none exists yet.
// Subsequent startups leave the table untouched.
func SeedDefaultAdmin(ctx context.Context, db *sql.DB, username, password string, cost int) error {
	admins := repository.NewAdminRepo(db)
	n, err := admins.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, err := admins.Create(ctx, username, password, cost); err != nil {
		return err
	}
	log.Printf("seeded default admin %q", username)
	return nil
}
