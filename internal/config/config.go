package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The schedule knobs (opening hours, slot length)
// default to the shop's historical values so a bare environment still runs.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign admin JWTs
	AccessTTLMin   int    // admin access token time-to-live in minutes
	SessionTTLDays int    // admin session time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	Timezone        string // IANA timezone all calendar arithmetic runs in
	OpenHour        int    // first bookable hour of the day
	CloseHour       int    // closing hour; no slot may end past it
	SlotMinutes     int    // fixed slot duration
	CleanupEverySec int    // purge interval in seconds

	AdminUser string // seeded admin username (first startup only)
	AdminPass string // seeded admin password (first startup only)

	TelegramToken  string // Telegram bot token (optional; empty disables)
	TelegramChatID string // Telegram chat to notify (optional)
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   envInt("ACCESS_TOKEN_TTL_MIN", 60),
		SessionTTLDays: envInt("SESSION_TTL_DAYS", 1),
		BcryptCost:     envInt("BCRYPT_COST", 10),

		Timezone:        envStr("SHOP_TIMEZONE", "Europe/Tirane"),
		OpenHour:        envInt("SHOP_OPEN_HOUR", 9),
		CloseHour:       envInt("SHOP_CLOSE_HOUR", 20),
		SlotMinutes:     envInt("SHOP_SLOT_MINUTES", 25),
		CleanupEverySec: envInt("CLEANUP_INTERVAL_SEC", 60),

		AdminUser: envStr("ADMIN_USERNAME", "admin"),
		AdminPass: envStr("ADMIN_PASSWORD", "admin123"),

		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID: os.Getenv("TELEGRAM_CHAT_ID"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}
