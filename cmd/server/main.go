package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"berberi/internal/cleanup"
	"berberi/internal/config"
	"berberi/internal/database"
	"berberi/internal/handler"
	"berberi/internal/middleware"
	"berberi/internal/notify"
	"berberi/internal/queue"
	"berberi/internal/repository"
	"berberi/internal/router"
	"berberi/internal/schedule"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid timezone %q: %v", cfg.Timezone, err)
	}
	hours := schedule.Hours{
		OpenHour:    cfg.OpenHour,
		CloseHour:   cfg.CloseHour,
		SlotMinutes: cfg.SlotMinutes,
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migration failed: %v", err)
	}
	if err := database.SeedDefaultAdmin(ctx, db, cfg.AdminUser, cfg.AdminPass, cfg.BcryptCost); err != nil {
		cancel()
		log.Fatalf("admin seed failed: %v", err)
	}
	cancel()

	reservations := repository.NewReservationRepo(db)
	restDays := repository.NewRestDayRepo(db)
	admins := repository.NewAdminRepo(db)
	sessions := repository.NewSessionRepo(db)

	purge := cleanup.New(reservations, sessions, loc, time.Duration(cfg.CleanupEverySec)*time.Second)
	purge.Start()
	defer purge.Stop()

	notifier := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
	go queue.StartNotificationConsumer(notifier)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and caching disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORS())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	router.Register(e, cfg, router.Handlers{
		Week:    handler.NewWeekHandler(hours, loc, reservations, restDays),
		Booking: handler.NewBookingHandler(hours, loc, reservations, restDays),
		Code:    handler.NewCodeHandler(hours, loc, reservations, restDays),
		Admin:   handler.NewAdminHandler(cfg, hours, loc, admins, sessions, reservations, restDays),
	}, cache)

	log.Fatal(e.Start(":" + cfg.Port))
}
