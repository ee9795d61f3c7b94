// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"berberi/internal/config"
	"berberi/internal/handler"
	"berberi/internal/middleware"
)

// Handlers bundles every handler the route table needs.
type Handlers struct {
	Week    *handler.WeekHandler
	Booking *handler.BookingHandler
	Code    *handler.CodeHandler
	Admin   *handler.AdminHandler
}

// Register mounts all routes on the Echo instance. The cache middleware
// wraps only the week view; everything else is uncached. Admin routes other
// than login and the session probe sit behind the JWT guard.
func Register(e *echo.Echo, cfg config.Config, h Handlers, cache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")

	v1.GET("/week", h.Week.GetWeek, cache)
	v1.POST("/reservations", h.Booking.Create)

	codes := v1.Group("/codes")
	codes.POST("/find", h.Code.Find)
	codes.POST("/cancel", h.Code.Cancel)
	codes.POST("/change", h.Code.Change)

	admin := v1.Group("/admin")
	admin.POST("/login", h.Admin.Login)
	admin.GET("/session", h.Admin.Session)

	guarded := admin.Group("", middleware.AdminAuth(cfg.JWTSecret))
	guarded.POST("/logout", h.Admin.Logout)
	guarded.GET("/reservations", h.Admin.ListReservations)
	guarded.POST("/reservations/cancel", h.Admin.CancelReservation)
	guarded.POST("/rest-days/mark", h.Admin.MarkRestDay)
	guarded.POST("/rest-days/unmark", h.Admin.UnmarkRestDay)
}
