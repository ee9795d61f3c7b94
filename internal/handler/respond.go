package handler

import (
	"time"

	"github.com/labstack/echo/v4"
)

// dbTimeout bounds every database call made from a request handler.
const dbTimeout = 5 * time.Second

// fail writes the uniform error envelope.
func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg})
}
