package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AdminAuth returns an Echo middleware that validates a Bearer access token
// signed for the ADMIN role and injects the token's subject and username
// claims into the request context. The provided secret must match the one
// used when issuing tokens. Handlers behind this middleware can read the
// authenticated admin via c.Get("admin_id") and c.Get("username").
func AdminAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, username, ok := AdminFromBearer(c, secret)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"error":   "authentication required",
				})
			}
			c.Set("admin_id", id)
			c.Set("username", username)
			return next(c)
		}
	}
}

// AdminFromBearer parses the Authorization header and, when it carries a
// valid HS256 token with role ADMIN, returns the admin's ID and username.
// It never writes to the response, so endpoints that report auth state
// rather than enforce it (the session check) can call it directly.
func AdminFromBearer(c echo.Context, secret string) (uint64, string, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return 0, "", false
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, "", false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", false
	}
	if role, _ := claims["role"].(string); role != "ADMIN" {
		return 0, "", false
	}
	sub, ok := claims["sub"].(float64) // numeric JWT claims decode as float64
	if !ok {
		return 0, "", false
	}
	username, _ := claims["username"].(string)
	return uint64(sub), username, true
}
