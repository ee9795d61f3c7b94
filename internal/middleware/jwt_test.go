package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berberi/internal/utils"
)

const testSecret = "test-secret"

func ctxWithAuth(t *testing.T, header string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestAdminFromBearerValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, "gezim", 60)
	require.NoError(t, err)

	id, username, ok := AdminFromBearer(ctxWithAuth(t, "Bearer "+tok.Token), testSecret)
	require.True(t, ok)
	assert.Equal(t, uint64(42), id)
	assert.Equal(t, "gezim", username)
}

func TestAdminFromBearerMissingHeader(t *testing.T) {
	_, _, ok := AdminFromBearer(ctxWithAuth(t, ""), testSecret)
	assert.False(t, ok)
}

func TestAdminFromBearerWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 42, "gezim", 60)
	require.NoError(t, err)

	_, _, ok := AdminFromBearer(ctxWithAuth(t, "Bearer "+tok.Token), testSecret)
	assert.False(t, ok)
}

func TestAdminFromBearerExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":      float64(42),
		"username": "gezim",
		"role":     "ADMIN",
		"exp":      time.Now().Add(-time.Minute).Unix(),
		"iat":      time.Now().Add(-2 * time.Minute).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, _, ok := AdminFromBearer(ctxWithAuth(t, "Bearer "+signed), testSecret)
	assert.False(t, ok)
}

func TestAdminFromBearerRejectsNonAdminRole(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":      float64(42),
		"username": "gezim",
		"role":     "USER",
		"exp":      time.Now().Add(time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, _, ok := AdminFromBearer(ctxWithAuth(t, "Bearer "+signed), testSecret)
	assert.False(t, ok)
}

func TestAdminAuthRejectsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := AdminAuth(testSecret)
	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuthInjectsClaims(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "blerta", 60)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotID uint64
	var gotUser string
	mw := AdminAuth(testSecret)
	err = mw(func(c echo.Context) error {
		gotID, _ = c.Get("admin_id").(uint64)
		gotUser, _ = c.Get("username").(string)
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(7), gotID)
	assert.Equal(t, "blerta", gotUser)
}
