package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berberi/internal/config"
	"berberi/internal/model"
	"berberi/internal/utils"
)

func newAdminHandler(admins *stubAdmins, sessions *stubSessions) *AdminHandler {
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 60, SessionTTLDays: 1}
	return NewAdminHandler(cfg, handlerHours, time.UTC,
		admins, sessions, newStubReservations(), newStubRestDays())
}

func TestSessionAnonymous(t *testing.T) {
	h := newAdminHandler(&stubAdmins{}, newStubSessions())

	rec, out := doJSON(t, h.Session, http.MethodGet, "/v1/admin/session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, out["loggedIn"])
}

func TestSessionWithBearerToken(t *testing.T) {
	h := newAdminHandler(&stubAdmins{}, newStubSessions())
	tok, err := utils.NewAccessToken("test-secret", 7, "blerta", 60)
	require.NoError(t, err)

	rec, out := doJSON(t, h.Session, http.MethodGet, "/v1/admin/session", "",
		map[string]string{"Authorization": "Bearer " + tok.Token})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["loggedIn"])
}

func TestSessionTokenRefreshesAccess(t *testing.T) {
	admins := &stubAdmins{users: map[uint64]model.AdminUser{
		7: {ID: 7, Username: "blerta"},
	}}
	sessions := newStubSessions()
	sessions.valid[utils.HashSessionRaw("raw-session-token")] = 7
	h := newAdminHandler(admins, sessions)

	rec, out := doJSON(t, h.Session, http.MethodGet, "/v1/admin/session", "",
		map[string]string{"X-Session-Token": "raw-session-token"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["loggedIn"])
	access := out["access"].(map[string]any)
	assert.NotEmpty(t, access["token"])
	admin := out["admin"].(map[string]any)
	assert.Equal(t, "blerta", admin["username"])
}

func TestRevokedSessionStopsRefreshing(t *testing.T) {
	admins := &stubAdmins{users: map[uint64]model.AdminUser{
		7: {ID: 7, Username: "blerta"},
	}}
	sessions := newStubSessions()
	hash := utils.HashSessionRaw("raw-session-token")
	sessions.valid[hash] = 7
	h := newAdminHandler(admins, sessions)

	require.NoError(t, sessions.RevokeByHash(context.Background(), hash))

	rec, out := doJSON(t, h.Session, http.MethodGet, "/v1/admin/session", "",
		map[string]string{"X-Session-Token": "raw-session-token"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, out["loggedIn"])
	assert.NotContains(t, out, "access")
}

func TestUnknownSessionToken(t *testing.T) {
	h := newAdminHandler(&stubAdmins{}, newStubSessions())

	rec, out := doJSON(t, h.Session, http.MethodGet, "/v1/admin/session", "",
		map[string]string{"X-Session-Token": "never-issued"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, out["loggedIn"])
}
