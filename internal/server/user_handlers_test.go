package server

import (
	"net/http"
	"testing"

	"loppis/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyPage(t *testing.T) {
	app, _ := newTestApp(t)
	token := signup(t, app, "Ida", "ida@example.com", "hunter22")
	createAd(t, app, token, "Teak sideboard")
	createAd(t, app, token, "Monstera cutting")

	resp, raw := doJSON(t, app, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	user := decode[models.User](t, raw)
	assert.Equal(t, "ida@example.com", user.Email)
	assert.Len(t, user.Ads, 2)
}

func TestGetMyPage_RequiresAuth(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	body := decode[map[string]any](t, raw)
	assert.Equal(t, "healthy", body["status"])
}
