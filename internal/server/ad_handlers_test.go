package server

import (
	"fmt"
	"net/http"
	"testing"

	"loppis/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createAd(t *testing.T, app *fiber.App, token, title string) models.Ad {
	t.Helper()
	resp, raw := doJSON(t, app, http.MethodPost, "/api/ads/", token, fiber.Map{
		"title":    title,
		"type":     "furniture",
		"location": "Göteborg",
		"price":    25000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	return decode[models.Ad](t, raw)
}

func TestCreateAd(t *testing.T) {
	app, _ := newTestApp(t)
	token := signup(t, app, "Ida", "ida@example.com", "hunter22")

	ad := createAd(t, app, token, "Teak sideboard")
	assert.NotZero(t, ad.ID)
	assert.NotZero(t, ad.UserID)
	assert.Equal(t, "Teak sideboard", ad.Title)
}

func TestCreateAd_RequiresAuth(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/ads/", "", fiber.Map{"title": "Spade"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/ads/", "not-a-real-token", fiber.Map{"title": "Spade"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateAd_BearerPrefixTolerated(t *testing.T) {
	app, _ := newTestApp(t)
	token := signup(t, app, "Ida", "ida@example.com", "hunter22")

	resp, raw := doJSON(t, app, http.MethodPost, "/api/ads/", "Bearer "+token, fiber.Map{
		"title": "Spade",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
}

func TestCreateAd_OwnerComesFromToken(t *testing.T) {
	app, srv := newTestApp(t)
	idaToken := signup(t, app, "Ida", "ida@example.com", "hunter22")
	signup(t, app, "Bo", "bo@example.com", "hunter33")

	// A userId in the payload is ignored; ownership follows the token.
	resp, raw := doJSON(t, app, http.MethodPost, "/api/ads/", idaToken, fiber.Map{
		"title":  "Spade",
		"userId": 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	ad := decode[models.Ad](t, raw)

	ida, err := srv.userRepo.GetByEmail(t.Context(), "ida@example.com")
	require.NoError(t, err)
	assert.Equal(t, ida.ID, ad.UserID)
}

func TestGetAds(t *testing.T) {
	app, _ := newTestApp(t)
	token := signup(t, app, "Ida", "ida@example.com", "hunter22")
	createAd(t, app, token, "Teak sideboard")
	createAd(t, app, token, "Monstera cutting")

	resp, raw := doJSON(t, app, http.MethodGet, "/api/ads/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[struct {
		Ads []models.Ad `json:"ads"`
	}](t, raw)
	assert.Len(t, body.Ads, 2)
}

func TestGetAd(t *testing.T) {
	app, _ := newTestApp(t)
	token := signup(t, app, "Ida", "ida@example.com", "hunter22")
	ad := createAd(t, app, token, "Teak sideboard")

	resp, raw := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/ads/%d", ad.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[models.Ad](t, raw)
	assert.Equal(t, ad.ID, got.ID)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/ads/999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/ads/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchAds(t *testing.T) {
	app, _ := newTestApp(t)
	token := signup(t, app, "Ida", "ida@example.com", "hunter22")
	createAd(t, app, token, "Teak sideboard")
	createAd(t, app, token, "Monstera cutting")

	resp, raw := doJSON(t, app, http.MethodGet, "/api/ads/search?q=teak", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[struct {
		Ads []models.Ad `json:"ads"`
	}](t, raw)
	require.Len(t, body.Ads, 1)
	assert.Equal(t, "Teak sideboard", body.Ads[0].Title)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/ads/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteAd_Owner(t *testing.T) {
	app, _ := newTestApp(t)
	token := signup(t, app, "Ida", "ida@example.com", "hunter22")
	ad := createAd(t, app, token, "Teak sideboard")

	resp, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/ads/%d", ad.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/ads/%d", ad.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteAd_Missing(t *testing.T) {
	app, _ := newTestApp(t)
	token := signup(t, app, "Ida", "ida@example.com", "hunter22")

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/ads/999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRespondToAd(t *testing.T) {
	app, _ := newTestApp(t)
	token := signup(t, app, "Ida", "ida@example.com", "hunter22")
	ad := createAd(t, app, token, "Teak sideboard")

	resp, raw := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/ads/%d/respond", ad.ID), "", fiber.Map{
		"email":   "buyer@example.com",
		"message": "Is it still available?",
	})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode, string(raw))

	// Missing ad and bad input surface as errors, not 202.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/ads/999/respond", "", fiber.Map{
		"email":   "buyer@example.com",
		"message": "hi",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/ads/%d/respond", ad.ID), "", fiber.Map{
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestOwnershipScenario walks the full flow: register, fail a login, log in,
// create an ad, have a stranger attempt deletion, and confirm the ad
// survives with its owner intact.
func TestOwnershipScenario(t *testing.T) {
	app, _ := newTestApp(t)

	idaToken := signup(t, app, "Ida", "ida@example.com", "hunter22")

	// Mistyped password: 401, no hint whether the account exists.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "ida@example.com",
		"password": "hunter2",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Correct login returns the token issued at registration.
	resp, raw := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "ida@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, raw)
	require.Equal(t, idaToken, body["accessToken"])

	ad := createAd(t, app, idaToken, "Kitchen table")

	// A different account cannot delete Ida's ad.
	boToken := signup(t, app, "Bo", "bo@example.com", "hunter33")
	resp, raw = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/ads/%d", ad.ID), boToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode, string(raw))

	// The ad is untouched and still owned by Ida.
	resp, raw = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/ads/%d", ad.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[models.Ad](t, raw)
	assert.Equal(t, ad.UserID, got.UserID)

	// The owner can.
	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/ads/%d", ad.ID), idaToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
