package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodvault/moodvault/internal/pkg/entitlement"
	"github.com/moodvault/moodvault/internal/pkg/storebilling"
	"github.com/moodvault/moodvault/internal/pkg/usercontext"
)

// Minimal session wiring; no database-backed persistence.
func init() {
	coordinators = entitlement.NewRegistry(func(userID uint, subscriberRef string) *entitlement.Coordinator {
		return entitlement.NewCoordinator(userID, subscriberRef, entitlement.NewClientFromEnv(), storebilling.CatalogFor, nil)
	})
	lifecycles = make(map[uint]*sessionLifecycle)
}

func newTestApp(loggedIn bool, handlers func(app *fiber.App)) *fiber.App {
	app := fiber.New()
	if loggedIn {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("USER_CONTEXT", usercontext.UserContext{
				UserID:        42,
				SubscriberRef: "11111111-2222-3333-4444-555555555555",
				Username:      "testuser",
				IsLoggedIn:    true,
				Plan:          "premium",
			})
			return c.Next()
		})
	}
	handlers(app)
	return app
}

func TestHandleGetOffersRequiresAuth(t *testing.T) {
	app := newTestApp(false, func(app *fiber.App) {
		app.Get("/offers", HandleGetOffers)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/offers?platform=playstore&skus=premium", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandleGetOffersRejectsUnknownPlatform(t *testing.T) {
	app := newTestApp(true, func(app *fiber.App) {
		app.Get("/offers", HandleGetOffers)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/offers?platform=windows&skus=premium", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleGetOffersRequiresSKUs(t *testing.T) {
	app := newTestApp(true, func(app *fiber.App) {
		app.Get("/offers", HandleGetOffers)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/offers?platform=playstore&skus=", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleAppStateRejectsUnknownState(t *testing.T) {
	app := newTestApp(true, func(app *fiber.App) {
		app.Post("/app-state", HandleAppState)
	})

	req := httptest.NewRequest(http.MethodPost, "/app-state", strings.NewReader(`{"state":"hibernating","screen":"subscription"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleToggleJournalLockRequiresPassword(t *testing.T) {
	app := newTestApp(true, func(app *fiber.App) {
		app.Post("/journal-lock", HandleToggleJournalLock)
	})

	req := httptest.NewRequest(http.MethodPost, "/journal-lock", strings.NewReader(`{"password":""}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleGetGuidanceRequiresRelationshipType(t *testing.T) {
	app := newTestApp(true, func(app *fiber.App) {
		app.Get("/guidance", HandleGetGuidance)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guidance", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestFormatTimePtr(t *testing.T) {
	assert.Nil(t, formatTimePtr(nil))

	now := time.Date(2024, 5, 1, 12, 34, 56, 0, time.Local)
	formatted := formatTimePtr(&now)
	assert.IsType(t, "", formatted)

	expected := now.UTC().Format(time.RFC3339)
	assert.Equal(t, expected, formatted)
}
