package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/moodvault/moodvault/app/controllers"
)

// APIServer implements the ServerInterface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetUserProfile returns account information for the authenticated user (API key).
// Security is enforced via API key middleware attached in the router.
func (s *APIServer) GetUserProfile(c *fiber.Ctx) error {
	return controllers.HandleGetUserAccount(c)
}

// GetSubscription refreshes and returns the subscription details.
func (s *APIServer) GetSubscription(c *fiber.Ctx) error {
	return controllers.HandleGetSubscription(c)
}

// GetOffers lists normalized store offers for the requested SKUs.
func (s *APIServer) GetOffers(c *fiber.Ctx) error {
	return controllers.HandleGetOffers(c)
}

// PostJournalLock toggles the journal lock.
func (s *APIServer) PostJournalLock(c *fiber.Ctx) error {
	return controllers.HandleToggleJournalLock(c)
}

// PostJournalUnlock verifies the journal password and opens the unlock window.
func (s *APIServer) PostJournalUnlock(c *fiber.Ctx) error {
	return controllers.HandleUnlockJournal(c)
}

// GetGuidance serves cached relationship guidance.
func (s *APIServer) GetGuidance(c *fiber.Ctx) error {
	return controllers.HandleGetGuidance(c)
}

// PostGuidanceRefresh invalidates and regenerates relationship guidance.
func (s *APIServer) PostGuidanceRefresh(c *fiber.Ctx) error {
	return controllers.HandleRefreshGuidance(c)
}

// GetEmotionalProfile serves the cached emotional profile.
func (s *APIServer) GetEmotionalProfile(c *fiber.Ctx) error {
	return controllers.HandleGetEmotionalProfile(c)
}

// PostAppState records a client lifecycle transition.
func (s *APIServer) PostAppState(c *fiber.Ctx) error {
	return controllers.HandleAppState(c)
}

// DeleteSession discards session-scoped coordinator and lifecycle state.
func (s *APIServer) DeleteSession(c *fiber.Ctx) error {
	return controllers.HandleDeleteSession(c)
}
