package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/moodvault/moodvault/internal/pkg/middleware"
)

// Pong is the ping endpoint response body.
type Pong struct {
	Ping string `json:"ping"`
}

// ServerInterface is the set of handlers the v1 API expects.
type ServerInterface interface {
	GetPing(c *fiber.Ctx) error
	GetUserProfile(c *fiber.Ctx) error
	GetSubscription(c *fiber.Ctx) error
	GetOffers(c *fiber.Ctx) error
	PostJournalLock(c *fiber.Ctx) error
	PostJournalUnlock(c *fiber.Ctx) error
	GetGuidance(c *fiber.Ctx) error
	PostGuidanceRefresh(c *fiber.Ctx) error
	GetEmotionalProfile(c *fiber.Ctx) error
	PostAppState(c *fiber.Ctx) error
	DeleteSession(c *fiber.Ctx) error
}

// RegisterHandlers attaches the v1 routes to the router group. Everything
// except ping requires an API key.
func RegisterHandlers(router fiber.Router, s ServerInterface) {
	router.Get("/ping", s.GetPing)

	authed := router.Group("", middleware.APIKeyAuthMiddleware())
	authed.Get("/user/profile", s.GetUserProfile)
	authed.Get("/subscription", s.GetSubscription)
	authed.Get("/offers", s.GetOffers)
	authed.Post("/journal-lock", s.PostJournalLock)
	authed.Post("/journal-lock/unlock", s.PostJournalUnlock)
	authed.Get("/guidance", s.GetGuidance)
	authed.Post("/guidance/refresh", s.PostGuidanceRefresh)
	authed.Get("/profile/emotional", s.GetEmotionalProfile)
	authed.Post("/app-state", s.PostAppState)
	authed.Delete("/session", s.DeleteSession)
}
