package controllers

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/moodvault/moodvault/internal/pkg/lifecycle"
	"github.com/moodvault/moodvault/internal/pkg/offers"
)

var validate = validator.New()

// HandleGetSubscription refreshes the subscription from the entitlement
// provider. When the fetch fails but an earlier fetch succeeded, the last
// good value is served with stale set, so the screen never blanks.
func HandleGetSubscription(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return nil
	}
	coordinator := coordinatorFor(userCtx)

	sub, err := coordinator.RefreshSubscription(c.Context())
	if err != nil {
		if last := coordinator.CurrentSubscription(); last != nil {
			log.Warnf("subscription refresh failed for user %d, serving stale: %v", userCtx.UserID, err)
			return c.JSON(fiber.Map{
				"subscription":         last,
				"journal_lock_enabled": coordinator.JournalLockEnabled(),
				"stale":                true,
			})
		}
		return errorJSON(c, fiber.StatusBadGateway, "subscription_unavailable", "Could not load subscription details")
	}

	return c.JSON(fiber.Map{
		"subscription":         sub,
		"journal_lock_enabled": coordinator.JournalLockEnabled(),
		"stale":                false,
	})
}

// HandleGetOffers lists store offers for the requested SKUs and returns
// them in the store-agnostic normalized shape.
func HandleGetOffers(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return nil
	}

	platform := offers.Platform(c.Query("platform"))
	if platform != offers.PlatformAppStore && platform != offers.PlatformPlayStore {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "platform must be appstore or playstore")
	}

	var skus []string
	for _, sku := range strings.Split(c.Query("skus"), ",") {
		if sku = strings.TrimSpace(sku); sku != "" {
			skus = append(skus, sku)
		}
	}
	if len(skus) == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "skus query parameter is required")
	}

	normalized, err := coordinatorFor(userCtx).RefreshOffers(c.Context(), skus, platform)
	if err != nil {
		log.Errorf("offer refresh failed for user %d: %v", userCtx.UserID, err)
		return errorJSON(c, fiber.StatusBadGateway, "offers_unavailable", "Could not load store offers")
	}

	return c.JSON(fiber.Map{"offers": normalized})
}

// AppStateRequest reports a client lifecycle transition.
type AppStateRequest struct {
	State  string `json:"state" validate:"required,oneof=active background inactive"`
	Screen string `json:"screen" validate:"max=100"`
}

// HandleAppState publishes the reported lifecycle transition into the
// user's hub. The refresh controller decides whether it warrants a fetch.
func HandleAppState(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req AppStateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid JSON body")
	}
	if err := validate.Struct(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "state must be one of active, background, inactive")
	}

	lifecycleFor(userCtx).hub.Publish(lifecycle.State(req.State), req.Screen)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "state recorded"})
}
