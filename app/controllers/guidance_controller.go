package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/moodvault/moodvault/internal/pkg/entitlements"
	"github.com/moodvault/moodvault/internal/pkg/guidance"
	"github.com/moodvault/moodvault/internal/pkg/usercontext"
)

// HandleGetGuidance serves relationship guidance from the content cache,
// generating on a miss. The relationship type is part of the cache key.
func HandleGetGuidance(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return nil
	}
	if !guidanceAllowed(userCtx) {
		return errorJSON(c, fiber.StatusPaymentRequired, "premium_required", "Relationship guidance requires a premium subscription")
	}

	relationType := strings.TrimSpace(c.Query("relationship_type"))
	if relationType == "" {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "relationship_type query parameter is required")
	}

	subject := guidanceSubject(c, userCtx)
	tips, err := guidanceService.TipsFor(c.Context(), subject, relationType)
	if err != nil {
		return guidanceError(c, userCtx, err)
	}

	return c.JSON(fiber.Map{"relationship_type": relationType, "tips": tips})
}

// GuidanceRefreshRequest asks for regeneration, typically after the user
// switched the relationship type the guidance screen shows.
type GuidanceRefreshRequest struct {
	RelationshipType string `json:"relationship_type" validate:"required,max=100"`
	Themes           string `json:"themes" validate:"max=2000"`
}

// HandleRefreshGuidance invalidates the cached entry and regenerates.
func HandleRefreshGuidance(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return nil
	}
	if !guidanceAllowed(userCtx) {
		return errorJSON(c, fiber.StatusPaymentRequired, "premium_required", "Relationship guidance requires a premium subscription")
	}

	var req GuidanceRefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid JSON body")
	}
	if err := validate.Struct(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "relationship_type is required")
	}

	subject := guidance.Subject{Ref: userCtx.SubscriberRef, MoodSummary: req.Themes}
	tips, err := guidanceService.RefreshTips(c.Context(), subject, req.RelationshipType)
	if err != nil {
		return guidanceError(c, userCtx, err)
	}

	return c.JSON(fiber.Map{"relationship_type": req.RelationshipType, "tips": tips})
}

// HandleGetEmotionalProfile serves the cached emotional profile.
func HandleGetEmotionalProfile(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return nil
	}
	if !guidanceAllowed(userCtx) {
		return errorJSON(c, fiber.StatusPaymentRequired, "premium_required", "The emotional profile requires a premium subscription")
	}

	profile, err := guidanceService.ProfileFor(c.Context(), guidanceSubject(c, userCtx))
	if err != nil {
		return guidanceError(c, userCtx, err)
	}

	return c.JSON(fiber.Map{"profile": profile})
}

// guidanceAllowed gates the generated-content surfaces on the plan, letting
// a live subscription override a stale stored plan.
func guidanceAllowed(userCtx usercontext.UserContext) bool {
	sub := coordinatorFor(userCtx).CurrentSubscription()
	allowed, _, _ := entitlements.EffectiveFeatures(userCtx.Plan, sub)
	return allowed
}

func guidanceSubject(c *fiber.Ctx, userCtx usercontext.UserContext) guidance.Subject {
	return guidance.Subject{
		Ref:         userCtx.SubscriberRef,
		MoodSummary: strings.TrimSpace(c.Query("themes")),
	}
}

func guidanceError(c *fiber.Ctx, userCtx usercontext.UserContext, err error) error {
	var parseErr *guidance.ParseError
	if errors.As(err, &parseErr) {
		log.Errorf("guidance generation unparseable for user %d: %v", userCtx.UserID, err)
		return errorJSON(c, fiber.StatusBadGateway, "generation_failed", "Generated content was malformed, try again")
	}
	log.Errorf("guidance generation failed for user %d: %v", userCtx.UserID, err)
	return errorJSON(c, fiber.StatusBadGateway, "generation_failed", "Could not generate content, try again")
}
