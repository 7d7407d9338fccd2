package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/moodvault/moodvault/internal/pkg/usercontext"
)

// requireUser returns the authenticated user context or writes a 401.
// The bool reports whether the request may proceed.
func requireUser(c *fiber.Ctx) (usercontext.UserContext, bool) {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
		return userCtx, false
	}
	return userCtx, true
}

func errorJSON(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}
