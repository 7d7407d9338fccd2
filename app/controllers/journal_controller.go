package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/moodvault/moodvault/app/models"
	"github.com/moodvault/moodvault/app/repository"
	"github.com/moodvault/moodvault/internal/pkg/cache"
	"github.com/moodvault/moodvault/internal/pkg/entitlement"
	"github.com/moodvault/moodvault/internal/pkg/env"
	"github.com/moodvault/moodvault/internal/pkg/security"
	"github.com/moodvault/moodvault/internal/pkg/usercontext"
)

// JournalLockRequest carries the password for a toggle or unlock attempt.
type JournalLockRequest struct {
	Password string `json:"password" validate:"required,min=4,max=200"`
}

// HandleToggleJournalLock flips the journal lock optimistically. The
// response always carries the value the flag settled on, whether the
// provider accepted, rejected, or could not be reached.
func HandleToggleJournalLock(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req JournalLockRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid JSON body")
	}
	if err := validate.Struct(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "password is required")
	}

	enabled, err := coordinatorFor(userCtx).SetJournalLock(c.Context(), req.Password)
	if err != nil {
		var toggleErr *entitlement.ToggleError
		if errors.As(err, &toggleErr) {
			status := fiber.StatusBadGateway
			code := "toggle_failed"
			if entitlement.IsRejected(err) {
				status = fiber.StatusUnprocessableEntity
				code = "toggle_rejected"
			}
			return c.Status(status).JSON(fiber.Map{
				"error":                code,
				"message":              "Journal lock unchanged",
				"journal_lock_enabled": enabled,
			})
		}
		// Remote toggle succeeded but the confirmation was not persisted;
		// the in-memory flag already matches the provider.
		log.Errorf("journal lock persistence failed for user %d: %v", userCtx.UserID, err)
	}

	return c.JSON(fiber.Map{"journal_lock_enabled": enabled})
}

// HandleUnlockJournal verifies the journal password and opens the unlock
// window. The local hash is checked first; accounts created before local
// hashes existed fall back to the provider check.
func HandleUnlockJournal(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req JournalLockRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid JSON body")
	}
	if err := validate.Struct(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "password is required")
	}

	valid, err := verifyJournalPassword(c, userCtx, req.Password)
	if err != nil {
		log.Errorf("journal password check failed for user %d: %v", userCtx.UserID, err)
		return errorJSON(c, fiber.StatusBadGateway, "check_failed", "Could not verify the journal password")
	}
	if !valid {
		return errorJSON(c, fiber.StatusUnauthorized, "invalid_password", "Journal password does not match")
	}

	token, err := security.GenerateUnlockToken(userCtx.UserID, security.UnlockWindow, unlockSecret())
	if err != nil {
		log.Errorf("unlock token generation failed for user %d: %v", userCtx.UserID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Could not issue unlock token")
	}

	// Stamp the unlock window so other instances can honor it.
	stampKey := fmt.Sprintf("journal:unlock:%d", userCtx.UserID)
	if err := cache.DefaultStore().Set(c.Context(), stampKey, "1", security.UnlockWindow); err != nil {
		log.Warnf("unlock window stamp failed for user %d: %v", userCtx.UserID, err)
	}

	return c.JSON(fiber.Map{
		"unlocked":           true,
		"unlock_token":       token,
		"expires_in_seconds": int(security.UnlockWindow.Seconds()),
	})
}

// verifyJournalPassword prefers the locally stored hash and falls back to
// the entitlement provider when no hash exists yet.
func verifyJournalPassword(c *fiber.Ctx, userCtx usercontext.UserContext, password string) (bool, error) {
	settings, err := repository.GetGlobalRepositories().Settings.GetOrCreate(userCtx.UserID)
	if err != nil {
		return false, err
	}
	if settings.HasJournalPassword() {
		return models.CheckPasswordHash(password, settings.JournalPassword), nil
	}
	return coordinatorFor(userCtx).CheckJournalPassword(c.Context(), password)
}

func unlockSecret() string {
	return env.GetEnv("JOURNAL_UNLOCK_SECRET", "")
}
