package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/moodvault/moodvault/app/models"
	"github.com/moodvault/moodvault/app/repository"
	"github.com/moodvault/moodvault/internal/pkg/entitlements"
)

// HandleGetUserAccount returns account information for the authenticated user.
func HandleGetUserAccount(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return nil
	}

	repos := repository.GetGlobalRepositories()
	account, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	settings, err := repos.Settings.GetOrCreate(userCtx.UserID)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user settings")
	}

	plan := entitlements.Plan(settings.Plan)
	if plan == "" {
		plan = entitlements.PlanFree
	}
	canGuidance, canProfile, canJournalLock := entitlements.AllowedFeatures(plan)

	var snapshot fiber.Map
	if sub, err := repos.Subscription.GetByUserID(userCtx.UserID); err == nil {
		snapshot = fiber.Map{
			"status":         sub.Status,
			"product_id":     sub.ProductID,
			"platform":       sub.Platform,
			"expires_at":     formatTimePtr(sub.ExpiresAt),
			"last_synced_at": sub.LastSyncedAt.UTC().Format(time.RFC3339),
		}
	}

	return c.JSON(fiber.Map{
		"id":                   account.ID,
		"subscriber_ref":       account.UUID,
		"username":             account.Name,
		"email":                account.Email,
		"status":               account.Status,
		"plan":                 string(plan),
		"is_admin":             account.Role == models.ROLE_ADMIN,
		"created_at":           account.CreatedAt.UTC().Format(time.RFC3339),
		"last_login_at":        formatTimePtr(account.LastLoginAt),
		"api_key_last_used_at": formatTimePtr(settings.APIKeyLastUsedAt),
		"journal_lock_enabled": settings.JournalLockEnabled,
		"subscription":         snapshot,
		"features": fiber.Map{
			"relationship_guidance": canGuidance,
			"emotional_profile":     canProfile,
			"journal_lock":          canJournalLock,
		},
	})
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
