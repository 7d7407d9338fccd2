package repository

import (
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/moodvault/moodvault/app/models"
	"github.com/moodvault/moodvault/internal/pkg/entitlement"
	"github.com/moodvault/moodvault/internal/pkg/entitlements"
)

// EntitlementStore bridges the coordinator's persistence port to the
// settings and subscription repositories. It also reconciles the stored
// plan with every snapshot so feature gating keeps working offline.
type EntitlementStore struct {
	settings      SettingsRepository
	subscriptions SubscriptionRepository
}

func NewEntitlementStore(settings SettingsRepository, subscriptions SubscriptionRepository) *EntitlementStore {
	return &EntitlementStore{settings: settings, subscriptions: subscriptions}
}

// NewGlobalEntitlementStore builds the store over the global repositories.
func NewGlobalEntitlementStore() *EntitlementStore {
	repos := GetGlobalRepositories()
	return NewEntitlementStore(repos.Settings, repos.Subscription)
}

func (s *EntitlementStore) JournalLockEnabled(userID uint) (bool, error) {
	return s.settings.JournalLockEnabled(userID)
}

func (s *EntitlementStore) ConfirmJournalLock(userID uint, enabled bool) error {
	return s.settings.ConfirmJournalLock(userID, enabled)
}

// SaveSnapshot persists the fetched subscription and reconciles the plan.
// Plan reconciliation is best-effort; the snapshot is the primary record.
func (s *EntitlementStore) SaveSnapshot(userID uint, sub *entitlement.Subscription) error {
	if sub == nil {
		return nil
	}
	snapshot := &models.Subscription{
		UserID:            userID,
		Status:            string(sub.Status),
		ProductID:         sub.ProductID,
		Platform:          sub.Platform,
		ExpiresAt:         sub.ExpiresAt,
		GracePeriodEndsAt: sub.GracePeriodEndsAt,
		LastSyncedAt:      time.Now(),
	}
	if err := s.subscriptions.Upsert(snapshot); err != nil {
		return err
	}

	plan := string(entitlements.PlanForSubscription(sub))
	if err := s.settings.SetPlan(userID, plan); err != nil {
		log.Errorf("plan reconciliation failed for user %d: %v", userID, err)
	}
	return nil
}
