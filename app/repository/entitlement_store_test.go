package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/moodvault/moodvault/app/models"
	"github.com/moodvault/moodvault/internal/pkg/entitlement"
)

type fakeSettingsRepo struct {
	enabled map[uint]bool
	plans   map[uint]string
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{enabled: map[uint]bool{}, plans: map[uint]string{}}
}

func (f *fakeSettingsRepo) GetOrCreate(userID uint) (*models.UserSettings, error) {
	return &models.UserSettings{UserID: userID, Plan: f.plans[userID], JournalLockEnabled: f.enabled[userID]}, nil
}

func (f *fakeSettingsRepo) Save(settings *models.UserSettings) error { return nil }

func (f *fakeSettingsRepo) JournalLockEnabled(userID uint) (bool, error) {
	return f.enabled[userID], nil
}

func (f *fakeSettingsRepo) ConfirmJournalLock(userID uint, enabled bool) error {
	f.enabled[userID] = enabled
	return nil
}

func (f *fakeSettingsRepo) SetJournalPassword(userID uint, passwordHash string) error { return nil }

func (f *fakeSettingsRepo) SetPlan(userID uint, plan string) error {
	f.plans[userID] = plan
	return nil
}

func (f *fakeSettingsRepo) TouchAPIKeyUsage(settingsID uint) error { return nil }

type fakeSubscriptionRepo struct {
	snapshots map[uint]*models.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{snapshots: map[uint]*models.Subscription{}}
}

func (f *fakeSubscriptionRepo) GetByUserID(userID uint) (*models.Subscription, error) {
	if s, ok := f.snapshots[userID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubscriptionRepo) Upsert(snapshot *models.Subscription) error {
	f.snapshots[snapshot.UserID] = snapshot
	return nil
}

func (f *fakeSubscriptionRepo) Delete(userID uint) error {
	delete(f.snapshots, userID)
	return nil
}

func TestEntitlementStoreSaveSnapshotReconcilesPlan(t *testing.T) {
	settings := newFakeSettingsRepo()
	subs := newFakeSubscriptionRepo()
	store := NewEntitlementStore(settings, subs)

	err := store.SaveSnapshot(7, &entitlement.Subscription{
		Status:    entitlement.StatusActive,
		ProductID: "premium_monthly",
		Platform:  "playstore",
	})
	assert.NoError(t, err)

	snapshot, err := subs.GetByUserID(7)
	assert.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusActive, snapshot.Status)
	assert.Equal(t, "premium_monthly", snapshot.ProductID)
	assert.False(t, snapshot.LastSyncedAt.IsZero())
	assert.Equal(t, "premium", settings.plans[7])

	err = store.SaveSnapshot(7, &entitlement.Subscription{Status: entitlement.StatusExpired})
	assert.NoError(t, err)
	assert.Equal(t, "free", settings.plans[7])
}

func TestEntitlementStoreJournalLockRoundTrip(t *testing.T) {
	settings := newFakeSettingsRepo()
	store := NewEntitlementStore(settings, newFakeSubscriptionRepo())

	enabled, err := store.JournalLockEnabled(3)
	assert.NoError(t, err)
	assert.False(t, enabled)

	assert.NoError(t, store.ConfirmJournalLock(3, true))
	enabled, err = store.JournalLockEnabled(3)
	assert.NoError(t, err)
	assert.True(t, enabled)
}
