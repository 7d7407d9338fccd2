package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/moodvault/moodvault/app/models"
)

// settingsRepository implements the SettingsRepository interface
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new user settings repository instance
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// GetOrCreate returns existing settings or creates defaults for the user
func (r *settingsRepository) GetOrCreate(userID uint) (*models.UserSettings, error) {
	return models.GetOrCreateUserSettings(r.db, userID)
}

// Save persists the whole settings row
func (r *settingsRepository) Save(settings *models.UserSettings) error {
	return r.db.Save(settings).Error
}

// JournalLockEnabled returns the last confirmed journal lock state
func (r *settingsRepository) JournalLockEnabled(userID uint) (bool, error) {
	settings, err := models.GetOrCreateUserSettings(r.db, userID)
	if err != nil {
		return false, err
	}
	return settings.JournalLockEnabled, nil
}

// ConfirmJournalLock records the journal lock state the provider confirmed
func (r *settingsRepository) ConfirmJournalLock(userID uint, enabled bool) error {
	settings, err := models.GetOrCreateUserSettings(r.db, userID)
	if err != nil {
		return err
	}
	settings.ConfirmJournalLock(enabled)
	return r.db.Save(settings).Error
}

// SetJournalPassword stores the local journal password hash
func (r *settingsRepository) SetJournalPassword(userID uint, passwordHash string) error {
	settings, err := models.GetOrCreateUserSettings(r.db, userID)
	if err != nil {
		return err
	}
	settings.JournalPassword = passwordHash
	return r.db.Save(settings).Error
}

// SetPlan updates the stored plan for the user
func (r *settingsRepository) SetPlan(userID uint, plan string) error {
	return r.db.Model(&models.UserSettings{}).
		Where("user_id = ?", userID).
		Update("plan", plan).Error
}

// TouchAPIKeyUsage refreshes the API key last-used timestamp best-effort
func (r *settingsRepository) TouchAPIKeyUsage(settingsID uint) error {
	now := time.Now()
	return r.db.Model(&models.UserSettings{}).
		Where("id = ?", settingsID).
		Updates(map[string]any{"api_key_last_used_at": now}).Error
}
