package repository

import (
	"gorm.io/gorm"

	"github.com/moodvault/moodvault/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUUID(uuid string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByAPIKeyHash(hash string) (*models.User, *models.UserSettings, error)
	Update(user *models.User) error
	Delete(id uint) error
	Count() (int64, error)
}

// SettingsRepository defines the interface for per-user settings operations
type SettingsRepository interface {
	GetOrCreate(userID uint) (*models.UserSettings, error)
	Save(settings *models.UserSettings) error
	JournalLockEnabled(userID uint) (bool, error)
	ConfirmJournalLock(userID uint, enabled bool) error
	SetJournalPassword(userID uint, passwordHash string) error
	SetPlan(userID uint, plan string) error
	TouchAPIKeyUsage(settingsID uint) error
}

// SubscriptionRepository defines the interface for subscription snapshot operations
type SubscriptionRepository interface {
	GetByUserID(userID uint) (*models.Subscription, error)
	Upsert(snapshot *models.Subscription) error
	Delete(userID uint) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Settings     SettingsRepository
	Subscription SubscriptionRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Settings:     NewSettingsRepository(db),
		Subscription: NewSubscriptionRepository(db),
	}
}
