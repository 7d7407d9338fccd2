package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/moodvault/moodvault/app/models"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// GetByUserID retrieves the subscription snapshot for a user
func (r *subscriptionRepository) GetByUserID(userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("user_id = ?", userID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Upsert inserts or replaces the snapshot keyed by user ID
func (r *subscriptionRepository) Upsert(snapshot *models.Subscription) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "product_id", "platform",
			"expires_at", "grace_period_ends_at", "last_synced_at",
		}),
	}).Create(snapshot).Error
}

// Delete removes the snapshot for a user
func (r *subscriptionRepository) Delete(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Subscription{}).Error
}
