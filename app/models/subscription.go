package models

import (
	"time"
)

const (
	SubscriptionStatusTrialing    = "trialing"
	SubscriptionStatusActive      = "active"
	SubscriptionStatusCancelling  = "cancelling"
	SubscriptionStatusGracePeriod = "grace_period"
	SubscriptionStatusExpired     = "expired"
	SubscriptionStatusNone        = "none"
)

// Subscription is the snapshot of the last successful entitlement fetch for
// a user. Replaced wholesale on every refresh; GracePeriodEndsAt is set iff
// Status is grace_period.
type Subscription struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UserID            uint       `gorm:"uniqueIndex" json:"user_id"`
	Status            string     `gorm:"type:varchar(32);not null;default:'none';index" json:"status"`
	ProductID         string     `gorm:"type:varchar(191)" json:"product_id"`
	Platform          string     `gorm:"type:varchar(20)" json:"platform"`
	ExpiresAt         *time.Time `gorm:"type:timestamp;default:null" json:"expires_at,omitempty"`
	GracePeriodEndsAt *time.Time `gorm:"type:timestamp;default:null" json:"grace_period_ends_at,omitempty"`
	LastSyncedAt      time.Time  `gorm:"type:timestamp" json:"last_synced_at"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsEntitling reports whether the status grants access to paid features.
func IsEntitlingSubscriptionStatus(status string) bool {
	switch status {
	case SubscriptionStatusTrialing, SubscriptionStatusActive,
		SubscriptionStatusCancelling, SubscriptionStatusGracePeriod:
		return true
	default:
		return false
	}
}
