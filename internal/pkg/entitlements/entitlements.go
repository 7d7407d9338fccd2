// Package entitlements maps subscription state to feature access.
package entitlements

import (
	"strings"

	"github.com/moodvault/moodvault/internal/pkg/entitlement"
)

type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// entitlingStatuses are the provider statuses that grant premium access.
// A cancelling subscription stays premium until it actually expires, and a
// grace period bridges billing retries.
var entitlingStatuses = map[entitlement.Status]bool{
	entitlement.StatusTrialing:    true,
	entitlement.StatusActive:      true,
	entitlement.StatusCancelling:  true,
	entitlement.StatusGracePeriod: true,
}

// HasPremiumAccess reports whether the subscription grants premium features.
func HasPremiumAccess(sub *entitlement.Subscription) bool {
	return sub != nil && entitlingStatuses[sub.Status]
}

// PlanForSubscription returns the local plan matching the provider state.
func PlanForSubscription(sub *entitlement.Subscription) Plan {
	if HasPremiumAccess(sub) {
		return PlanPremium
	}
	return PlanFree
}

// AllowedFeatures returns which premium surfaces a plan can use.
func AllowedFeatures(plan Plan) (guidance, profile, journalLock bool) {
	switch plan {
	case PlanPremium:
		return true, true, true
	default:
		return false, false, false
	}
}

// EffectiveFeatures combines the stored plan with the live subscription;
// the live subscription wins when the two disagree.
func EffectiveFeatures(storedPlan string, sub *entitlement.Subscription) (guidance, profile, journalLock bool) {
	plan := Plan(strings.ToLower(storedPlan))
	if sub != nil {
		plan = PlanForSubscription(sub)
	}
	return AllowedFeatures(plan)
}
