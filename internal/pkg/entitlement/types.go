package entitlement

import "time"

// Status is the exhaustive set of billing relationship states.
type Status string

const (
	StatusTrialing    Status = "trialing"
	StatusActive      Status = "active"
	StatusCancelling  Status = "cancelling"
	StatusGracePeriod Status = "grace_period"
	StatusExpired     Status = "expired"
	StatusNone        Status = "none"
)

// Subscription is the user's billing relationship as reported by the
// entitlement provider. Instances are replaced wholesale on every
// successful refetch. GracePeriodEndsAt is present iff Status is
// grace_period.
type Subscription struct {
	Status            Status     `json:"status"`
	ProductID         string     `json:"product_id"`
	Platform          string     `json:"platform,omitempty"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	GracePeriodEndsAt *time.Time `json:"grace_period_ends_at,omitempty"`
}

// Clone returns an independent copy so callers cannot mutate shared state.
func (s *Subscription) Clone() *Subscription {
	if s == nil {
		return nil
	}
	out := *s
	if s.ExpiresAt != nil {
		t := *s.ExpiresAt
		out.ExpiresAt = &t
	}
	if s.GracePeriodEndsAt != nil {
		t := *s.GracePeriodEndsAt
		out.GracePeriodEndsAt = &t
	}
	return &out
}

// normalize maps unknown provider strings onto the closed status set
// and enforces the grace-period field invariant.
func (s *Subscription) normalize() {
	switch s.Status {
	case StatusTrialing, StatusActive, StatusCancelling, StatusGracePeriod, StatusExpired:
	default:
		s.Status = StatusNone
	}
	if s.Status != StatusGracePeriod {
		s.GracePeriodEndsAt = nil
	}
}

// ToggleResponse is the provider's answer to a journal-lock toggle.
type ToggleResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Enabled bool   `json:"enabled"`
}
