package entitlement

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/moodvault/moodvault/internal/pkg/offers"
)

// API is the provider surface the coordinator depends on; *Client is the
// production implementation.
type API interface {
	SubscriptionDetails(ctx context.Context, subscriberRef string) (*Subscription, error)
	ToggleJournalLock(ctx context.Context, subscriberRef, password string) (*ToggleResponse, error)
	CheckJournalPassword(ctx context.Context, subscriberRef, password string) (bool, error)
}

// Catalog lists raw store products for a set of SKUs.
type Catalog interface {
	FetchProducts(ctx context.Context, skus []string, productType string) ([]offers.RawOffer, error)
}

// CatalogResolver picks the store catalog for a platform.
type CatalogResolver func(platform offers.Platform) (Catalog, error)

// Persistence stores coordinator confirmations between sessions.
type Persistence interface {
	JournalLockEnabled(userID uint) (bool, error)
	ConfirmJournalLock(userID uint, enabled bool) error
	SaveSnapshot(userID uint, sub *Subscription) error
}

// Coordinator is the single source of truth for one user's subscription
// state and journal-lock flag. One instance per signed-in session, created
// at session start and discarded at sign-out.
type Coordinator struct {
	userID        uint
	subscriberRef string
	api           API
	catalogFor    CatalogResolver
	store         Persistence

	// toggleMu serializes SetJournalLock against itself; the source relied
	// on a UI-level guard that does not exist for concurrent handlers.
	toggleMu sync.Mutex

	mu                 sync.Mutex
	current            *Subscription
	journalLockEnabled bool
}

// NewCoordinator builds a coordinator and seeds the journal-lock flag from
// the last persisted confirmation.
func NewCoordinator(userID uint, subscriberRef string, api API, catalogFor CatalogResolver, store Persistence) *Coordinator {
	c := &Coordinator{
		userID:        userID,
		subscriberRef: subscriberRef,
		api:           api,
		catalogFor:    catalogFor,
		store:         store,
	}
	if store != nil {
		if enabled, err := store.JournalLockEnabled(userID); err == nil {
			c.journalLockEnabled = enabled
		} else {
			log.Printf("entitlement: could not load journal lock state for user %d: %v", userID, err)
		}
	}
	return c
}

// CurrentSubscription returns a copy of the last good subscription, or nil
// when no fetch has succeeded yet.
func (c *Coordinator) CurrentSubscription() *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Clone()
}

// JournalLockEnabled returns the flag as last confirmed by the provider.
func (c *Coordinator) JournalLockEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.journalLockEnabled
}

// RefreshSubscription fetches the authoritative subscription and replaces
// the in-memory value wholesale. On failure the previous value is retained:
// stale-but-present beats blanking a previously successful screen.
func (c *Coordinator) RefreshSubscription(ctx context.Context) (*Subscription, error) {
	sub, err := c.api.SubscriptionDetails(ctx, c.subscriberRef)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.current = sub
	c.mu.Unlock()

	if c.store != nil {
		// Snapshot persistence is best-effort; the fetch already succeeded.
		if err := c.store.SaveSnapshot(c.userID, sub); err != nil {
			log.Printf("entitlement: snapshot persist failed for user %d: %v", c.userID, err)
		}
	}
	return sub.Clone(), nil
}

// RefreshOffers lists the given SKUs on the platform's store and normalizes
// each raw offer into the store-agnostic shape.
func (c *Coordinator) RefreshOffers(ctx context.Context, skus []string, platform offers.Platform) ([]offers.NormalizedOffer, error) {
	catalog, err := c.catalogFor(platform)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Op: "offers", Err: err}
	}
	raws, err := catalog.FetchProducts(ctx, skus, "subs")
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Op: "offers", Err: err}
	}
	return offers.NormalizeAll(raws), nil
}

// SetJournalLock toggles the journal-lock flag optimistically: capture the
// previous value, flip for immediate responsiveness, attempt the remote
// toggle, then commit the provider's answer or revert explicitly. Whatever
// happens, the flag ends equal to the provider's last-known authoritative
// value.
func (c *Coordinator) SetJournalLock(ctx context.Context, password string) (bool, error) {
	c.toggleMu.Lock()
	defer c.toggleMu.Unlock()

	c.mu.Lock()
	previous := c.journalLockEnabled
	c.journalLockEnabled = !previous
	c.mu.Unlock()

	resp, err := c.api.ToggleJournalLock(ctx, c.subscriberRef, password)
	if err != nil {
		c.mu.Lock()
		c.journalLockEnabled = previous
		c.mu.Unlock()
		return previous, &ToggleError{Err: err}
	}

	// The provider's record wins over our local expectation.
	enabled := resp.Enabled
	c.mu.Lock()
	c.journalLockEnabled = enabled
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.ConfirmJournalLock(c.userID, enabled); err != nil {
			// The remote record changed; keep matching it in memory and
			// report the persistence problem.
			return enabled, fmt.Errorf("journal lock confirmed remotely but not persisted: %w", err)
		}
	}
	return enabled, nil
}

// CheckJournalPassword proxies the provider's password check.
func (c *Coordinator) CheckJournalPassword(ctx context.Context, password string) (bool, error) {
	return c.api.CheckJournalPassword(ctx, c.subscriberRef, password)
}
