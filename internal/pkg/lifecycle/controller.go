package lifecycle

import (
	"context"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"github.com/moodvault/moodvault/internal/pkg/entitlement"
)

// Refresher re-fetches the subscription when the controller decides the
// client came back to the foreground on the watched screen.
type Refresher interface {
	RefreshSubscription(ctx context.Context) (*entitlement.Subscription, error)
}

// Controller watches lifecycle transitions and refreshes the subscription
// when the app returns from background or inactive to active while the
// watched screen is visible. Transitions between other states, or on other
// screens, never trigger a refresh.
type Controller struct {
	hub         *Hub
	refresher   Refresher
	watchScreen string

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

func NewController(hub *Hub, refresher Refresher, watchScreen string) *Controller {
	return &Controller{
		hub:         hub,
		refresher:   refresher,
		watchScreen: watchScreen,
	}
}

// Start begins observing transitions. Calling Start on a running
// controller is a no-op.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return
	}
	c.stopCh = make(chan struct{})
	c.running = true

	ch, unsubscribe := c.hub.Subscribe()
	c.wg.Add(1)
	go c.watch(ch, unsubscribe)
}

// Stop ends observation and waits for the watcher to finish.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	close(c.stopCh)
	c.running = false
	c.mu.Unlock()

	c.wg.Wait()
}

// IsRunning returns whether the controller is observing transitions.
func (c *Controller) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Controller) watch(ch <-chan Transition, unsubscribe func()) {
	defer c.wg.Done()
	defer unsubscribe()

	previous := StateActive
	for {
		select {
		case <-c.stopCh:
			return
		case tr, ok := <-ch:
			if !ok {
				return
			}
			if c.shouldRefresh(previous, tr) {
				if _, err := c.refresher.RefreshSubscription(context.Background()); err != nil {
					log.Errorf("[Lifecycle] Foreground subscription refresh failed: %v", err)
				}
			}
			previous = tr.State
		}
	}
}

// shouldRefresh applies the foreground rule: only a background or inactive
// to active transition counts, and only while the watched screen is up.
func (c *Controller) shouldRefresh(previous State, tr Transition) bool {
	if tr.State != StateActive {
		return false
	}
	if previous != StateBackground && previous != StateInactive {
		return false
	}
	return tr.Screen == c.watchScreen
}
