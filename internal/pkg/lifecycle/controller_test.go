package lifecycle

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/moodvault/moodvault/internal/pkg/entitlement"
)

type countingRefresher struct {
	calls int64
}

func (r *countingRefresher) RefreshSubscription(ctx context.Context) (*entitlement.Subscription, error) {
	atomic.AddInt64(&r.calls, 1)
	return &entitlement.Subscription{Status: entitlement.StatusActive}, nil
}

func (r *countingRefresher) count() int64 {
	return atomic.LoadInt64(&r.calls)
}

func waitForCount(t *testing.T, r *countingRefresher, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r.count() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("refresh count = %d, want %d", r.count(), want)
}

func TestShouldRefresh(t *testing.T) {
	c := NewController(NewHub(), &countingRefresher{}, "subscription")

	cases := []struct {
		name     string
		previous State
		tr       Transition
		want     bool
	}{
		{"background to active on watched screen", StateBackground, Transition{StateActive, "subscription"}, true},
		{"inactive to active on watched screen", StateInactive, Transition{StateActive, "subscription"}, true},
		{"background to active on other screen", StateBackground, Transition{StateActive, "journal"}, false},
		{"active to active", StateActive, Transition{StateActive, "subscription"}, false},
		{"active to background", StateActive, Transition{StateBackground, "subscription"}, false},
		{"background to inactive", StateBackground, Transition{StateInactive, "subscription"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.shouldRefresh(tc.previous, tc.tr); got != tc.want {
				t.Fatalf("shouldRefresh(%v, %+v) = %v, want %v", tc.previous, tc.tr, got, tc.want)
			}
		})
	}
}

func TestControllerRefreshesOnForeground(t *testing.T) {
	hub := NewHub()
	refresher := &countingRefresher{}
	c := NewController(hub, refresher, "subscription")
	c.Start()
	defer c.Stop()

	hub.Publish(StateBackground, "subscription")
	hub.Publish(StateActive, "subscription")
	waitForCount(t, refresher, 1)

	// Same round trip on a different screen must not refresh.
	hub.Publish(StateBackground, "journal")
	hub.Publish(StateActive, "journal")

	// Sentinel round trip proves the previous pair was processed.
	hub.Publish(StateBackground, "subscription")
	hub.Publish(StateActive, "subscription")
	waitForCount(t, refresher, 2)
}

func TestControllerStartStopIdempotent(t *testing.T) {
	hub := NewHub()
	c := NewController(hub, &countingRefresher{}, "subscription")

	c.Start()
	c.Start()
	if !c.IsRunning() {
		t.Fatal("controller should be running")
	}
	c.Stop()
	c.Stop()
	if c.IsRunning() {
		t.Fatal("controller should be stopped")
	}

	// Restart works after a stop.
	c.Start()
	if !c.IsRunning() {
		t.Fatal("controller should be running after restart")
	}
	c.Stop()
}

func TestHubUnsubscribeIsSafeTwice(t *testing.T) {
	hub := NewHub()
	ch, unsubscribe := hub.Subscribe()
	unsubscribe()
	unsubscribe()

	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after unsubscribe")
	}

	// Publishing after unsubscribe must not panic.
	hub.Publish(StateActive, "subscription")
}
