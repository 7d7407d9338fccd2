// Package lifecycle tracks the client application state reported by the
// mobile app and drives the refresh-on-foreground behaviour for the
// subscription screen.
package lifecycle

import "sync"

// State is the reported application lifecycle state.
type State string

const (
	StateActive     State = "active"
	StateBackground State = "background"
	StateInactive   State = "inactive"
)

// Transition is one reported lifecycle change together with the screen the
// client had in the foreground at that moment.
type Transition struct {
	State  State
	Screen string
}

// Hub fans lifecycle transitions out to subscribers for one user session.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Transition]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Transition]struct{})}
}

// Subscribe registers a listener. The returned function removes the
// subscription and closes the channel; calling it more than once is safe.
func (h *Hub) Subscribe() (<-chan Transition, func()) {
	ch := make(chan Transition, 8)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, unsubscribe
}

// Publish delivers the transition to every subscriber. Slow subscribers
// whose buffer is full miss the event instead of blocking the reporter.
func (h *Hub) Publish(state State, screen string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		select {
		case ch <- Transition{State: state, Screen: screen}:
		default:
		}
	}
}
