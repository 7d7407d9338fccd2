package entitlement

import "sync"

// Factory builds a coordinator for a user session.
type Factory func(userID uint, subscriberRef string) *Coordinator

// Registry holds one coordinator per signed-in user. Coordinators are
// created lazily on the first authenticated request of a session and
// discarded at sign-out, replacing the ambient module-level subscription
// state the original client carried.
type Registry struct {
	mu     sync.Mutex
	byUser map[uint]*Coordinator
	build  Factory
}

func NewRegistry(build Factory) *Registry {
	return &Registry{
		byUser: make(map[uint]*Coordinator),
		build:  build,
	}
}

// Get returns the user's coordinator, creating it on first use.
func (r *Registry) Get(userID uint, subscriberRef string) *Coordinator {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byUser[userID]; ok {
		return c
	}
	c := r.build(userID, subscriberRef)
	r.byUser[userID] = c
	return c
}

// Peek returns the coordinator without creating one.
func (r *Registry) Peek(userID uint) (*Coordinator, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byUser[userID]
	return c, ok
}

// Discard drops the user's coordinator at sign-out.
func (r *Registry) Discard(userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byUser, userID)
}
