// Package contentcache memoizes expensive generated content behind a
// key-value store with a per-entry time-to-live. Entries are written and
// replaced wholesale; an expired entry is a miss, never served.
package contentcache

import (
	"context"
	"encoding/json"
	"time"
)

// KeyValue is the persistence port. The production implementation is
// cache.Store (Redis); tests use an in-memory map.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Key identifies one cached unit. Variant discriminates semantically
// distinct content for the same subject (e.g. relationship type); entries
// for different variants never satisfy each other's lookups.
type Key struct {
	Subject string
	Variant string
}

func (k Key) String() string {
	if k.Variant == "" {
		return k.Subject
	}
	return k.Subject + ":" + k.Variant
}

type entry[T any] struct {
	Payload   T         `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// Cache wraps a generation function with TTL-aware memoization for one
// content kind. The prefix namespaces the kind inside the shared store.
type Cache[T any] struct {
	store  KeyValue
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// New creates a cache for one content kind.
func New[T any](store KeyValue, prefix string, ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		store:  store,
		prefix: prefix,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Get returns the cached payload for key when a valid entry exists,
// otherwise invokes generate and persists the fresh result. A failed
// generation leaves whatever is stored untouched and propagates the error.
// Concurrent calls for the same expired key may both generate; the last
// write wins, which is fine because regenerated payloads are
// interchangeable restatements of the same prompt.
func (c *Cache[T]) Get(ctx context.Context, key Key, generate func(context.Context) (T, error)) (T, error) {
	if payload, ok := c.lookup(ctx, key); ok {
		return payload, nil
	}

	payload, err := generate(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	// Persisting is best-effort: the generated payload is the product, the
	// cache write only an optimization.
	_ = c.put(ctx, key, payload)
	return payload, nil
}

// Invalidate removes the entry for key so the next Get regenerates,
// used when the subject's variant context changes.
func (c *Cache[T]) Invalidate(ctx context.Context, key Key) error {
	return c.store.Delete(ctx, c.storageKey(key))
}

func (c *Cache[T]) lookup(ctx context.Context, key Key) (T, bool) {
	var zero T
	raw, err := c.store.Get(ctx, c.storageKey(key))
	if err != nil {
		// Absent, expired server-side, or unreachable: all are misses.
		return zero, false
	}

	var e entry[T]
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		// Corrupt entries are misses; they get overwritten on regeneration.
		return zero, false
	}
	if c.now().Sub(e.CreatedAt) >= c.ttl {
		return zero, false
	}
	return e.Payload, true
}

func (c *Cache[T]) put(ctx context.Context, key Key, payload T) error {
	raw, err := json.Marshal(entry[T]{Payload: payload, CreatedAt: c.now()})
	if err != nil {
		return err
	}
	// The store expiration mirrors the TTL so stale entries self-purge.
	return c.store.Set(ctx, c.storageKey(key), string(raw), c.ttl)
}

func (c *Cache[T]) storageKey(key Key) string {
	return c.prefix + ":" + key.String()
}
