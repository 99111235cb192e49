// Package cache provides the process-wide cache-aside layer used by the
// domain services. Values are stored serialized so the in-memory and Redis
// backends are interchangeable behind the same contract.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DefaultTTL is applied when a caller does not specify an expiration.
const DefaultTTL = 5 * time.Minute

// Cache is the byte-level contract implemented by the backends. A ttl of
// zero or less means the backend's default TTL.
type Cache interface {
	// Get returns the raw value and whether the key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the value under key with the given ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Remove evicts a single key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// RemoveByPattern evicts every tracked key matching the pattern, where
	// a single trailing '*' matches any suffix (e.g. "products:*").
	RemoveByPattern(ctx context.Context, pattern string) error
}

// Get fetches and decodes a typed value. ok is false on a miss.
func Get[T any](ctx context.Context, c Cache, key string) (value T, ok bool, err error) {
	raw, found, err := c.Get(ctx, key)
	if err != nil || !found {
		return value, false, err
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false, fmt.Errorf("failed to decode cached value for %q: %w", key, err)
	}
	return value, true, nil
}

// Set encodes and stores a typed value.
func Set[T any](ctx context.Context, c Cache, key string, value T, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}
	return c.Set(ctx, key, raw, ttl)
}

// GetOrSet returns the cached value for key, or runs fetch on a miss and
// stores the result. It is not atomic across concurrent callers: two
// concurrent misses for the same key may both run fetch. That duplicates
// work but never produces an incorrect result, which cache-aside tolerates.
func GetOrSet[T any](ctx context.Context, c Cache, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	value, ok, err := Get[T](ctx, c, key)
	if err != nil {
		return value, err
	}
	if ok {
		return value, nil
	}

	value, err = fetch(ctx)
	if err != nil {
		return value, err
	}

	if err := Set(ctx, c, key, value, ttl); err != nil {
		return value, err
	}
	return value, nil
}

// matchesPattern implements the eviction glob: a single trailing '*' matches
// any suffix, anything else is an exact comparison.
func matchesPattern(key, pattern string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(key, prefix)
	}
	return key == pattern
}
