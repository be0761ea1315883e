// Package cache stores refined layouts and rendered artifacts between runs.
//
// Entries are opaque byte slices addressed by string keys. A [Keyer] derives
// keys from everything that influences a result: the input graph and initial
// positions for a refined layout, the layout hash and render options for an
// artifact. Changing any option therefore misses the cache instead of
// returning a stale result.
//
//	c, _ := cache.NewFileCache(dir)
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(cache.InputHash(g.Edges(), pos), cache.LayoutKeyOpts{Mode: "vertex", Passes: 10})
//
// [NullCache] disables caching without changing call sites.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// GetJSON decodes the entry under key into v.
// It returns [ErrCacheMiss] when the key is absent. An entry that no longer
// decodes is deleted and reported as a miss.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Join(ErrCacheMiss, c.Delete(ctx, key))
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
