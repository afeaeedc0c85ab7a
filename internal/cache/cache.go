// Package cache provides the key/value store with per-entry expiration that
// sits in front of per-task lookups.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	// Get returns the stored value and true, or false when the key is absent
	// or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Remove(ctx context.Context, key string) error
}
