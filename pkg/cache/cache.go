// Package cache stores computed placements so repeated requests for the same
// scenario and planner options skip the solver.
//
// Three backends share the [Cache] interface:
//   - [NullCache] never stores anything and disables caching.
//   - [FileCache] keeps entries as JSON files for CLI use.
//   - [RedisCache] shares entries between server instances.
//
// Keys are built by a [Keyer] from content hashes, so equal inputs map to the
// same entry regardless of where they came from.
package cache

import (
	"context"
	"time"
)

// TTLPlacement is the default lifetime of a cached placement.
const TTLPlacement = 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
