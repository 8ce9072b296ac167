// Package cache memoizes dependency resolutions keyed by a fingerprint of
// the declarations and policy, so a long-running process (appdesc watch)
// skips resolution when a reload leaves the dependencies untouched. Nothing
// persists across processes.
//
// Two backends exist:
//   - single: Ristretto in-memory cache
//   - disabled: noop passthrough
//
// All implementations are safe for concurrent use.
//
//	key := cache.Key(cache.NamespaceResolution, payload)
//	data, err := c.Get(ctx, key)
//	if errors.Is(err, cache.ErrNotFound) {
//		// resolve and Set
//	}
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// NamespaceResolution prefixes keys of cached dependency resolutions.
const NamespaceResolution = "resolution"

// Cache defines the interface for cache operations.
type Cache interface {
	// Get returns ErrNotFound on a miss and ErrClosed after Close.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with no expiration.
	Set(ctx context.Context, key string, value []byte) error

	// SetWithTTL stores a value that expires after ttl.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete is idempotent.
	Delete(ctx context.Context, key string) error

	// Close is idempotent; every later operation returns ErrClosed.
	Close() error
}

// Stats provides cache statistics.
type Stats struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	KeyCount  uint64 `json:"key_count"`
	BytesUsed uint64 `json:"bytes_used"`
	Evictions uint64 `json:"evictions"`
}

// StatsProvider is implemented by caches that track statistics.
type StatsProvider interface {
	Stats() Stats
}

// Key builds a cache key from a namespace and the fingerprint of payload.
func Key(namespace string, payload []byte) string {
	sum := sha256.Sum256(payload)
	return namespace + ":" + hex.EncodeToString(sum[:])
}

// Namespace returns the namespace of a key built by Key, or "" when key
// has none.
func Namespace(key string) string {
	ns, _, ok := strings.Cut(key, ":")
	if !ok {
		return ""
	}
	return ns
}
