// Package cache stores import-extraction results between runs.
//
// Parsing is the expensive step of requirement generation, and package
// builds scan the same files over and over. Results are keyed by the content
// hash of the source plus the extraction options (see [Keyer]), so a cached
// entry is valid no matter where the file is installed.
//
// Three implementations are provided:
//
//   - [FileCache]: one JSON file per entry, for use across CLI invocations
//   - [MemoryCache]: a bounded LRU, for deduplication within one run
//   - [NullCache]: stores nothing
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired and
	// unreadable entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// NullCache never stores anything; every Get is a miss.
type NullCache struct{}

// NewNullCache returns a cache that disables caching.
func NewNullCache() Cache {
	return NullCache{}
}

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
