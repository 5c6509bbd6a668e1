// Package cache stores rendered artifacts keyed by content hash.
//
// Rendering a graph through Graphviz is the slowest step of the CLI, and
// the output depends only on the DOT text and the target format. The CLI
// therefore keys renders with [RenderKey] and keeps them in a [Cache].
//
// # Backends
//
//   - [FileCache]: one file per entry under the user cache directory
//   - [RedisCache]: a shared Redis instance, for teams rendering the same graphs
//   - [NullCache]: never stores anything (--no-cache)
//
// [Instrumented] reports hits, misses and writes to the observability cache
// hooks. [Scoped] prefixes keys, which the CLI uses to separate builds.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. ok is false on a miss.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
