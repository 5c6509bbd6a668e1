package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/apg/pkg/observability"
)

// =============================================================================
// Scoped
// =============================================================================

type scoped struct {
	inner  Cache
	prefix string
}

// Scoped returns a view of c whose keys are all prefixed with prefix.
// Closing the view closes c.
func Scoped(c Cache, prefix string) Cache {
	return &scoped{inner: c, prefix: prefix}
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *scoped) Close() error { return s.inner.Close() }

// =============================================================================
// Instrumented
// =============================================================================

type instrumented struct {
	inner Cache
}

// Instrumented reports every Get and Set on c to observability.Cache().
// Hooks are looked up per call, so hooks registered later are honored.
func Instrumented(c Cache) Cache {
	return &instrumented{inner: c}
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.inner.Get(ctx, key)
	if err != nil {
		return data, ok, err
	}
	if ok {
		observability.Cache().OnCacheHit(ctx, keyType(key))
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType(key))
	}
	return data, ok, nil
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.inner.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

func (c *instrumented) Delete(ctx context.Context, key string) error { return c.inner.Delete(ctx, key) }

func (c *instrumented) Close() error { return c.inner.Close() }

// keyType strips any scope so "v1/render:ab12" reports as "render".
func keyType(key string) string {
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		key = key[i+1:]
	}
	return KeyType(key)
}
