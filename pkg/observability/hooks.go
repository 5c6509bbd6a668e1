// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about program scheduling, rendering, and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The Prometheus implementation lives in the metrics subpackage, so programs
// that never register it do not link client_golang.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := metrics.New(prometheus.DefaultRegisterer)
//	    observability.SetProgramHooks(m)
//	    observability.SetRenderHooks(m)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Program().OnRunStart(ctx, boxID)
//	// ... run the task ...
//	observability.Program().OnRunComplete(ctx, boxID, "completed", duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Program Hooks
// =============================================================================

// ProgramHooks receives events from a running dataflow program.
type ProgramHooks interface {
	// OnBoxAttached records a box joining the program.
	OnBoxAttached(ctx context.Context, boxID, kind string)

	// Run events. state is the terminal run state ("completed", "failed",
	// "cancelled").
	OnRunStart(ctx context.Context, boxID string)
	OnRunComplete(ctx context.Context, boxID, state string, duration time.Duration, err error)

	// OnPublish records an output plug publishing a value to fanout wires.
	OnPublish(ctx context.Context, boxID, plug string, fanout int)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from graph rendering.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string, nodeCount int)
	OnRenderComplete(ctx context.Context, format string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopProgramHooks is a no-op implementation of ProgramHooks.
type NoopProgramHooks struct{}

func (NoopProgramHooks) OnBoxAttached(context.Context, string, string) {}
func (NoopProgramHooks) OnRunStart(context.Context, string)            {}
func (NoopProgramHooks) OnRunComplete(context.Context, string, string, time.Duration, error) {
}
func (NoopProgramHooks) OnPublish(context.Context, string, string, int) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, int)                      {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	programHooks ProgramHooks = NoopProgramHooks{}
	renderHooks  RenderHooks  = NoopRenderHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetProgramHooks registers custom program hooks.
// This should be called once at application startup before any program runs.
func SetProgramHooks(h ProgramHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		programHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Program returns the registered program hooks.
func Program() ProgramHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return programHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	programHooks = NoopProgramHooks{}
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
}
