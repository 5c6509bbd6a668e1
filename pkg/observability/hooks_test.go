package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Program hooks
	p := NoopProgramHooks{}
	p.OnBoxAttached(ctx, "b1", "graph.graph")
	p.OnRunStart(ctx, "b1")
	p.OnRunComplete(ctx, "b1", "completed", time.Second, nil)
	p.OnPublish(ctx, "b1", "graph", 2)

	// Render hooks
	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, "svg", 4)
	r.OnRenderComplete(ctx, "svg", time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "render")
	c.OnCacheMiss(ctx, "render")
	c.OnCacheSet(ctx, "render", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Program().(NoopProgramHooks); !ok {
		t.Error("Program() should return NoopProgramHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customProgram := &testProgramHooks{}
	SetProgramHooks(customProgram)
	if Program() != customProgram {
		t.Error("SetProgramHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Setting nil should not change hooks
	SetProgramHooks(nil)
	if Program() != customProgram {
		t.Error("SetProgramHooks(nil) should not change hooks")
	}

	// Reset should restore defaults
	Reset()
	if _, ok := Program().(NoopProgramHooks); !ok {
		t.Error("Reset should restore NoopProgramHooks")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset should restore NoopRenderHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset should restore NoopCacheHooks")
	}
}

type testProgramHooks struct{ NoopProgramHooks }
type testRenderHooks struct{ NoopRenderHooks }
type testCacheHooks struct{ NoopCacheHooks }
