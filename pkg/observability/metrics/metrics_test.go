package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	return New(prometheus.NewRegistry())
}

func TestRunMetrics(t *testing.T) {
	m := newTestMetrics(t)
	ctx := context.Background()

	m.OnRunStart(ctx, "b1")
	m.OnRunStart(ctx, "b2")
	if got := testutil.ToFloat64(m.RunsActive); got != 2 {
		t.Errorf("RunsActive = %v, want 2", got)
	}

	m.OnRunComplete(ctx, "b1", "completed", time.Millisecond, nil)
	m.OnRunComplete(ctx, "b2", "failed", time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(m.RunsActive); got != 0 {
		t.Errorf("RunsActive = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.RunsTotal.WithLabelValues("completed")); got != 1 {
		t.Errorf("completed runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RunsTotal.WithLabelValues("failed")); got != 1 {
		t.Errorf("failed runs = %v, want 1", got)
	}
}

func TestPublishAndAttach(t *testing.T) {
	m := newTestMetrics(t)
	ctx := context.Background()

	m.OnBoxAttached(ctx, "b1", "graph.graph")
	m.OnBoxAttached(ctx, "b2", "graph.graph")
	m.OnPublish(ctx, "b1", "graph", 3)

	if got := testutil.ToFloat64(m.BoxesAttached.WithLabelValues("graph.graph")); got != 2 {
		t.Errorf("BoxesAttached = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.PublishesTotal.WithLabelValues("graph")); got != 1 {
		t.Errorf("PublishesTotal = %v, want 1", got)
	}
}

func TestRenderAndCacheMetrics(t *testing.T) {
	m := newTestMetrics(t)
	ctx := context.Background()

	m.OnRenderComplete(ctx, "svg", time.Millisecond, nil)
	m.OnRenderComplete(ctx, "svg", time.Millisecond, errors.New("bad dot"))
	m.OnCacheHit(ctx, "render")
	m.OnCacheMiss(ctx, "render")
	m.OnCacheMiss(ctx, "render")

	if got := testutil.ToFloat64(m.RendersTotal.WithLabelValues("svg", "error")); got != 1 {
		t.Errorf("render errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.CacheOps.WithLabelValues("render", "miss")); got != 2 {
		t.Errorf("cache misses = %v, want 2", got)
	}
}

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.OnRunStart(context.Background(), "b1")

	n, err := testutil.GatherAndCount(reg, "apg_program_runs_active")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("gathered %d series, want 1", n)
	}
}
