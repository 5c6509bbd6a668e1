// Package metrics implements the observability hooks on top of Prometheus.
//
// A single [Metrics] value satisfies observability.ProgramHooks,
// observability.RenderHooks and observability.CacheHooks:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg)
//	observability.SetProgramHooks(m)
//	observability.SetRenderHooks(m)
//	observability.SetCacheHooks(m)
//
// All operations are safe for concurrent use.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/apg/pkg/observability"
)

const namespace = "apg"

var (
	_ observability.ProgramHooks = (*Metrics)(nil)
	_ observability.RenderHooks  = (*Metrics)(nil)
	_ observability.CacheHooks   = (*Metrics)(nil)
)

// Metrics holds every collector registered by [New].
type Metrics struct {
	// BoxesAttached counts boxes added to programs. Labels: kind.
	BoxesAttached *prometheus.CounterVec

	// RunsActive is the number of runs started but not yet finished.
	RunsActive prometheus.Gauge

	// RunsTotal counts finished runs. Labels: state (completed, failed, cancelled).
	RunsTotal *prometheus.CounterVec

	// RunDuration measures wall time from start to finish, including time
	// spent suspended.
	RunDuration prometheus.Histogram

	// PublishesTotal counts output writes. PublishFanout measures how many
	// wires each write reached.
	PublishesTotal *prometheus.CounterVec
	PublishFanout  prometheus.Histogram

	// RendersTotal counts renders. Labels: format, status (success, error).
	RendersTotal   *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec

	// CacheOps counts cache lookups and writes. Labels: key_type, op (hit, miss, set).
	CacheOps *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
// Registering twice on the same registerer panics, as with promauto.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		BoxesAttached: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "program",
			Name:      "boxes_attached_total",
			Help:      "Boxes attached to programs by kind",
		}, []string{"kind"}),
		RunsActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "program",
			Name:      "runs_active",
			Help:      "Runs started but not finished",
		}),
		RunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "program",
			Name:      "runs_total",
			Help:      "Finished runs by terminal state",
		}, []string{"state"}),
		RunDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "program",
			Name:      "run_duration_seconds",
			Help:      "Run wall time in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
		}),
		PublishesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "program",
			Name:      "publishes_total",
			Help:      "Output plug writes by plug",
		}, []string{"plug"}),
		PublishFanout: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "program",
			Name:      "publish_fanout",
			Help:      "Wires reached per output write",
			Buckets:   []float64{0, 1, 2, 4, 8, 16},
		}),
		RendersTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "renders_total",
			Help:      "Renders by format and status",
		}, []string{"format", "status"}),
		RenderDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Render duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format"}),
		CacheOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "operations_total",
			Help:      "Cache operations by key type and outcome",
		}, []string{"key_type", "op"}),
	}
}

// =============================================================================
// observability.ProgramHooks
// =============================================================================

func (m *Metrics) OnBoxAttached(_ context.Context, _ string, kind string) {
	m.BoxesAttached.WithLabelValues(kind).Inc()
}

func (m *Metrics) OnRunStart(context.Context, string) { m.RunsActive.Inc() }

func (m *Metrics) OnRunComplete(_ context.Context, _ string, state string, d time.Duration, _ error) {
	m.RunsActive.Dec()
	m.RunsTotal.WithLabelValues(state).Inc()
	m.RunDuration.Observe(d.Seconds())
}

func (m *Metrics) OnPublish(_ context.Context, _ string, plug string, fanout int) {
	m.PublishesTotal.WithLabelValues(plug).Inc()
	m.PublishFanout.Observe(float64(fanout))
}

// =============================================================================
// observability.RenderHooks
// =============================================================================

func (m *Metrics) OnRenderStart(context.Context, string, int) {}

func (m *Metrics) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.RendersTotal.WithLabelValues(format, status).Inc()
	m.RenderDuration.WithLabelValues(format).Observe(d.Seconds())
}

// =============================================================================
// observability.CacheHooks
// =============================================================================

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, _ int) {
	m.CacheOps.WithLabelValues(keyType, "set").Inc()
}
