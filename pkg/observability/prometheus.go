package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks records optimizer, pipeline, and cache events as
// Prometheus metrics. It implements [RefineHooks], [PipelineHooks], and
// [CacheHooks].
type PrometheusHooks struct {
	registry *prometheus.Registry

	Runs          *prometheus.CounterVec
	Moves         *prometheus.CounterVec
	MoveDuration  *prometheus.HistogramVec
	Passes        prometheus.Counter
	Cost          prometheus.Gauge
	RunDuration   prometheus.Histogram
	StageDuration *prometheus.HistogramVec
	CacheOps      *prometheus.CounterVec
	CacheBytes    prometheus.Counter
}

// NewPrometheusHooks registers the vankamp metrics on reg. A nil reg gets a
// fresh registry.
func NewPrometheusHooks(reg *prometheus.Registry) *PrometheusHooks {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &PrometheusHooks{
		registry: reg,
		Runs: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vankamp_refine_runs_total",
				Help: "Optimizer runs by mode and result",
			},
			[]string{"mode", "result"},
		),
		Moves: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vankamp_refine_moves_total",
				Help: "Optimizer steps by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
		MoveDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vankamp_refine_move_duration_seconds",
				Help:    "Time spent minimizing one vertex or cell",
				Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
			},
			[]string{"mode"},
		),
		Passes: f.NewCounter(
			prometheus.CounterOpts{
				Name: "vankamp_refine_passes_total",
				Help: "Completed optimizer passes",
			},
		),
		Cost: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "vankamp_refine_cost",
				Help: "Whole-layout objective after the latest pass",
			},
		),
		RunDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vankamp_refine_run_duration_seconds",
				Help:    "Wall-clock time of optimizer runs",
				Buckets: prometheus.DefBuckets,
			},
		),
		StageDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vankamp_pipeline_stage_duration_seconds",
				Help:    "Pipeline stage durations by stage and result",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage", "result"},
		),
		CacheOps: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vankamp_cache_operations_total",
				Help: "Cache lookups and writes by key type and operation",
			},
			[]string{"key_type", "op"},
		),
		CacheBytes: f.NewCounter(
			prometheus.CounterOpts{
				Name: "vankamp_cache_written_bytes_total",
				Help: "Bytes written to the cache",
			},
		),
	}
}

// Registry returns the registry the metrics live in.
func (p *PrometheusHooks) Registry() *prometheus.Registry { return p.registry }

// WriteFile writes every metric in text exposition format to path.
func (p *PrometheusHooks) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, p.registry)
}

func (p *PrometheusHooks) OnRunStart(context.Context, string, string, int, int) {}

func (p *PrometheusHooks) OnMove(_ context.Context, mode string, outcome MoveOutcome, d time.Duration) {
	p.Moves.WithLabelValues(mode, string(outcome)).Inc()
	p.MoveDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (p *PrometheusHooks) OnPassComplete(_ context.Context, _ string, _ int, cost float64) {
	p.Passes.Inc()
	p.Cost.Set(cost)
}

func (p *PrometheusHooks) OnRunComplete(_ context.Context, _ string, stats RunStats, err error) {
	p.Runs.WithLabelValues(stats.Mode, result(err)).Inc()
	p.RunDuration.Observe(stats.Duration.Seconds())
	if err == nil {
		p.Cost.Set(stats.FinalCost)
	}
}

func (p *PrometheusHooks) OnStageStart(context.Context, string) {}

func (p *PrometheusHooks) OnStageComplete(_ context.Context, stage string, d time.Duration, err error) {
	p.StageDuration.WithLabelValues(stage, result(err)).Observe(d.Seconds())
}

func (p *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	p.CacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (p *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	p.CacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (p *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	p.CacheOps.WithLabelValues(keyType, "set").Inc()
	p.CacheBytes.Add(float64(size))
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
