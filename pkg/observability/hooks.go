// Package observability provides hooks for metrics and tracing.
//
// Library packages emit events through a small set of hook interfaces; the
// application decides at startup where those events go. Defaults are no-ops,
// so libraries never depend on a metrics backend directly.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    reg := prometheus.NewRegistry()
//	    hooks := observability.NewPrometheusHooks(reg)
//	    observability.SetRefineHooks(hooks)
//	    observability.SetPipelineHooks(hooks)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Refine().OnRunStart(ctx, runID, mode, vertices, cells)
//	// ... move vertices ...
//	observability.Refine().OnRunComplete(ctx, runID, stats, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Refine Hooks
// =============================================================================

// MoveOutcome classifies one optimizer step.
type MoveOutcome string

const (
	MoveAccepted     MoveOutcome = "accepted"
	MoveRejected     MoveOutcome = "rejected"
	MoveNonConverged MoveOutcome = "non_converged"
	MoveSkipped      MoveOutcome = "skipped"
)

// RunStats summarizes a finished optimizer run.
type RunStats struct {
	Mode        string
	Passes      int
	Steps       int
	Accepted    int
	Rejected    int
	InitialCost float64
	FinalCost   float64
	Duration    time.Duration
}

// RefineHooks receives events from the layout optimizer.
type RefineHooks interface {
	OnRunStart(ctx context.Context, runID, mode string, vertices, cells int)
	OnMove(ctx context.Context, mode string, outcome MoveOutcome, duration time.Duration)
	OnPassComplete(ctx context.Context, runID string, pass int, cost float64)
	OnRunComplete(ctx context.Context, runID string, stats RunStats, err error)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives stage events from the load → embed → refine →
// render pipeline.
type PipelineHooks interface {
	OnStageStart(ctx context.Context, stage string)
	OnStageComplete(ctx context.Context, stage string, duration time.Duration, err error)
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

// NoopRefineHooks is a no-op implementation of RefineHooks.
type NoopRefineHooks struct{}

func (NoopRefineHooks) OnRunStart(context.Context, string, string, int, int)       {}
func (NoopRefineHooks) OnMove(context.Context, string, MoveOutcome, time.Duration) {}
func (NoopRefineHooks) OnPassComplete(context.Context, string, int, float64)       {}
func (NoopRefineHooks) OnRunComplete(context.Context, string, RunStats, error)     {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnStageStart(context.Context, string)                          {}
func (NoopPipelineHooks) OnStageComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	refineHooks   RefineHooks   = NoopRefineHooks{}
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetRefineHooks registers custom optimizer hooks.
// This should be called once at application startup before any refinement.
func SetRefineHooks(h RefineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		refineHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
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

// Refine returns the registered optimizer hooks.
func Refine() RefineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return refineHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
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
	refineHooks = NoopRefineHooks{}
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
