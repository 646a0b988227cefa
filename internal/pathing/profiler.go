package pathing

import (
	"context"
	"sync/atomic"
)

// Profiler captures instrumentation hooks for the search driver and move
// generator. Grounded almost directly on the teacher's NavigatorProfiler
// (internal/pathfinding/profile.go), with counters renamed to the stages
// this module actually has.
type Profiler interface {
	RecordNodePopped()
	RecordNodeExpanded()
	RecordHeuristicEvaluation()
	RecordGroundHeightResolve()
}

// Metrics accumulates profiling counters for a set of searches.
type Metrics struct {
	nodesPopped          atomic.Int64
	nodesExpanded        atomic.Int64
	heuristicEvaluations atomic.Int64
	groundHeightResolves atomic.Int64
}

// MetricsSnapshot captures a point-in-time copy of Metrics' counters.
type MetricsSnapshot struct {
	NodesPopped          int64
	NodesExpanded        int64
	HeuristicEvaluations int64
	GroundHeightResolves int64
}

// Profiler returns a Profiler implementation backed by this metric set.
func (m *Metrics) Profiler() Profiler {
	if m == nil {
		return nil
	}
	return (*metricsProfiler)(m)
}

// Reset zeroes all counters.
func (m *Metrics) Reset() {
	if m == nil {
		return
	}
	m.nodesPopped.Store(0)
	m.nodesExpanded.Store(0)
	m.heuristicEvaluations.Store(0)
	m.groundHeightResolves.Store(0)
}

// Snapshot captures the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	return MetricsSnapshot{
		NodesPopped:          m.nodesPopped.Load(),
		NodesExpanded:        m.nodesExpanded.Load(),
		HeuristicEvaluations: m.heuristicEvaluations.Load(),
		GroundHeightResolves: m.groundHeightResolves.Load(),
	}
}

type metricsProfiler Metrics

func (m *metricsProfiler) RecordNodePopped()          { (*Metrics)(m).nodesPopped.Add(1) }
func (m *metricsProfiler) RecordNodeExpanded()        { (*Metrics)(m).nodesExpanded.Add(1) }
func (m *metricsProfiler) RecordHeuristicEvaluation() { (*Metrics)(m).heuristicEvaluations.Add(1) }
func (m *metricsProfiler) RecordGroundHeightResolve() { (*Metrics)(m).groundHeightResolves.Add(1) }

type profilerContextKey struct{}

// ContextWithProfiler returns a context that will report the given profiler
// during a search.
func ContextWithProfiler(ctx context.Context, profiler Profiler) context.Context {
	if profiler == nil {
		return ctx
	}
	return context.WithValue(ctx, profilerContextKey{}, profiler)
}

func profilerFromContext(ctx context.Context) Profiler {
	if ctx == nil {
		return nil
	}
	if profiler, ok := ctx.Value(profilerContextKey{}).(Profiler); ok {
		return profiler
	}
	return nil
}
