package pathing

import (
	"container/heap"
	"context"

	"pathcore/internal/classify"
	"pathcore/internal/collision"
	"pathcore/internal/voxel"
)

// Result bundles a search's path and diagnostics, mirroring spec.md section
// 6's "Exposed" interface.
type Result struct {
	Path        *Path
	Diagnostics *CalculationData
}

// Search is the C7 main loop: pop best, test termination, expand via the
// move generator, track best-so-far, honor the node budget and cooperative
// interruption (spec.md section 4.7). Grounded on the teacher's
// BlockNavigator.FindRoute main loop shape (navigator.go: heap.Pop,
// ctx.Done() check, parent-chain reconstruction), generalized to
// best-effort termination, node budgets, and restriction windows.
func Search(ctx context.Context, job *Job) *Result {
	diag := newCalculationData()
	profiler := profilerFromContext(ctx)

	a := newArena()
	startIdx := a.allocate(job.Start, voxel.PackPosition(job.Start))
	start := a.get(startIdx)
	start.h = job.Heuristic(job.Start)
	start.f = start.h

	open := &openSet{arena: a}
	heap.Init(open)
	heap.Push(open, startIdx)

	state := &searchState{
		job:      job,
		arena:    a,
		open:     open,
		oracle:   collision.NewOracle(job.ClassifyCtx),
		diag:     diag,
		profiler: profiler,
	}

	budget := job.Range * job.Range
	if job.Options.MaxNodes > 0 && job.Options.MaxNodes < budget {
		budget = job.Options.MaxNodes
	}

	bestIdx := startIdx
	bestScore := job.NodeResultScore(job.Start)
	visited := 0
	reaches := false
	terminalIdx := noIndex

loop:
	for open.Len() > 0 {
		select {
		case <-ctx.Done():
			return &Result{Path: nil, Diagnostics: diag}
		default:
		}
		if job.Interrupted.Load() {
			return &Result{Path: nil, Diagnostics: diag}
		}

		currentIdx := heap.Pop(open).(nodeIndex)
		current := a.get(currentIdx)

		visited++
		if visited > budget {
			break loop
		}

		current.closed = true
		current.expansionOrdinal = a.nextExpansionOrdinal()
		diag.RecordConsumed(current.pos)
		if profiler != nil {
			profiler.RecordNodePopped()
		}

		insideWindow := job.Restriction.Contains(current.pos)

		if insideWindow && job.IsAtDestination(current.pos) {
			terminalIdx = currentIdx
			reaches = true
			break loop
		}

		if !current.corner && state.surfaceOf(current.pos.Down()) == classify.Walkable {
			if score := job.NodeResultScore(current.pos); score < bestScore {
				bestScore = score
				bestIdx = currentIdx
			}
		}

		if !job.Restriction.Hard || insideWindow {
			state.expand(currentIdx)
		}
	}

	if terminalIdx == noIndex {
		terminalIdx = bestIdx
	}

	path := Finalize(a, terminalIdx, job)
	path.Reaches = reaches

	diag.Reaches = reaches
	diag.FinalPath = path.Positions()

	return &Result{Path: path, Diagnostics: diag}
}
