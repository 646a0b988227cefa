package pathing

import (
	"container/heap"

	"pathcore/internal/classify"
	"pathcore/internal/collision"
	"pathcore/internal/voxel"
)

// direction is one of the six candidate move deltas spec.md section 4.4
// enumerates.
type direction struct{ X, Y, Z int }

var (
	dirUp    = direction{0, 1, 0}
	dirDown  = direction{0, -1, 0}
	dirNorth = direction{0, 0, -1}
	dirSouth = direction{0, 0, 1}
	dirEast  = direction{1, 0, 0}
	dirWest  = direction{-1, 0, 0}
)

// searchState bundles everything a single search's move generator needs:
// the job, the node arena, the open set, the collision oracle, diagnostics,
// and an optional profiler. One searchState is built per Search call.
type searchState struct {
	job      *Job
	arena    *arena
	open     *openSet
	oracle   *collision.Oracle
	diag     *CalculationData
	profiler Profiler
}

// expand produces successor candidates for parentIdx and walks each one
// (spec.md section 4.4).
func (s *searchState) expand(parentIdx nodeIndex) {
	if s.profiler != nil {
		s.profiler.RecordNodeExpanded()
	}
	parent := s.arena.get(parentIdx)

	delta := voxel.Position{}
	if parent.parent != noIndex {
		gp := s.arena.get(parent.parent)
		delta = voxel.Position{X: parent.pos.X - gp.pos.X, Y: parent.pos.Y - gp.pos.Y, Z: parent.pos.Z - gp.pos.Z}
	}

	candidates := make([]direction, 0, 6)
	if delta.Z <= 0 {
		candidates = append(candidates, dirNorth)
	}
	if delta.X >= 0 {
		candidates = append(candidates, dirEast)
	}
	if delta.Z >= 0 {
		candidates = append(candidates, dirSouth)
	}
	if delta.X <= 0 {
		candidates = append(candidates, dirWest)
	}
	if s.job.Options.CanUseLadders && parent.onLadder && delta.Y >= 0 {
		candidates = append(candidates, dirUp)
	}
	if s.downAllowed(parentIdx, parent) {
		candidates = append(candidates, dirDown)
	}

	for _, d := range candidates {
		s.walk(parentIdx, d)
	}
}

// downAllowed implements spec.md section 4.4's DOWN-attempt gate.
func (s *searchState) downAllowed(idx nodeIndex, n *node) bool {
	below := n.pos.Down()
	if s.job.Options.CanUseLadders && s.isLadder(below) {
		return true
	}
	belowState := s.job.Snapshot.BlockStateAt(below)
	if s.job.ClassifyCtx.Passable.Resolve(classify.PassableArgs{Entity: s.job.Entity, State: belowState}) {
		return true
	}
	if n.corner && !s.parentDirectlyBelow(n) {
		return true
	}
	return false
}

func (s *searchState) parentDirectlyBelow(n *node) bool {
	if n.parent == noIndex {
		return false
	}
	return s.arena.get(n.parent).pos == n.pos.Down()
}

func (s *searchState) isLadder(pos voxel.Position) bool {
	state := s.job.Snapshot.BlockStateAt(pos)
	return s.job.ClassifyCtx.Ladder.Resolve(classify.LadderArgs{Entity: s.job.Entity, State: state, World: s.job.Snapshot, Pos: pos})
}

func (s *searchState) isRail(pos voxel.Position) bool {
	return s.job.Snapshot.BlockStateAt(pos).Rail
}

// walk is the per-direction candidate evaluator spec.md section 4.4
// describes step by step.
func (s *searchState) walk(parentIdx nodeIndex, d direction) {
	parent := s.arena.get(parentIdx)
	pos := voxel.Position{X: parent.pos.X + d.X, Y: parent.pos.Y + d.Y, Z: parent.pos.Z + d.Z}

	newY, ok := s.groundHeight(parentIdx, pos)
	if !ok {
		return
	}

	corner := false
	if newY != pos.Y {
		if newY > pos.Y {
			grandparentAboveParent := parent.parent != noIndex && s.arena.get(parent.parent).pos == parent.pos.Up()
			if !parent.corner && !grandparentAboveParent {
				pos = voxel.Position{X: parent.pos.X, Y: newY, Z: parent.pos.Z}
				corner = true
			} else {
				pos.Y = newY
			}
		} else if d.X != 0 || d.Z != 0 {
			downNeighborIsGrandparent := parent.parent != noIndex && s.arena.get(parent.parent).pos == parent.pos.Down()
			if !downNeighborIsGrandparent {
				pos = voxel.Position{X: parent.pos.X + d.X, Y: parent.pos.Y, Z: parent.pos.Z + d.Z}
				corner = true
			} else {
				pos.Y = newY
			}
		} else {
			pos.Y = newY
		}
	}

	key := voxel.PackPosition(pos)
	existingIdx, existed := s.arena.lookup(key)
	if existed && s.arena.get(existingIdx).closed {
		return
	}

	below := pos.Down()
	belowState := s.job.Snapshot.BlockStateAt(below)
	swimming := belowState.IsWater()
	if existed {
		swimming = s.arena.get(existingIdx).swimming
	}
	if swimming && !s.job.Options.CanSwim {
		s.diag.RecordInvalid(pos, ReasonSwimmingNode)
		return
	}
	swimStart := swimming && !parent.swimming

	onLadder := s.job.Options.CanUseLadders && s.isLadder(pos)
	onRoad := s.job.ClassifyCtx.Road.Resolve(classify.RoadArgs{Entity: s.job.Entity, Block: belowState})

	railCheck := pos
	if corner {
		railCheck = pos.Down()
	}
	onRails := s.job.Options.CanUseRails && s.isRail(railCheck)
	railsExit := parent.onRails && !onRails

	cost := stepCost(d, pos, parent, s.job.Snapshot, s.job.Options, onRoad, onRails, railsExit, onLadder, swimming, swimStart)
	g := parent.g + cost
	if s.profiler != nil {
		s.profiler.RecordHeuristicEvaluation()
	}
	h := s.job.Heuristic(pos)
	f := g + h

	var idx nodeIndex
	if !existed {
		idx = s.arena.allocate(pos, key)
		n := s.arena.get(idx)
		n.parent = parentIdx
		n.g, n.h, n.f = g, h, f
		n.steps = parent.steps + 1
		n.swimming = swimming
		n.onLadder = onLadder
		n.corner = corner
		n.onRails = onRails
		heap.Push(s.open, idx)
		s.diag.RecordEdge(parent.pos, pos)
	} else {
		n := s.arena.get(existingIdx)
		if f >= n.f {
			return
		}
		idx = existingIdx
		n.parent = parentIdx
		n.g, n.h, n.f = g, h, f
		n.steps = parent.steps + 1
		n.swimming = swimming
		n.onLadder = onLadder
		n.corner = corner
		n.onRails = onRails
		if n.openIndex >= 0 {
			heap.Fix(s.open, n.openIndex)
		} else {
			heap.Push(s.open, idx)
		}
		s.diag.RecordEdge(parent.pos, pos)
	}

	if s.job.Options.EnableJPSLite && h <= parent.h {
		s.walk(idx, d)
	}
}
