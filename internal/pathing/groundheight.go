package pathing

import (
	"pathcore/internal/classify"
	"pathcore/internal/collision"
	"pathcore/internal/voxel"
)

const (
	maxDropProbe  = 10
	maxDropAccept = 4
)

// groundHeight resolves the Y at which the agent can stand at
// (target.X, ?, target.Z), or ok=false to reject the move entirely
// (spec.md section 4.5).
func (s *searchState) groundHeight(parentIdx nodeIndex, target voxel.Position) (int, bool) {
	if s.profiler != nil {
		s.profiler.RecordGroundHeightResolve()
	}
	parent := s.arena.get(parentIdx)
	facing := collision.Facing{
		X: float64(target.X - parent.pos.X),
		Y: float64(target.Y - parent.pos.Y),
		Z: float64(target.Z - parent.pos.Z),
	}

	if !s.oracle.CanFit(s.job.Entity, target, facing, s.job.Snapshot) {
		return s.handleTargetNotPassable(parentIdx, target, facing)
	}

	below := target.Down()
	surface := s.surfaceOf(below)

	switch surface {
	case classify.Walkable:
		return target.Y, true
	case classify.NotPassable:
		return 0, false
	default: // Dropable
		// A liquid cell below always yields ground here; whether the move
		// is actually usable without swim capability is decided by the
		// modality-flag check in walk (spec.md section 4.4 step 5), which
		// records SWIMMING_NODE rather than silently dropping the
		// candidate the way an outright rejection here would.
		belowFluid := s.job.Snapshot.FluidStateAt(below)
		if !belowFluid.IsEmpty() {
			return target.Y, true
		}
		if s.job.Options.CanUseLadders && s.isLadder(below) {
			return target.Y, true
		}
		return s.resolveDrop(parentIdx, target)
	}
}

// handleTargetNotPassable covers spec.md section 4.5 step 1's jump case:
// the raw target doesn't fit, so test whether stepping up one block (both
// at the parent and at the target) clears it.
func (s *searchState) handleTargetNotPassable(parentIdx nodeIndex, target voxel.Position, facing collision.Facing) (int, bool) {
	parent := s.arena.get(parentIdx)
	if parent.onLadder || parent.swimming {
		return 0, false
	}

	up := parent.pos.Up()
	if !s.oracle.CanFit(s.job.Entity, up, collision.Facing{Y: 1}, s.job.Snapshot) {
		return 0, false
	}

	targetUp := target.Up()
	if !s.oracle.CanFit(s.job.Entity, targetUp, facing, s.job.Snapshot) {
		return 0, false
	}

	return target.Y + 1, true
}

// resolveDrop implements spec.md section 4.5 step 3's drop walk: descend
// 1..10 blocks looking for the first acceptable landing. The anchoring that
// keeps a horizontal drop from free-floating off a walkable ledge is
// enforced by walk's corner decomposition (it splits any horizontal+vertical
// adjustment into a same-Y corner move followed by a pure-vertical drop),
// not here: by the time a DOWN step actually lands, its parent is always
// either a corner node or already mid-fall.
func (s *searchState) resolveDrop(parentIdx nodeIndex, target voxel.Position) (int, bool) {
	for drop := 1; drop <= maxDropProbe; drop++ {
		probe := voxel.Position{X: target.X, Y: target.Y - drop, Z: target.Z}
		probeBelow := probe.Down()

		if !s.job.Snapshot.FluidStateAt(probeBelow).IsEmpty() {
			return probe.Y, true
		}

		switch s.surfaceOf(probeBelow) {
		case classify.Walkable:
			if drop <= maxDropAccept {
				return probe.Y, true
			}
			return 0, false
		case classify.NotPassable:
			return 0, false
		default:
			continue
		}
	}
	return 0, false
}

func (s *searchState) surfaceOf(pos voxel.Position) classify.SurfaceType {
	state := s.job.Snapshot.BlockStateAt(pos)
	return s.job.ClassifyCtx.WalkableSurface.Resolve(classify.SurfaceArgs{Entity: s.job.Entity, State: state, Pos: pos})
}
