package pathing

import "pathcore/internal/voxel"

// Waypoint is one extended waypoint in a finalized Path (spec.md section
// 4.8): a grid position annotated with the modality hints the external
// movement controller needs.
type Waypoint struct {
	Position voxel.Position

	OnLadder     bool
	LadderFacing voxel.LadderFacing

	OnRails    bool
	RailsEntry bool
	RailsExit  bool

	Swimming bool

	// Next is the back-link chain spec.md section 4.8 describes: each
	// waypoint points to its successor, nil for the last.
	Next *Waypoint
}

// Path is the result spec.md section 6 exposes: an ordered waypoint list
// plus whether the destination was actually reached.
type Path struct {
	Waypoints []*Waypoint
	Reaches   bool
}

// Positions extracts the raw grid positions, in order.
func (p *Path) Positions() []voxel.Position {
	out := make([]voxel.Position, len(p.Waypoints))
	for i, w := range p.Waypoints {
		out[i] = w.Position
	}
	return out
}

// Finalize walks parent links from terminal back to the start, emitting
// waypoints with ladder/rails/swim annotations (spec.md section 4.8). It is
// idempotent: the arena is read-only during finalization, so re-finalizing
// the same terminal index yields an equal path.
func Finalize(a *arena, terminal nodeIndex, job *Job) *Path {
	if terminal == noIndex {
		return &Path{}
	}

	length := 0
	for idx := terminal; idx != noIndex; idx = a.get(idx).parent {
		length++
	}

	waypoints := make([]*Waypoint, length)
	idx := terminal
	for i := length - 1; i >= 0; i-- {
		n := a.get(idx)
		waypoints[i] = buildWaypoint(n, job)
		idx = n.parent
	}

	stripShortRailsRuns(waypoints, job.Options.MinRailsRun)
	annotateRailsEntryExit(waypoints)
	linkBackChain(waypoints)

	return &Path{Waypoints: waypoints}
}

func buildWaypoint(n *node, job *Job) *Waypoint {
	w := &Waypoint{
		Position: n.pos,
		OnLadder: n.onLadder,
		OnRails:  n.onRails,
		Swimming: n.swimming,
	}
	if n.onLadder {
		w.LadderFacing = ladderFacing(job.Snapshot.BlockStateAt(n.pos))
	}
	// Swim-waypoint Y-shift (spec.md section 9 open question): resolved as
	// a real lowering, gated behind PathingOptions.LowerSwimWaypoint so
	// both readings stay test-covered.
	if n.swimming && job.Options.LowerSwimWaypoint {
		w.Position = n.pos.Down()
	}
	return w
}

func ladderFacing(state voxel.BlockState) voxel.LadderFacing {
	if state.Ladder != nil {
		return *state.Ladder
	}
	return voxel.FacingUp
}

// stripShortRailsRuns clears OnRails on any contiguous run shorter than
// minRun (spec.md section 4.8: "only if the rails run is >= configured
// minimum").
func stripShortRailsRuns(waypoints []*Waypoint, minRun int) {
	if minRun <= 1 {
		return
	}
	runStart := -1
	for i := 0; i <= len(waypoints); i++ {
		onRails := i < len(waypoints) && waypoints[i].OnRails
		if onRails {
			if runStart == -1 {
				runStart = i
			}
			continue
		}
		if runStart != -1 {
			if i-runStart < minRun {
				for j := runStart; j < i; j++ {
					waypoints[j].OnRails = false
				}
			}
			runStart = -1
		}
	}
}

func annotateRailsEntryExit(waypoints []*Waypoint) {
	for i, w := range waypoints {
		if !w.OnRails {
			continue
		}
		if i == 0 || !waypoints[i-1].OnRails {
			w.RailsEntry = true
		}
		if i == len(waypoints)-1 || !waypoints[i+1].OnRails {
			w.RailsExit = true
		}
	}
}

func linkBackChain(waypoints []*Waypoint) {
	for i := 0; i < len(waypoints)-1; i++ {
		waypoints[i].Next = waypoints[i+1]
	}
}
