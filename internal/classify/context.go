package classify

import (
	"pathcore/internal/agent"
	"pathcore/internal/geom"
	"pathcore/internal/voxel"
)

// LadderArgs is passed to the isLadder callback chain.
type LadderArgs struct {
	Entity agent.Entity
	State  voxel.BlockState
	World  voxel.WorldReader
	Pos    voxel.Position
}

// RoadArgs is passed to the isRoad callback chain.
type RoadArgs struct {
	Entity agent.Entity
	Block  voxel.BlockState
}

// PassableArgs is passed to the isPassable callback chain.
type PassableArgs struct {
	Entity agent.Entity
	State  voxel.BlockState
}

// SurfaceArgs is passed to the walkableSurface callback chain.
type SurfaceArgs struct {
	Entity agent.Entity
	State  voxel.BlockState
	Pos    voxel.Position
}

// BoxArgs is passed to the boundingBoxProducer callback chain.
type BoxArgs struct {
	Entity                   agent.Entity
	CenterX, CenterY, CenterZ float64
	FacingX, FacingY, FacingZ float64
	World                    voxel.WorldReader
}

// StartArgs is passed to the startPositionAdjuster callback chain.
type StartArgs struct {
	Entity    agent.Entity
	Candidate voxel.Position
}

// Context bundles the process-wide registries spec.md section 4.2
// describes. Built once before any search worker starts and treated as
// immutable thereafter (spec.md section 5) — it is handed explicitly to
// every search job rather than kept as package-global state (spec.md
// section 9's "singleton registries... model as explicit context").
type Context struct {
	Ladder                *Registry[LadderArgs, bool]
	Road                  *Registry[RoadArgs, bool]
	Passable              *Registry[PassableArgs, bool]
	WalkableSurface       *Registry[SurfaceArgs, SurfaceType]
	BoundingBox           *Registry[BoxArgs, geom.AABB]
	StartPositionAdjuster *Registry[StartArgs, voxel.Position]
}

// NewContext builds a Context wired with the spec-mandated defaults; callers
// Register additional callbacks on top before handing the Context to a
// search job.
func NewContext() *Context {
	return &Context{
		Ladder: NewRegistry(func(a LadderArgs) bool {
			return a.State.Ladder != nil
		}),
		Road: NewRegistry(func(a RoadArgs) bool {
			return a.Block.Is("road")
		}),
		Passable: NewRegistry(func(a PassableArgs) bool {
			return a.State.CollisionHeight <= 0
		}),
		WalkableSurface: NewRegistry(func(a SurfaceArgs) SurfaceType {
			return BuiltinWalkableSurface(a.State)
		}),
		BoundingBox: NewRegistry(func(a BoxArgs) geom.AABB {
			return geom.AABB{} // zero value signals "no custom box"; oracle supplies the default
		}),
		StartPositionAdjuster: NewRegistry(func(a StartArgs) voxel.Position {
			return a.Candidate
		}),
	}
}
