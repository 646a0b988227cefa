package classify

import "pathcore/internal/voxel"

// SurfaceType is the three-way classification a candidate footing resolves
// to (spec.md section 3).
type SurfaceType int

const (
	Walkable SurfaceType = iota
	Dropable
	NotPassable
)

// BuiltinWalkableSurface is the default walkable-surface classifier,
// consulted when no registered callback answers (spec.md section 4.2).
func BuiltinWalkableSurface(state voxel.BlockState) SurfaceType {
	if state.Fence || state.FenceGate || state.Wall || state.Fire || state.Campfire || state.Bamboo {
		return NotPassable
	}
	if state.CollisionHeight > 1.0 {
		return NotPassable
	}
	if state.IsLava() {
		return NotPassable
	}
	if state.IsSolid() || state.SnowLayers > 1 || state.Carpet {
		return Walkable
	}
	return Dropable
}
