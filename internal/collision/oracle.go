// Package collision answers "does the entity fit here?" against a voxel
// snapshot: the step-up/step-down aware fit test spec.md section 4.3
// describes. Grounded on the teacher's BlockNavigator.passable clearance
// probe (_examples/firestar-voxel-world/chunk-server/internal/pathfinding/
// navigator.go), generalized from a fixed-height clearance loop to the
// bounding-box model spec.md requires.
package collision

import (
	"math"

	"pathcore/internal/agent"
	"pathcore/internal/classify"
	"pathcore/internal/geom"
	"pathcore/internal/voxel"
)

// Facing is a horizontal+vertical direction vector, used only to pick a
// custom bounding box via the registry (spec.md section 6).
type Facing struct{ X, Y, Z float64 }

// Oracle answers fit queries against a World Snapshot using the
// classification Context's passable and bounding-box-producer registries.
type Oracle struct {
	Ctx *classify.Context
}

func NewOracle(ctx *classify.Context) *Oracle {
	return &Oracle{Ctx: ctx}
}

// CanFit reports whether entity fits centered at (center.X+0.5, center.Y,
// center.Z+0.5) facing the given direction, per spec.md section 4.3 steps
// 1-4.
func (o *Oracle) CanFit(e agent.Entity, center voxel.Position, facing Facing, world voxel.WorldReader) bool {
	box := o.boundingBox(e, center, facing, world)

	if o.boxClear(box, e, world) {
		return true
	}

	// Step 2: probe the 1-block-tall slice at the box bottom.
	bottomMinY := box.MinY - math.Floor(box.MinY)
	maxHeightOfBottom := o.maxBlockingHeightInSlice(box, e, world, math.Floor(box.MinY))
	if maxHeightOfBottom >= 1-bottomMinY {
		return false
	}

	// Step 3: partial-block step-up (snow layer, slab, carpet).
	if maxHeightOfBottom > 0 {
		shifted := box.Offset(0, maxHeightOfBottom, 0)
		if o.boxClear(shifted, e, world) {
			return true
		}
	}

	// Step 4: step-down by the gap to the block directly below.
	belowFloor := math.Floor(box.MinY) - 1
	maxBlockHeightBelow := o.maxBlockingHeightInSlice(box, e, world, belowFloor)
	if maxBlockHeightBelow <= 0 {
		maxBlockHeightBelow = 1
	}
	shifted := box.Offset(0, -(1 - maxBlockHeightBelow), 0)
	return o.boxClear(shifted, e, world)
}

// boundingBox resolves a custom box via the registry, falling back to the
// spec's default probe cube.
func (o *Oracle) boundingBox(e agent.Entity, center voxel.Position, facing Facing, world voxel.WorldReader) geom.AABB {
	cx, cy, cz := float64(center.X)+0.5, float64(center.Y), float64(center.Z)+0.5
	if custom, ok := o.Ctx.BoundingBox.ResolveOptional(classify.BoxArgs{
		Entity: e, CenterX: cx, CenterY: cy, CenterZ: cz,
		FacingX: facing.X, FacingY: facing.Y, FacingZ: facing.Z, World: world,
	}); ok {
		return custom
	}

	halfSide := math.Max(0.75, e.Width()/2) / 2
	height := halfSide*2 + 0.1
	feetOffset := e.EyeHeight() - e.Height()/2
	feetY := cy + feetOffset - height/2
	return geom.NewCenteredAABB(cx, feetY, cz, halfSide, height)
}

// boxClear reports whether box overlaps no impassable block's collision
// shape.
func (o *Oracle) boxClear(box geom.AABB, e agent.Entity, world voxel.WorldReader) bool {
	minX, maxX := int(math.Floor(box.MinX)), int(math.Ceil(box.MaxX))-1
	minY, maxY := int(math.Floor(box.MinY)), int(math.Ceil(box.MaxY))-1
	minZ, maxZ := int(math.Floor(box.MinZ)), int(math.Ceil(box.MaxZ))-1

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				pos := voxel.Position{X: x, Y: y, Z: z}
				state := world.BlockStateAt(pos)
				if o.Ctx.Passable.Resolve(classify.PassableArgs{Entity: e, State: state}) {
					continue
				}
				blockBox := geom.AABB{
					MinX: float64(x), MaxX: float64(x) + 1,
					MinY: float64(y), MaxY: float64(y) + state.CollisionHeight,
					MinZ: float64(z), MaxZ: float64(z) + 1,
				}
				if box.Intersects(blockBox) {
					return false
				}
			}
		}
	}
	return true
}

// maxBlockingHeightInSlice scans the 1-block-tall horizontal slice at
// floorY for the highest impassable collision-shape top, within box's
// horizontal footprint.
func (o *Oracle) maxBlockingHeightInSlice(box geom.AABB, e agent.Entity, world voxel.WorldReader, floorY float64) float64 {
	minX, maxX := int(math.Floor(box.MinX)), int(math.Ceil(box.MaxX))-1
	minZ, maxZ := int(math.Floor(box.MinZ)), int(math.Ceil(box.MaxZ))-1
	y := int(floorY)

	var maxHeight float64
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			state := world.BlockStateAt(voxel.Position{X: x, Y: y, Z: z})
			if o.Ctx.Passable.Resolve(classify.PassableArgs{Entity: e, State: state}) {
				continue
			}
			if state.CollisionHeight > maxHeight {
				maxHeight = state.CollisionHeight
			}
		}
	}
	return maxHeight
}
