// Package geom provides the small amount of continuous-space geometry the
// collision oracle needs: axis-aligned boxes over a voxel grid. It is kept
// deliberately tiny — the pack's continuous-space geometry libraries
// (golang/geo, go-gl/mathgl, golang-geo) target geodesy and 3D rendering
// math, not unit-cube block collision, so they have no role here (see
// DESIGN.md).
package geom

// AABB is an axis-aligned bounding box in world (block-scaled) coordinates.
type AABB struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// NewCenteredAABB builds a box of the given half-extents around center,
// with the vertical placement controlled separately (feet offset) since
// entities are rarely vertically centered on their collision box.
func NewCenteredAABB(centerX, feetY, centerZ, halfWidth, height float64) AABB {
	return AABB{
		MinX: centerX - halfWidth, MaxX: centerX + halfWidth,
		MinY: feetY, MaxY: feetY + height,
		MinZ: centerZ - halfWidth, MaxZ: centerZ + halfWidth,
	}
}

// Offset returns a copy of b shifted by (dx,dy,dz).
func (b AABB) Offset(dx, dy, dz float64) AABB {
	return AABB{
		MinX: b.MinX + dx, MaxX: b.MaxX + dx,
		MinY: b.MinY + dy, MaxY: b.MaxY + dy,
		MinZ: b.MinZ + dz, MaxZ: b.MaxZ + dz,
	}
}

// Intersects reports whether two boxes overlap on every axis.
func (b AABB) Intersects(o AABB) bool {
	return b.MinX < o.MaxX && b.MaxX > o.MinX &&
		b.MinY < o.MaxY && b.MaxY > o.MinY &&
		b.MinZ < o.MaxZ && b.MaxZ > o.MinZ
}

// Height returns the vertical extent of the box.
func (b AABB) Height() float64 { return b.MaxY - b.MinY }
