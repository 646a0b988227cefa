package voxel

// Material enumerates the bulk substance of a block, used for fluid/solid
// classification (spec.md section 6: BlockState.material).
type Material int

const (
	MaterialAir Material = iota
	MaterialSolid
	MaterialWater
	MaterialLava
)

// LadderFacing is the horizontal direction a ladder, vine, or scaffolding
// block faces, used to annotate climbing waypoints (spec.md section 4.8).
type LadderFacing int

const (
	FacingNorth LadderFacing = iota
	FacingSouth
	FacingEast
	FacingWest
	FacingUp // scaffolding/default: no horizontal attachment
)

// BlockState is the minimal block capability surface the search consults
// (spec.md section 6). It stands in for the host world's real block/entity
// data model, which the core only reads through this interface-shaped
// struct.
type BlockState struct {
	Material Material

	// Ladder is non-nil for ladder/vine/scaffolding blocks; its value is the
	// attachment-derived climbing facing.
	Ladder *LadderFacing
	Rail    bool

	Fence     bool
	FenceGate bool
	Wall      bool
	Fire      bool
	Campfire  bool
	Bamboo    bool

	Stairs     bool
	Carpet     bool
	SnowLayers int // 0 = no snow; >1 = enough layers to walk on

	Openable bool // doors, trapdoors, fence gates: traversable but costed

	// CollisionHeight is the top of the block's collision shape in [0,1+)
	// block units. 0 means no collision (air-like), 1 means a full cube.
	CollisionHeight float64

	Tags map[string]bool
}

// Air is the zero-value block returned for unloaded or out-of-window reads.
var Air = BlockState{Material: MaterialAir}

// IsAir reports whether b is an empty cell. Ladders are built on air
// material but are not empty: chunk storage keeps them.
func (b BlockState) IsAir() bool   { return b.Material == MaterialAir && b.Ladder == nil }
func (b BlockState) IsSolid() bool { return b.Material == MaterialSolid }
func (b BlockState) IsLava() bool  { return b.Material == MaterialLava }
func (b BlockState) IsWater() bool { return b.Material == MaterialWater }
func (b BlockState) IsLiquid() bool {
	return b.Material == MaterialWater || b.Material == MaterialLava
}

func (b BlockState) Is(tag string) bool {
	return b.Tags != nil && b.Tags[tag]
}

// FluidState mirrors BlockState's fluid-relevant subset, matching spec.md
// section 6's separate WorldReader.fluidStateAt accessor.
type FluidState struct {
	Material Material // MaterialAir, MaterialWater, or MaterialLava
}

var EmptyFluid = FluidState{Material: MaterialAir}

func (f FluidState) IsEmpty() bool { return f.Material == MaterialAir }
