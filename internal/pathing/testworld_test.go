package pathing

import (
	"context"
	"testing"

	"pathcore/internal/voxel"
)

// flatGenerator produces empty chunks on demand, matching the teacher's own
// synthetic-terrain demo generator (cmd/pathprofile/main.go) in shape.
type flatGenerator struct{}

func (flatGenerator) Generate(ctx context.Context, coord voxel.ChunkCoord, bounds voxel.Bounds, dim voxel.Dimensions) (*voxel.Chunk, error) {
	return voxel.NewChunk(coord, bounds, dim), nil
}

func newTestWorld(t *testing.T) *voxel.Manager {
	t.Helper()
	dim := voxel.Dimensions{Width: 32, Depth: 32, Height: 32}
	return voxel.NewManager(dim, flatGenerator{})
}

func setBlock(t *testing.T, world *voxel.Manager, pos voxel.Position, block voxel.BlockState) {
	t.Helper()
	coord := voxel.LocateChunk(pos, world.ChunkDimensions())
	ch, err := world.EnsureChunk(context.Background(), coord)
	if err != nil {
		t.Fatalf("ensure chunk %v: %v", coord, err)
	}
	lx, ly, lz, ok := ch.GlobalToLocal(pos)
	if !ok {
		t.Fatalf("position %+v outside chunk %v", pos, coord)
	}
	if !ch.SetLocalBlock(lx, ly, lz, block) {
		t.Fatalf("set block failed at %+v", pos)
	}
}

func addFloor(t *testing.T, world *voxel.Manager, y, xFrom, xTo int) {
	t.Helper()
	for x := xFrom; x <= xTo; x++ {
		setBlock(t, world, voxel.Position{X: x, Y: y, Z: 0}, solidBlock())
	}
}

func addLadderColumn(t *testing.T, world *voxel.Manager, x, yFrom, yTo int, facing voxel.LadderFacing) {
	t.Helper()
	for y := yFrom; y <= yTo; y++ {
		setBlock(t, world, voxel.Position{X: x, Y: y, Z: 0}, ladderBlock(facing))
	}
}

func addWaterColumn(t *testing.T, world *voxel.Manager, x, yFrom, yTo int) {
	t.Helper()
	for y := yFrom; y <= yTo; y++ {
		setBlock(t, world, voxel.Position{X: x, Y: y, Z: 0}, waterBlock())
	}
}

func addRoad(t *testing.T, world *voxel.Manager, y, xFrom, xTo int) {
	t.Helper()
	for x := xFrom; x <= xTo; x++ {
		setBlock(t, world, voxel.Position{X: x, Y: y, Z: 0}, roadBlock())
	}
}

func solidBlock() voxel.BlockState {
	return voxel.BlockState{Material: voxel.MaterialSolid, CollisionHeight: 1}
}

func roadBlock() voxel.BlockState {
	return voxel.BlockState{Material: voxel.MaterialSolid, CollisionHeight: 1, Tags: map[string]bool{"road": true}}
}

func waterBlock() voxel.BlockState {
	return voxel.BlockState{Material: voxel.MaterialWater}
}

func ladderBlock(facing voxel.LadderFacing) voxel.BlockState {
	f := facing
	return voxel.BlockState{Material: voxel.MaterialAir, Ladder: &f}
}
