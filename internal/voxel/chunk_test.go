package voxel

import "testing"

func TestChunkSetAndGetLocalBlock(t *testing.T) {
	dim := Dimensions{Width: 4, Depth: 4, Height: 8}
	bounds := Bounds{Min: Position{X: 0, Y: 0, Z: 0}, Max: Position{X: 3, Y: 7, Z: 3}}
	chunk := NewChunk(ChunkCoord{X: 0, Z: 0}, bounds, dim)

	if block, ok := chunk.LocalBlock(1, 1, 1); !ok || !block.IsAir() {
		t.Fatalf("expected fresh chunk to read air, got %+v ok=%v", block, ok)
	}

	if ok := chunk.SetLocalBlock(1, 1, 1, BlockState{Material: MaterialSolid}); !ok {
		t.Fatalf("set local block failed")
	}

	block, ok := chunk.LocalBlock(1, 1, 1)
	if !ok || !block.IsSolid() {
		t.Fatalf("expected solid block at (1,1,1), got %+v ok=%v", block, ok)
	}

	if ok := chunk.SetLocalBlock(1, 1, 1, Air); !ok {
		t.Fatalf("clear local block failed")
	}
	if block, ok := chunk.LocalBlock(1, 1, 1); !ok || !block.IsAir() {
		t.Fatalf("expected air after clear, got %+v ok=%v", block, ok)
	}
}

func TestChunkGlobalToLocal(t *testing.T) {
	dim := Dimensions{Width: 4, Depth: 4, Height: 8}
	bounds := ChunkBounds(ChunkCoord{X: 1, Z: -1}, dim)
	chunk := NewChunk(ChunkCoord{X: 1, Z: -1}, bounds, dim)

	global := Position{X: bounds.Min.X + 2, Y: 3, Z: bounds.Min.Z + 1}
	lx, ly, lz, ok := chunk.GlobalToLocal(global)
	if !ok || lx != 2 || ly != 3 || lz != 1 {
		t.Fatalf("unexpected local coords %d,%d,%d ok=%v", lx, ly, lz, ok)
	}

	if _, _, _, ok := chunk.GlobalToLocal(Position{X: bounds.Max.X + 1, Y: 0, Z: bounds.Min.Z}); ok {
		t.Fatalf("expected out-of-bounds position to fail conversion")
	}
}

func TestChunkForEachBlockSkipsAir(t *testing.T) {
	dim := Dimensions{Width: 2, Depth: 2, Height: 2}
	bounds := ChunkBounds(ChunkCoord{X: 0, Z: 0}, dim)
	chunk := NewChunk(ChunkCoord{X: 0, Z: 0}, bounds, dim)
	chunk.SetLocalBlock(0, 0, 0, BlockState{Material: MaterialSolid})

	seen := 0
	chunk.ForEachBlock(func(global Position, block BlockState) bool {
		seen++
		if global != (Position{X: 0, Y: 0, Z: 0}) {
			t.Fatalf("unexpected global position %+v", global)
		}
		return true
	})
	if seen != 1 {
		t.Fatalf("expected exactly one non-air block, saw %d", seen)
	}
}
