package voxel

import "testing"

func TestPackPositionIsUniqueWithinWindow(t *testing.T) {
	seen := make(map[PackedKey]Position)
	positions := []Position{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 4095, Y: 255, Z: 4095},
		{X: -1, Y: 0, Z: 0},
	}
	for _, p := range positions {
		key := PackPosition(p)
		if other, ok := seen[key]; ok && other != p {
			t.Fatalf("packed key collision between %+v and %+v", other, p)
		}
		seen[key] = p
	}
}

func TestLocateChunkFloorsNegativeCoordinates(t *testing.T) {
	dim := Dimensions{Width: 16, Depth: 16, Height: 256}
	if got := LocateChunk(Position{X: -1, Y: 0, Z: -1}, dim); got != (ChunkCoord{X: -1, Z: -1}) {
		t.Fatalf("expected chunk (-1,-1), got %v", got)
	}
	if got := LocateChunk(Position{X: -16, Y: 0, Z: 0}, dim); got != (ChunkCoord{X: -1, Z: 0}) {
		t.Fatalf("expected chunk (-1,0), got %v", got)
	}
}

func TestUnionCoversBothInputs(t *testing.T) {
	a := Bounds{Min: Position{X: -5, Y: 0, Z: 0}, Max: Position{X: 5, Y: 10, Z: 5}}
	b := Bounds{Min: Position{X: 0, Y: -2, Z: -8}, Max: Position{X: 20, Y: 4, Z: 2}}

	got := Union(a, b)
	want := Bounds{Min: Position{X: -5, Y: -2, Z: -8}, Max: Position{X: 20, Y: 10, Z: 5}}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if !got.Contains(a.Min) || !got.Contains(a.Max) || !got.Contains(b.Min) || !got.Contains(b.Max) {
		t.Fatalf("expected union to contain every corner of both inputs, got %+v", got)
	}
}

func TestChunkBoundsSpansFullHeight(t *testing.T) {
	dim := Dimensions{Width: 16, Depth: 16, Height: 256}
	bounds := ChunkBounds(ChunkCoord{X: 2, Z: -3}, dim)
	if bounds.Min.Y != 0 || bounds.Max.Y != 255 {
		t.Fatalf("expected full vertical span, got %d..%d", bounds.Min.Y, bounds.Max.Y)
	}
	if bounds.Min.X != 32 || bounds.Max.X != 47 {
		t.Fatalf("unexpected X bounds %d..%d", bounds.Min.X, bounds.Max.X)
	}
}
