package voxel

import (
	"context"
	"log"
)

// Snapshot is a frozen rectangular window over the world, built once per
// search and never mutated afterward (spec.md section 4.1). Reads outside
// the window, or into an unloaded chunk cell, return Air/EmptyFluid rather
// than erroring: the search treats "don't know" the same as "nothing
// there," which keeps A* from ever blocking on a chunk load mid-search.
//
// A Snapshot holds strong references to the chunks inside its window but
// never writes to them; it is safe for concurrent reads from multiple
// searches as long as the host does not mutate chunk contents in place
// (spec.md section 5).
type Snapshot struct {
	originChunk ChunkCoord
	width, span int // chunk-grid extent in X and Z
	dim         Dimensions
	chunks      [][]*Chunk // [x-offset][z-offset], nil = unloaded
	bounds      Bounds     // block-space window: requested bounds plus padding, clamped
}

// NewSnapshot builds a Snapshot covering [boxMin,boxMax] expanded by pad
// blocks on every horizontal side, pulling loaded chunks from reader.
func NewSnapshot(ctx context.Context, reader WorldReader, boxMin, boxMax Position, pad int) *Snapshot {
	dim := reader.ChunkDimensions()
	window := clampHorizontalExtent(Bounds{Min: boxMin, Max: boxMax}.Expand(pad))

	originChunk := LocateChunk(window.Min, dim)
	farChunk := LocateChunk(window.Max, dim)

	width := farChunk.X - originChunk.X + 1
	span := farChunk.Z - originChunk.Z + 1
	if width < 1 {
		width = 1
	}
	if span < 1 {
		span = 1
	}

	grid := make([][]*Chunk, width)
	for x := range grid {
		grid[x] = make([]*Chunk, span)
		for z := range grid[x] {
			coord := ChunkCoord{X: originChunk.X + x, Z: originChunk.Z + z}
			if ch, ok := reader.ChunkAt(coord); ok {
				grid[x][z] = ch
			}
			if ctx != nil {
				select {
				case <-ctx.Done():
					return &Snapshot{originChunk: originChunk, width: x + 1, span: span, dim: dim, chunks: grid, bounds: window}
				default:
				}
			}
		}
	}

	return &Snapshot{originChunk: originChunk, width: width, span: span, dim: dim, chunks: grid, bounds: window}
}

// clampHorizontalExtent shrinks window, if needed, so its X and Z spans stay
// within MaxHorizontalExtent: PackPosition only has 12 bits for each axis, so
// a wider window would let two distinct positions collide in the node arena's
// visited map (spec.md section 9).
func clampHorizontalExtent(window Bounds) Bounds {
	if span := window.Max.X - window.Min.X + 1; span > MaxHorizontalExtent {
		log.Printf("voxel: snapshot window X span %d exceeds MaxHorizontalExtent %d, clamping", span, MaxHorizontalExtent)
		window.Max.X = window.Min.X + MaxHorizontalExtent - 1
	}
	if span := window.Max.Z - window.Min.Z + 1; span > MaxHorizontalExtent {
		log.Printf("voxel: snapshot window Z span %d exceeds MaxHorizontalExtent %d, clamping", span, MaxHorizontalExtent)
		window.Max.Z = window.Min.Z + MaxHorizontalExtent - 1
	}
	return window
}

// Bounds returns the (padded) block-space window this snapshot covers.
func (s *Snapshot) Bounds() Bounds { return s.bounds }

// Contains reports whether p falls inside the snapshot's window.
func (s *Snapshot) Contains(p Position) bool { return s.bounds.Contains(p) }

func (s *Snapshot) chunkAt(p Position) *Chunk {
	if p.Y < MinY || p.Y > MaxY {
		return nil
	}
	coord := LocateChunk(p, s.dim)
	x := coord.X - s.originChunk.X
	z := coord.Z - s.originChunk.Z
	if x < 0 || z < 0 || x >= s.width || z >= s.span {
		return nil
	}
	return s.chunks[x][z]
}

// BlockStateAt returns the block at p, or Air if p falls outside the
// window, into an unloaded chunk, or outside the vertical range.
func (s *Snapshot) BlockStateAt(p Position) BlockState {
	ch := s.chunkAt(p)
	if ch == nil {
		return Air
	}
	lx, ly, lz, ok := ch.GlobalToLocal(p)
	if !ok {
		return Air
	}
	block, ok := ch.LocalBlock(lx, ly, lz)
	if !ok {
		return Air
	}
	return block
}

// FluidStateAt returns the fluid at p, or EmptyFluid outside the window.
func (s *Snapshot) FluidStateAt(p Position) FluidState {
	block := s.BlockStateAt(p)
	if block.IsLiquid() {
		return FluidState{Material: block.Material}
	}
	return EmptyFluid
}

var _ WorldReader = (*Snapshot)(nil)

func (s *Snapshot) ChunkAt(coord ChunkCoord) (*Chunk, bool) {
	x := coord.X - s.originChunk.X
	z := coord.Z - s.originChunk.Z
	if x < 0 || z < 0 || x >= s.width || z >= s.span {
		return nil, false
	}
	ch := s.chunks[x][z]
	return ch, ch != nil
}

func (s *Snapshot) ChunkDimensions() Dimensions { return s.dim }
