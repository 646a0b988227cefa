package voxel

import (
	"log"
	"sync"
)

// Chunk stores a dense column-oriented block grid for one (X,Z) chunk,
// spanning the full world height.
type Chunk struct {
	Key    ChunkCoord
	Bounds Bounds

	mu        sync.RWMutex
	store     BlockStorage
	dimension Dimensions
}

// NewChunk allocates an empty chunk backed by the process-wide storage
// provider (see SetStorageProvider).
func NewChunk(key ChunkCoord, bounds Bounds, dim Dimensions) *Chunk {
	store, err := getStorageProvider().NewStorage(key, bounds, dim)
	if err != nil {
		log.Printf("voxel: chunk storage unavailable for %v: %v", key, err)
		store, _ = NewMemoryStorageProvider().NewStorage(key, bounds, dim)
	}
	return &Chunk{Key: key, Bounds: bounds, store: store, dimension: dim}
}

func (c *Chunk) Dimensions() Dimensions { return c.dimension }

func (c *Chunk) columnIndex(localX, localZ int) int {
	return localZ*c.dimension.Width + localX
}

func trimColumn(column []BlockState) []BlockState {
	end := len(column)
	for end > 0 && column[end-1].IsAir() {
		end--
	}
	return column[:end]
}

// GlobalToLocal converts a global block Position into chunk-local
// coordinates, returning false if the position falls outside this chunk.
func (c *Chunk) GlobalToLocal(p Position) (int, int, int, bool) {
	if !c.Bounds.Contains(p) {
		return 0, 0, 0, false
	}
	return p.X - c.Bounds.Min.X, p.Y - c.Bounds.Min.Y, p.Z - c.Bounds.Min.Z, true
}

// LocalBlock reads the block at chunk-local coordinates, returning Air for
// any position within the chunk's bounds that has no stored block.
func (c *Chunk) LocalBlock(localX, localY, localZ int) (BlockState, bool) {
	if localX < 0 || localY < 0 || localZ < 0 ||
		localX >= c.dimension.Width || localY >= c.dimension.Height || localZ >= c.dimension.Depth {
		return BlockState{}, false
	}
	idx := c.columnIndex(localX, localZ)
	c.mu.RLock()
	store := c.store
	c.mu.RUnlock()
	if store == nil {
		return BlockState{}, false
	}
	column, ok, err := store.LoadColumn(idx)
	if err != nil {
		log.Printf("voxel: chunk %v load column %d: %v", c.Key, idx, err)
		return BlockState{}, false
	}
	if !ok || localY >= len(column) || column[localY].IsAir() {
		return Air, true
	}
	return column[localY], true
}

// SetLocalBlock writes a block at chunk-local coordinates.
func (c *Chunk) SetLocalBlock(localX, localY, localZ int, block BlockState) bool {
	if localX < 0 || localY < 0 || localZ < 0 ||
		localX >= c.dimension.Width || localY >= c.dimension.Height || localZ >= c.dimension.Depth {
		return false
	}
	idx := c.columnIndex(localX, localZ)
	c.mu.Lock()
	store := c.store
	c.mu.Unlock()
	if store == nil {
		return false
	}
	column, ok, err := store.LoadColumn(idx)
	if err != nil {
		log.Printf("voxel: chunk %v load column %d: %v", c.Key, idx, err)
		return false
	}
	if !ok {
		column = make([]BlockState, localY+1)
	} else if localY >= len(column) {
		expanded := make([]BlockState, localY+1)
		copy(expanded, column)
		column = expanded
	}
	if block.IsAir() {
		column[localY] = BlockState{}
	} else {
		column[localY] = block
	}
	column = trimColumn(column)

	var saveErr error
	if len(column) == 0 {
		saveErr = store.Delete(idx)
	} else {
		saveErr = store.SaveColumn(idx, column)
	}
	if saveErr != nil {
		log.Printf("voxel: chunk %v persist column %d: %v", c.Key, idx, saveErr)
		return false
	}
	return true
}

// ForEachBlock iterates over every non-air block, invoking fn with global
// coordinates. Iteration stops early if fn returns false.
func (c *Chunk) ForEachBlock(fn func(global Position, block BlockState) bool) {
	c.mu.RLock()
	store := c.store
	bounds := c.Bounds
	dim := c.dimension
	c.mu.RUnlock()
	if store == nil {
		return
	}
	if err := store.ForEach(func(idx int, column []BlockState) bool {
		localX := idx % dim.Width
		localZ := idx / dim.Width
		for localY, block := range column {
			if block.IsAir() {
				continue
			}
			global := Position{X: bounds.Min.X + localX, Y: bounds.Min.Y + localY, Z: bounds.Min.Z + localZ}
			if !fn(global, block) {
				return false
			}
		}
		return true
	}); err != nil {
		log.Printf("voxel: chunk %v iterate blocks: %v", c.Key, err)
	}
}

// Close releases resources held by the chunk's underlying storage.
func (c *Chunk) Close() error {
	c.mu.Lock()
	store := c.store
	c.mu.Unlock()
	if store == nil {
		return nil
	}
	return store.Close()
}
