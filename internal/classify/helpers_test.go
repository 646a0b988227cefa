package classify

import "pathcore/internal/voxel"

func solidBlock() voxel.BlockState { return voxel.BlockState{Material: voxel.MaterialSolid} }
func lavaBlock() voxel.BlockState  { return voxel.BlockState{Material: voxel.MaterialLava} }
func airBlockForTest() voxel.BlockState { return voxel.Air }

func roadBlockForTest() voxel.BlockState {
	return voxel.BlockState{Material: voxel.MaterialSolid, Tags: map[string]bool{"road": true}}
}
