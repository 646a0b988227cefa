package pathing

import (
	"math"

	"pathcore/internal/voxel"
)

// stepCost assembles the multiplicative cost chain spec.md section 4.6
// describes for a single directional move.
func stepCost(d direction, pos voxel.Position, parent *node, snapshot *voxel.Snapshot, opts PathingOptions, onRoad, onRails, railsExit, onLadder, swimming, swimStart bool) float64 {
	cost := math.Sqrt(float64(d.X*d.X + d.Y*d.Y + d.Z*d.Z))

	parentState := snapshot.BlockStateAt(parent.pos)
	horizontal := d.X != 0 || d.Z != 0
	if absInt(d.Y) >= 1 && horizontal && !parentState.Stairs {
		cost *= opts.JumpDropCost * float64(absInt(d.Y))
	}

	if snapshot.BlockStateAt(pos).Openable {
		cost *= opts.TraverseToggleableCost
	}

	if onRoad {
		cost *= opts.OnPathCost
	}
	if onRails {
		cost *= opts.OnRailCost
	}
	if railsExit {
		cost *= opts.RailsExitCost
	}
	if onLadder {
		cost *= opts.OnLadderCost
	}
	if swimming {
		if swimStart {
			cost *= opts.SwimCostEnter
		} else {
			cost *= opts.SwimCost
		}
	}

	return cost
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// EuclideanHeuristic is the default admissible "straight-line distance to a
// single point" estimate (spec.md section 4.6).
func EuclideanHeuristic(goal voxel.Position) func(voxel.Position) float64 {
	return func(p voxel.Position) float64 { return euclidean(p, goal) }
}

// MinOfSetHeuristic is admissible for a region/multi-target goal: the
// distance to the nearest candidate target never overestimates the true
// cost to reach any one of them.
func MinOfSetHeuristic(targets []voxel.Position) func(voxel.Position) float64 {
	return func(p voxel.Position) float64 {
		best := math.Inf(1)
		for _, t := range targets {
			if d := euclidean(p, t); d < best {
				best = d
			}
		}
		if math.IsInf(best, 1) {
			return 0
		}
		return best
	}
}

func euclidean(a, b voxel.Position) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	dz := float64(a.Z - b.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
