package pathing

import (
	"context"
	"testing"

	"pathcore/internal/agent"
	"pathcore/internal/classify"
	"pathcore/internal/voxel"
)

func TestSearchIsDeterministicAcrossRepeatedRuns(t *testing.T) {
	world := newTestWorld(t)
	addFloor(t, world, 0, 0, 20)
	start := voxel.Position{X: 0, Y: 1, Z: 0}
	goal := voxel.Position{X: 19, Y: 1, Z: 0}

	var first []voxel.Position
	for i := 0; i < 3; i++ {
		result := runPointSearch(t, world, start, goal, 24, DefaultOptions(ModeGround))
		if !result.Path.Reaches {
			t.Fatalf("run %d: expected path to reach goal", i)
		}
		positions := result.Path.Positions()
		if i == 0 {
			first = positions
			continue
		}
		if len(positions) != len(first) {
			t.Fatalf("run %d: waypoint count differs from run 0: %d vs %d", i, len(positions), len(first))
		}
		for j := range positions {
			if positions[j] != first[j] {
				t.Fatalf("run %d: waypoint %d differs from run 0: %+v vs %+v", i, j, positions[j], first[j])
			}
		}
	}
}

func TestSearchHonorsNodeBudget(t *testing.T) {
	world := newTestWorld(t)
	addFloor(t, world, 0, 0, 60)
	start := voxel.Position{X: 0, Y: 1, Z: 0}
	goal := voxel.Position{X: 59, Y: 1, Z: 0}

	opts := DefaultOptions(ModeGround)
	opts.MaxNodes = 5

	result := runPointSearch(t, world, start, goal, 64, opts)
	if len(result.Diagnostics.Consumed) > opts.MaxNodes {
		t.Fatalf("expected at most %d consumed nodes, got %d", opts.MaxNodes, len(result.Diagnostics.Consumed))
	}
	if result.Path.Reaches {
		t.Fatalf("expected a 59-block corridor to be unreachable within a 5-node budget")
	}
}

func TestSearchReturnsNilPathWhenInterruptedBeforeFirstPop(t *testing.T) {
	world := newTestWorld(t)
	addFloor(t, world, 0, 0, 10)
	start := voxel.Position{X: 0, Y: 1, Z: 0}
	goal := voxel.Position{X: 9, Y: 1, Z: 0}

	ctx := context.Background()
	job, err := NewPointJob(ctx, world, classify.NewContext(), agent.NewProfile(start), DefaultOptions(ModeGround), start, goal, 16)
	if err != nil {
		t.Fatalf("NewPointJob: %v", err)
	}
	job.Interrupted.Cancel()

	result := Search(ctx, job)
	if result.Path != nil {
		t.Fatalf("expected a nil path once the job is interrupted before the first pop")
	}
}

func TestSearchHonorsHardRestrictionWindow(t *testing.T) {
	world := newTestWorld(t)
	addFloor(t, world, 0, 0, 30)
	start := voxel.Position{X: 0, Y: 1, Z: 0}
	goal := voxel.Position{X: 29, Y: 1, Z: 0}

	ctx := context.Background()
	job, err := NewPointJob(ctx, world, classify.NewContext(), agent.NewProfile(start), DefaultOptions(ModeGround), start, goal, 32)
	if err != nil {
		t.Fatalf("NewPointJob: %v", err)
	}
	job.Restriction = Restriction{Enabled: true, Hard: true, MinX: -1, MaxX: 5, MinZ: -1, MaxZ: 1}

	result := Search(ctx, job)
	for pos := range result.Diagnostics.Consumed {
		if pos.X > job.Restriction.MaxX+1 {
			t.Fatalf("expected a hard restriction to keep expansion from running away past the window, found %+v", pos)
		}
	}
	if result.Path.Reaches {
		t.Fatalf("expected the goal outside the hard restriction window to be unreachable")
	}
}
