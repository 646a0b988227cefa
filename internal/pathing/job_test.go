package pathing

import (
	"context"
	"errors"
	"testing"

	"pathcore/internal/agent"
	"pathcore/internal/classify"
	"pathcore/internal/voxel"
)

func TestNewPointJobResolvesStartWithinWindow(t *testing.T) {
	world := newTestWorld(t)
	addFloor(t, world, 0, 0, 5)

	start := voxel.Position{X: 0, Y: 1, Z: 0}
	goal := voxel.Position{X: 5, Y: 1, Z: 0}

	job, err := NewPointJob(context.Background(), world, classify.NewContext(), agent.NewProfile(start), DefaultOptions(ModeGround), start, goal, 10)
	if err != nil {
		t.Fatalf("NewPointJob: %v", err)
	}
	if job.Start != start {
		t.Fatalf("expected unchanged start %+v, got %+v", start, job.Start)
	}
	if !job.Snapshot.Contains(start) || !job.Snapshot.Contains(goal) {
		t.Fatalf("expected snapshot window to contain both start and goal")
	}
	if !job.IsAtDestination(goal) {
		t.Fatalf("expected IsAtDestination(goal) to be true")
	}
	if job.IsAtDestination(start) {
		t.Fatalf("expected IsAtDestination(start) to be false")
	}
}

func TestNewPointJobRejectsUnresolvableStart(t *testing.T) {
	world := newTestWorld(t)
	clsCtx := classify.NewContext()
	clsCtx.StartPositionAdjuster.Register(func(a classify.StartArgs) classify.Answer[voxel.Position] {
		return classify.Some(voxel.Position{X: a.Candidate.X + 100000, Y: a.Candidate.Y, Z: a.Candidate.Z})
	})

	start := voxel.Position{X: 0, Y: 1, Z: 0}
	goal := voxel.Position{X: 5, Y: 1, Z: 0}

	_, err := NewPointJob(context.Background(), world, clsCtx, agent.NewProfile(start), DefaultOptions(ModeGround), start, goal, 10)
	if !errors.Is(err, ErrStartUnresolvable) {
		t.Fatalf("expected ErrStartUnresolvable, got %v", err)
	}
}

func TestNewRegionJobDestinationIsInsideRegion(t *testing.T) {
	world := newTestWorld(t)
	addFloor(t, world, 0, 0, 20)

	start := voxel.Position{X: 0, Y: 1, Z: 0}
	restrictionMin := voxel.Position{X: 10, Y: 0, Z: -2}
	restrictionMax := voxel.Position{X: 15, Y: 2, Z: 2}

	job, err := NewRegionJob(context.Background(), world, classify.NewContext(), agent.NewProfile(start), DefaultOptions(ModeGround), start, restrictionMin, restrictionMax, 20, 0, false)
	if err != nil {
		t.Fatalf("NewRegionJob: %v", err)
	}
	inside := voxel.Position{X: 12, Y: 1, Z: 0}
	if !job.IsAtDestination(inside) {
		t.Fatalf("expected a position inside the region to satisfy IsAtDestination")
	}
	if job.IsAtDestination(start) {
		t.Fatalf("expected start to be outside the region")
	}
}

func TestNewAvoidJobRequiresMinimumDistance(t *testing.T) {
	world := newTestWorld(t)
	addFloor(t, world, 0, 0, 20)

	start := voxel.Position{X: 0, Y: 1, Z: 0}
	avoidMin := voxel.Position{X: -1, Y: 0, Z: -1}
	avoidMax := voxel.Position{X: 1, Y: 2, Z: 1}

	job, err := NewAvoidJob(context.Background(), world, classify.NewContext(), agent.NewProfile(start), DefaultOptions(ModeGround), start, avoidMin, avoidMax, 20, 5)
	if err != nil {
		t.Fatalf("NewAvoidJob: %v", err)
	}
	if job.IsAtDestination(start) {
		t.Fatalf("expected start near the avoid zone to not satisfy IsAtDestination")
	}
	far := voxel.Position{X: 10, Y: 1, Z: 0}
	if !job.IsAtDestination(far) {
		t.Fatalf("expected a position far from the avoid zone to satisfy IsAtDestination")
	}
}

func TestInterruptNilSafe(t *testing.T) {
	var i *Interrupt
	if i.Load() {
		t.Fatalf("expected nil interrupt to report not-cancelled")
	}
	i.Cancel()
}

func TestRestrictionContainsWhenDisabled(t *testing.T) {
	var r Restriction
	if !r.Contains(voxel.Position{X: 1000, Y: 1000, Z: 1000}) {
		t.Fatalf("expected a disabled restriction to contain every position")
	}
}
