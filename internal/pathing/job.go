package pathing

import (
	"context"
	"errors"
	"math"
	"sync/atomic"

	"pathcore/internal/agent"
	"pathcore/internal/classify"
	"pathcore/internal/voxel"
)

// ErrStartUnresolvable is returned when the start-position adjuster (spec.md
// section 4.2) yields a position outside the snapshot window even after one
// re-expansion (spec.md section 9, Open Question: "the core should validate
// start is inside the window and, if not, re-expand the snapshot or
// reject").
var ErrStartUnresolvable = errors.New("pathing: start position unresolvable within snapshot window")

// Interrupt is the cooperative cancellation token spec.md section 5 and
// section 9 call for ("expose cancellation as an atomic flag... rather than
// language-specific interruption primitives"). The zero value is usable.
type Interrupt struct {
	flag atomic.Bool
}

func (i *Interrupt) Cancel() {
	if i == nil {
		return
	}
	i.flag.Store(true)
}

func (i *Interrupt) Load() bool {
	if i == nil {
		return false
	}
	return i.flag.Load()
}

// Restriction is the axis-aligned XZ window spec.md section 4.7 describes.
// Soft mode gates only destination testing; hard mode also gates expansion.
type Restriction struct {
	Enabled bool
	Hard    bool
	MinX    int
	MaxX    int
	MinZ    int
	MaxZ    int
}

func (r Restriction) Contains(p voxel.Position) bool {
	if !r.Enabled {
		return true
	}
	return p.X >= r.MinX && p.X <= r.MaxX && p.Z >= r.MinZ && p.Z <= r.MaxZ
}

// Job is the capability record spec.md section 9 prescribes in place of a
// deep job-class hierarchy: a concrete goal shape (point, region, avoid) is
// just a constructor that fills in Heuristic/IsAtDestination/
// NodeResultScore and hands the record to Search.
type Job struct {
	Snapshot    *voxel.Snapshot
	ClassifyCtx *classify.Context
	Entity      agent.Entity
	Options     PathingOptions
	Start       voxel.Position
	Range       int
	Restriction Restriction
	Interrupted *Interrupt

	Heuristic       func(voxel.Position) float64
	IsAtDestination func(voxel.Position) bool
	NodeResultScore func(voxel.Position) float64
}

const (
	snapshotPad = 4
	// reexpandPad widens the window by one chunk's worth of blocks, the
	// single re-expansion spec.md section 9 allows before giving up on an
	// out-of-window adjusted start.
	reexpandPad = 16
)

func boundingBox(a, b voxel.Position, rangeBlocks int) voxel.Bounds {
	min := voxel.Position{X: minInt(a.X, b.X) - rangeBlocks, Y: voxel.MinY, Z: minInt(a.Z, b.Z) - rangeBlocks}
	max := voxel.Position{X: maxInt(a.X, b.X) + rangeBlocks, Y: voxel.MaxY, Z: maxInt(a.Z, b.Z) + rangeBlocks}
	return voxel.Bounds{Min: min, Max: max}
}

// buildSnapshot constructs the C1 window over box (typically the bounding
// box of start and goal expanded by range, spec.md section 2's data-flow
// paragraph), then resolves and validates the start position against it,
// re-expanding once if the adjuster moved the start outside the window.
func buildSnapshot(ctx context.Context, reader voxel.WorldReader, clsCtx *classify.Context, ent agent.Entity, start voxel.Position, box voxel.Bounds) (*voxel.Snapshot, voxel.Position, error) {
	boxMin, boxMax := box.Min, box.Max

	snap := voxel.NewSnapshot(ctx, reader, boxMin, boxMax, snapshotPad)
	adjusted := clsCtx.StartPositionAdjuster.Resolve(classify.StartArgs{Entity: ent, Candidate: start})
	if snap.Contains(adjusted) {
		return snap, adjusted, nil
	}

	snap = voxel.NewSnapshot(ctx, reader, boxMin, boxMax, snapshotPad+reexpandPad)
	if !snap.Contains(adjusted) {
		return nil, voxel.Position{}, ErrStartUnresolvable
	}
	return snap, adjusted, nil
}

// NewPointJob builds a job whose destination is a single block (spec.md
// section 6: "(world, start, end, range, entity)").
func NewPointJob(ctx context.Context, reader voxel.WorldReader, clsCtx *classify.Context, ent agent.Entity, opts PathingOptions, start, goal voxel.Position, rangeBlocks int) (*Job, error) {
	snap, adjustedStart, err := buildSnapshot(ctx, reader, clsCtx, ent, start, boundingBox(start, goal, rangeBlocks))
	if err != nil {
		return nil, err
	}

	return &Job{
		Snapshot:        snap,
		ClassifyCtx:     clsCtx,
		Entity:          ent,
		Options:         opts,
		Start:           adjustedStart,
		Range:           rangeBlocks,
		Interrupted:     &Interrupt{},
		Heuristic:       EuclideanHeuristic(goal),
		IsAtDestination: func(p voxel.Position) bool { return p == goal },
		NodeResultScore: EuclideanHeuristic(goal),
	}, nil
}

// NewRegionJob builds a job whose destination is any cell inside
// [restrictionMin, restrictionMax] (spec.md section 6: "(world, start,
// restrictionMin, restrictionMax, range, grow, hardRestriction, entity)").
func NewRegionJob(ctx context.Context, reader voxel.WorldReader, clsCtx *classify.Context, ent agent.Entity, opts PathingOptions, start, restrictionMin, restrictionMax voxel.Position, rangeBlocks, grow int, hardRestriction bool) (*Job, error) {
	goalAnchor := voxel.Position{
		X: (restrictionMin.X + restrictionMax.X) / 2,
		Y: (restrictionMin.Y + restrictionMax.Y) / 2,
		Z: (restrictionMin.Z + restrictionMax.Z) / 2,
	}

	// The search window must cover the whole restriction rectangle, not just
	// a range-sized box around its center: Union guarantees that even a
	// restriction much larger than rangeBlocks stays fully inside the
	// snapshot.
	box := voxel.Union(boundingBox(start, goalAnchor, rangeBlocks), voxel.Bounds{Min: restrictionMin, Max: restrictionMax}.Expand(grow))

	snap, adjustedStart, err := buildSnapshot(ctx, reader, clsCtx, ent, start, box)
	if err != nil {
		return nil, err
	}

	restriction := Restriction{
		Enabled: true,
		Hard:    hardRestriction,
		MinX:    restrictionMin.X - grow,
		MaxX:    restrictionMax.X + grow,
		MinZ:    restrictionMin.Z - grow,
		MaxZ:    restrictionMax.Z + grow,
	}

	targets := regionCorners(restrictionMin, restrictionMax)

	return &Job{
		Snapshot:    snap,
		ClassifyCtx: clsCtx,
		Entity:      ent,
		Options:     opts,
		Start:       adjustedStart,
		Range:       rangeBlocks,
		Restriction: restriction,
		Interrupted: &Interrupt{},
		Heuristic:   MinOfSetHeuristic(targets),
		IsAtDestination: func(p voxel.Position) bool {
			return p.X >= restrictionMin.X && p.X <= restrictionMax.X &&
				p.Z >= restrictionMin.Z && p.Z <= restrictionMax.Z
		},
		NodeResultScore: MinOfSetHeuristic(targets),
	}, nil
}

func regionCorners(min, max voxel.Position) []voxel.Position {
	return []voxel.Position{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
	}
}

// NewAvoidJob builds a job whose destination is any cell at least
// minSafeDistance from [avoidMin, avoidMax] (the "away-from" goal shape
// spec.md section 9 names). The heuristic and result score are expressed in
// terms of remaining distance-to-safety, so the driver's ordinary
// minimize-score best-so-far logic still applies.
func NewAvoidJob(ctx context.Context, reader voxel.WorldReader, clsCtx *classify.Context, ent agent.Entity, opts PathingOptions, start, avoidMin, avoidMax voxel.Position, rangeBlocks int, minSafeDistance float64) (*Job, error) {
	snap, adjustedStart, err := buildSnapshot(ctx, reader, clsCtx, ent, start, boundingBox(start, start, rangeBlocks))
	if err != nil {
		return nil, err
	}

	distanceFromZone := func(p voxel.Position) float64 {
		dx := float64(clampOutside(p.X, avoidMin.X, avoidMax.X))
		dy := float64(clampOutside(p.Y, avoidMin.Y, avoidMax.Y))
		dz := float64(clampOutside(p.Z, avoidMin.Z, avoidMax.Z))
		return math.Sqrt(dx*dx + dy*dy + dz*dz)
	}

	return &Job{
		Snapshot:    snap,
		ClassifyCtx: clsCtx,
		Entity:      ent,
		Options:     opts,
		Start:       adjustedStart,
		Range:       rangeBlocks,
		Interrupted: &Interrupt{},
		Heuristic: func(p voxel.Position) float64 {
			remaining := minSafeDistance - distanceFromZone(p)
			if remaining < 0 {
				return 0
			}
			return remaining
		},
		IsAtDestination: func(p voxel.Position) bool {
			return distanceFromZone(p) >= minSafeDistance
		},
		NodeResultScore: func(p voxel.Position) float64 {
			return -distanceFromZone(p)
		},
	}, nil
}

func clampOutside(v, lo, hi int) int {
	if v < lo {
		return lo - v
	}
	if v > hi {
		return v - hi
	}
	return 0
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
