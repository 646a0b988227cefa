package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"pathcore/internal/agent"
	"pathcore/internal/classify"
	"pathcore/internal/pathing"
	"pathcore/internal/voxel"
)

// syntheticGenerator carves a demo world out of deterministic per-column
// noise: a flat floor everywhere, with towers, ladder shafts, and water
// pools scattered in so a profiling run actually exercises jump, climb, and
// swim traversal rather than a bare corridor.
type syntheticGenerator struct {
	height int
}

func (g syntheticGenerator) Generate(ctx context.Context, coord voxel.ChunkCoord, bounds voxel.Bounds, dim voxel.Dimensions) (*voxel.Chunk, error) {
	chunk := voxel.NewChunk(coord, bounds, dim)
	solid := voxel.BlockState{Material: voxel.MaterialSolid, CollisionHeight: 1}
	water := voxel.BlockState{Material: voxel.MaterialWater}
	south := voxel.FacingSouth
	ladder := voxel.BlockState{Material: voxel.MaterialAir, Ladder: &south}

	for x := 0; x < dim.Width; x++ {
		for z := 0; z < dim.Depth; z++ {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			seed := hashColumn(bounds.Min.X+x, bounds.Min.Z+z, coord.X^coord.Z)

			switch {
			case seed%13 == 0:
				chunk.SetLocalBlock(x, 0, z, water)
				chunk.SetLocalBlock(x, 1, z, water)
			case seed%11 == 0:
				towerHeight := int(seed%uint32(g.height/4+1)) + 1
				chunk.SetLocalBlock(x, 0, z, solid)
				for y := 1; y <= towerHeight && y < dim.Height; y++ {
					chunk.SetLocalBlock(x, y, z, solid)
				}
			case seed%17 == 0:
				chunk.SetLocalBlock(x, 0, z, solid)
				for y := 1; y <= 5 && y < dim.Height; y++ {
					chunk.SetLocalBlock(x, y, z, ladder)
				}
			default:
				chunk.SetLocalBlock(x, 0, z, solid)
			}
		}
	}

	return chunk, nil
}

func hashColumn(x, z, salt int) uint32 {
	h := uint32(x*374761393 + z*668265263 + salt*362437)
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

// configBundle is the YAML traversal-profile override the demo loads before
// driving the search loop. Every field is optional; anything left unset
// keeps pathing.DefaultOptions' value for the chosen mode.
type configBundle struct {
	Entity struct {
		Width     float64 `yaml:"width"`
		Height    float64 `yaml:"height"`
		EyeHeight float64 `yaml:"eyeHeight"`
	} `yaml:"entity"`
	Options struct {
		JumpDropCost      *float64 `yaml:"jumpDropCost"`
		OnLadderCost      *float64 `yaml:"onLadderCost"`
		SwimCost          *float64 `yaml:"swimCost"`
		SwimCostEnter     *float64 `yaml:"swimCostEnter"`
		CanSwim           *bool    `yaml:"canSwim"`
		CanUseLadders     *bool    `yaml:"canUseLadders"`
		CanUseRails       *bool    `yaml:"canUseRails"`
		MinRailsRun       *int     `yaml:"minRailsRun"`
		LowerSwimWaypoint *bool    `yaml:"lowerSwimWaypoint"`
		MaxNodes          *int     `yaml:"maxNodes"`
	} `yaml:"options"`
}

func loadConfigBundle(path string) (configBundle, error) {
	var bundle configBundle
	data, err := os.ReadFile(path)
	if err != nil {
		return bundle, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return bundle, fmt.Errorf("parse config: %w", err)
	}
	return bundle, nil
}

func (b configBundle) applyTo(opts pathing.PathingOptions) pathing.PathingOptions {
	if b.Options.JumpDropCost != nil {
		opts.JumpDropCost = *b.Options.JumpDropCost
	}
	if b.Options.OnLadderCost != nil {
		opts.OnLadderCost = *b.Options.OnLadderCost
	}
	if b.Options.SwimCost != nil {
		opts.SwimCost = *b.Options.SwimCost
	}
	if b.Options.SwimCostEnter != nil {
		opts.SwimCostEnter = *b.Options.SwimCostEnter
	}
	if b.Options.CanSwim != nil {
		opts.CanSwim = *b.Options.CanSwim
	}
	if b.Options.CanUseLadders != nil {
		opts.CanUseLadders = *b.Options.CanUseLadders
	}
	if b.Options.CanUseRails != nil {
		opts.CanUseRails = *b.Options.CanUseRails
	}
	if b.Options.MinRailsRun != nil {
		opts.MinRailsRun = *b.Options.MinRailsRun
	}
	if b.Options.LowerSwimWaypoint != nil {
		opts.LowerSwimWaypoint = *b.Options.LowerSwimWaypoint
	}
	if b.Options.MaxNodes != nil {
		opts.MaxNodes = *b.Options.MaxNodes
	}
	return opts
}

func (b configBundle) applyToEntity(base agent.Profile) agent.Profile {
	if b.Entity.Width > 0 {
		base.W = b.Entity.Width
	}
	if b.Entity.Height > 0 {
		base.H = b.Entity.Height
	}
	if b.Entity.EyeHeight > 0 {
		base.Eye = b.Entity.EyeHeight
	}
	return base
}

func main() {
	var (
		totalRequests = flag.Int("requests", 2000, "number of pathing requests to issue")
		concurrency   = flag.Int("concurrency", runtime.NumCPU(), "pool size for concurrent job submission")
		chunksPerAxis = flag.Int("chunks", 3, "chunks per axis to include in the demo region")
		chunkWidth    = flag.Int("chunkWidth", 32, "chunk width in blocks")
		chunkDepth    = flag.Int("chunkDepth", 32, "chunk depth in blocks")
		chunkHeight   = flag.Int("chunkHeight", 48, "chunk height in blocks")
		rangeBlocks   = flag.Int("range", 64, "search range budget passed to every job")
		modeFlag      = flag.String("mode", "ground", "traversal mode: ground, flying, underground")
		timeout       = flag.Duration("timeout", 250*time.Millisecond, "per-request timeout")
		seed          = flag.Int64("seed", 1337, "random seed for start/goal selection")
		configPath    = flag.String("config", "", "optional YAML traversal-profile bundle")
	)
	flag.Parse()

	if *totalRequests <= 0 || *concurrency <= 0 || *chunksPerAxis <= 0 {
		fmt.Fprintln(os.Stderr, "requests, concurrency, and chunks must be positive")
		os.Exit(1)
	}

	mode := pathing.ModeFromString(*modeFlag)
	opts := pathing.DefaultOptions(mode)
	entity := agent.NewProfile(voxel.Position{})

	if *configPath != "" {
		bundle, err := loadConfigBundle(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		opts = bundle.applyTo(opts)
		entity = bundle.applyToEntity(entity)
	}

	dims := voxel.Dimensions{Width: *chunkWidth, Depth: *chunkDepth, Height: *chunkHeight}
	manager := voxel.NewManager(dims, syntheticGenerator{height: *chunkHeight})

	ctx := context.Background()
	candidates, err := collectCandidates(ctx, manager, *chunksPerAxis, dims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "collect candidates: %v\n", err)
		os.Exit(1)
	}
	if len(candidates) < 2 {
		fmt.Fprintln(os.Stderr, "not enough passable columns to profile")
		os.Exit(1)
	}

	clsCtx := classify.NewContext()
	metrics := &pathing.Metrics{}
	profiledCtx := pathing.ContextWithProfiler(ctx, metrics.Profiler())
	pool := pathing.NewPool(*concurrency)

	rng := rand.New(rand.NewSource(*seed))
	var (
		mu                 sync.Mutex
		successes          int
		failures           int
		timeouts           int
		totalSuccessLength int
		totalDuration      time.Duration
	)

	var g errgroup.Group
	for i := 0; i < *totalRequests; i++ {
		start := candidates[rng.Intn(len(candidates))]
		goal := candidates[rng.Intn(len(candidates))]
		for start == goal {
			goal = candidates[rng.Intn(len(candidates))]
		}

		g.Go(func() error {
			jobCtx, cancel := context.WithTimeout(profiledCtx, *timeout)
			defer cancel()

			job, err := pathing.NewPointJob(jobCtx, manager, clsCtx, entity, opts, start, goal, *rangeBlocks)
			if err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
				return nil
			}

			began := time.Now()
			result, err := pool.Submit(jobCtx, job)
			elapsed := time.Since(began)

			mu.Lock()
			defer mu.Unlock()
			totalDuration += elapsed
			switch {
			case errors.Is(err, context.DeadlineExceeded):
				timeouts++
			case err != nil:
				failures++
			case result.Path.Reaches:
				successes++
				totalSuccessLength += len(result.Path.Waypoints) - 1
			default:
				failures++
			}
			return nil
		})
	}

	startWall := time.Now()
	g.Wait()
	wallDuration := time.Since(startWall)

	snap := metrics.Snapshot()
	avgDuration := time.Duration(0)
	if *totalRequests > 0 {
		avgDuration = totalDuration / time.Duration(*totalRequests)
	}
	avgPathLength := 0.0
	if successes > 0 {
		avgPathLength = float64(totalSuccessLength) / float64(successes)
	}

	fmt.Println("== Voxel Pathing Profile ==")
	fmt.Printf("Chunks per axis: %d\n", *chunksPerAxis)
	fmt.Printf("Chunk dimensions: %dx%dx%d (width x depth x height)\n", dims.Width, dims.Depth, dims.Height)
	fmt.Printf("Mode: %s\n", *modeFlag)
	fmt.Printf("Requests: %d\n", *totalRequests)
	fmt.Printf("Pool size: %d\n", *concurrency)
	fmt.Printf("Successes: %d, Failures: %d, Timeouts: %d\n", successes, failures, timeouts)
	fmt.Printf("Average path length (moves): %.2f\n", avgPathLength)
	fmt.Printf("Average per-request duration: %s\n", avgDuration)
	fmt.Printf("Wall clock duration: %s\n", wallDuration)
	fmt.Printf("Nodes popped: %d\n", snap.NodesPopped)
	fmt.Printf("Nodes expanded: %d\n", snap.NodesExpanded)
	fmt.Printf("Heuristic evaluations: %d\n", snap.HeuristicEvaluations)
	fmt.Printf("Ground-height resolves: %d\n", snap.GroundHeightResolves)
}

// collectCandidates generates every chunk in the [0,chunksPerAxis)^2 grid
// and returns one walkable-surface candidate position per column: one block
// above the column's topmost non-air block.
func collectCandidates(ctx context.Context, manager *voxel.Manager, chunksPerAxis int, dims voxel.Dimensions) ([]voxel.Position, error) {
	candidates := make([]voxel.Position, 0, chunksPerAxis*chunksPerAxis*dims.Width*dims.Depth)
	for cx := 0; cx < chunksPerAxis; cx++ {
		for cz := 0; cz < chunksPerAxis; cz++ {
			coord := voxel.ChunkCoord{X: cx, Z: cz}
			chunk, err := manager.EnsureChunk(ctx, coord)
			if err != nil {
				return nil, err
			}
			for lx := 0; lx < dims.Width; lx++ {
				for lz := 0; lz < dims.Depth; lz++ {
					top := highestNonAir(chunk, lx, lz, dims.Height)
					if top < 0 || top+1 >= dims.Height {
						continue
					}
					candidates = append(candidates, voxel.Position{
						X: chunk.Bounds.Min.X + lx,
						Y: top + 1,
						Z: chunk.Bounds.Min.Z + lz,
					})
				}
			}
		}
	}
	return candidates, nil
}

func highestNonAir(chunk *voxel.Chunk, localX, localZ, height int) int {
	last := -1
	for y := 0; y < height; y++ {
		block, ok := chunk.LocalBlock(localX, y, localZ)
		if !ok {
			break
		}
		if !block.IsAir() {
			last = y
		}
	}
	return last
}
