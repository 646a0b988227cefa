package pathing

import "strings"

// Mode selects the traversal-default family a job starts from. Grounded on
// the teacher's pathfinding.Mode/UnitProfile (navigator.go); the knobs
// themselves are replaced wholesale with spec.md section 3's cost-multiplier
// bag.
type Mode int

const (
	ModeGround Mode = iota
	ModeFlying
	ModeUnderground
)

// ModeFromString parses a textual traversal mode label, matching the
// teacher's ModeFromString.
func ModeFromString(value string) Mode {
	switch strings.ToLower(value) {
	case "flying":
		return ModeFlying
	case "underground", "digging":
		return ModeUnderground
	default:
		return ModeGround
	}
}

// PathingOptions is the scalar configuration bag spec.md section 3 names,
// immutable for the duration of a single search.
type PathingOptions struct {
	JumpDropCost           float64
	TraverseToggleableCost float64
	OnPathCost             float64
	OnRailCost             float64
	RailsExitCost          float64
	OnLadderCost           float64
	SwimCost               float64
	SwimCostEnter          float64

	CanSwim       bool
	CanUseLadders bool
	CanUseRails   bool

	// MinRailsRun is the shortest rail segment (in waypoints) the
	// finalizer will annotate as on-rails; shorter runs are stripped
	// (spec.md section 4.8: "only if the rails run is >= configured
	// minimum").
	MinRailsRun int

	// LowerSwimWaypoint resolves the swim-waypoint Y-shift open question
	// (spec.md section 9): when true, finalized swim waypoints are
	// emitted one block below their node position to stabilize the agent
	// on the surface.
	LowerSwimWaypoint bool

	// EnableJPSLite toggles the optional recursive same-direction
	// continuation (spec.md section 4.4 step 8, section 9 glossary);
	// disabled by default.
	EnableJPSLite bool

	// MaxNodes caps the node budget alongside range^2 (spec.md section
	// 4.7: "apply node budget... min(configMax, range^2)"). Zero means
	// "no additional cap beyond range^2".
	MaxNodes int
}

// DefaultOptions returns traversal-cost defaults for the given mode,
// mirroring the teacher's DefaultProfile switch shape.
func DefaultOptions(mode Mode) PathingOptions {
	base := PathingOptions{
		JumpDropCost:           1.5,
		TraverseToggleableCost: 2.0,
		OnPathCost:             0.8,
		OnRailCost:             0.4,
		RailsExitCost:          1.2,
		OnLadderCost:           1.0,
		SwimCost:               1.3,
		SwimCostEnter:          2.0,
		CanUseLadders:          true,
		CanUseRails:            true,
		MinRailsRun:            3,
		LowerSwimWaypoint:      true,
		MaxNodes:               0,
	}

	switch mode {
	case ModeFlying:
		base.CanSwim = true
		base.JumpDropCost = 1.0
	case ModeUnderground:
		base.CanSwim = false
		base.CanUseLadders = false
		base.CanUseRails = false
	case ModeGround:
		fallthrough
	default:
		base.CanSwim = false
	}

	return base
}
