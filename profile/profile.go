// Package profile defines the shared dive-profile data model: segments,
// stops, gas switches, warnings, parameter structs and the computed
// DiveProfile itself. It has no dependency on any planner, so every
// planner package (buhlmann, vpmb, navy, analysis, repetitive, compare)
// can depend on it without creating an import cycle with the root
// divengine facade that wires them together.
package profile

import (
	"errors"
	"time"

	"github.com/m5lapp/divengine/gasmix"
	"github.com/m5lapp/divengine/tissue"
)

// Units selects the display unit system for formatting helpers consumed
// by UI collaborators. It has no effect on the engine's internal
// arithmetic, which is always metric/bar.
type Units int

const (
	Metric Units = iota
	Imperial
)

// Tag classifies a DiveSegment's role in a profile.
type Tag string

const (
	TagDescent Tag = "descent"
	TagBottom  Tag = "bottom"
	TagAscent  Tag = "ascent"
	TagDeco    Tag = "deco"
)

// DiveSegment is one leg of a dive, used both as planner input (bottom
// legs supplied by the caller) and as planner output (phase segments in a
// DiveProfile).
type DiveSegment struct {
	DepthM   float64       `bson:"depth_m" json:"depth_m"`
	Duration float64       `bson:"duration_min" json:"duration_min"`
	Gas      gasmix.GasMix `bson:"gas" json:"gas"`
	Tag      Tag           `bson:"tag" json:"tag"`
}

// Validate checks the structural invariants of a user-supplied bottom
// segment: positive depth and duration.
func (s DiveSegment) Validate() error {
	if s.DepthM <= 0 || s.Duration <= 0 {
		return ErrSegmentOutOfRange
	}
	return nil
}

// GasSwitchReason classifies why a GasSwitch was made.
type GasSwitchReason string

const (
	SwitchOptimal  GasSwitchReason = "optimal"
	SwitchModLimit GasSwitchReason = "mod_limit"
	SwitchDeco     GasSwitchReason = "deco"
)

// GasSwitch records a change of breathing gas during a profile.
type GasSwitch struct {
	DepthM  float64         `bson:"depth_m" json:"depth_m"`
	FromGas gasmix.GasMix   `bson:"from_gas" json:"from_gas"`
	ToGas   gasmix.GasMix   `bson:"to_gas" json:"to_gas"`
	Reason  GasSwitchReason `bson:"reason" json:"reason"`
}

// DecompressionStop is one mandatory or safety stop in a computed profile.
type DecompressionStop struct {
	DepthM     float64       `bson:"depth_m" json:"depth_m"`
	Duration   float64       `bson:"duration_min" json:"duration_min"`
	RuntimeMin float64       `bson:"runtime_min" json:"runtime_min"`
	Gas        gasmix.GasMix `bson:"gas" json:"gas"`
	GasSwitch  *GasSwitch    `bson:"gas_switch,omitempty" json:"gas_switch,omitempty"`
}

// Warning is a non-fatal finding attached to a profile. Planners never
// abort on these; they record them and keep computing a best-effort
// schedule.
type Warning struct {
	Level   gasmix.Severity `bson:"level" json:"level"`
	Message string          `bson:"message" json:"message"`
	Details string          `bson:"details" json:"details"`
}

// SingleLevelParameters describes a single constant-depth bottom dive.
type SingleLevelParameters struct {
	DepthM     float64
	BottomTime float64
	Gas        gasmix.GasMix
	GFLow      float64
	GFHigh     float64
	Units      Units
}

// MultiLevelParameters describes a multi-level dive over 1..5 bottom
// legs, drawing decompression gas from an inventory.
type MultiLevelParameters struct {
	Segments    []DiveSegment
	Inventory   gasmix.Inventory
	GFLow       float64
	GFHigh      float64
	DescentRate float64
	AscentRate  float64
	Units       Units
}

// DiveProfile is the immutable, read-only result of a planner call.
type DiveProfile struct {
	PlanID   string              `bson:"plan_id" json:"plan_id"`
	Model    string              `bson:"model" json:"model"`
	Stops    []DecompressionStop `bson:"stops" json:"stops"`
	Switches []GasSwitch         `bson:"switches" json:"switches"`
	Segments []DiveSegment       `bson:"segments" json:"segments"`
	Warnings []Warning           `bson:"warnings" json:"warnings"`

	TotalDecoTime float64 `bson:"total_deco_time_min" json:"total_deco_time_min"`
	TotalDiveTime float64 `bson:"total_dive_time_min" json:"total_dive_time_min"`
	NDL           float64 `bson:"ndl_min" json:"ndl_min"`
	MaxDepthM     float64 `bson:"max_depth_m" json:"max_depth_m"`
	AvgDepthM     float64 `bson:"avg_depth_m" json:"avg_depth_m"`

	FinalTissue *tissue.Compartments `bson:"-" json:"-"`

	ComputedAt time.Time `bson:"computed_at" json:"computed_at"`
}

// Error taxonomy: hard structural problems surface as a distinguished
// failure return before any work is done; soft safety problems become
// Warnings instead.
var (
	ErrInvalidGasMix              = gasmix.ErrInvalidGasMix
	ErrSegmentOutOfRange          = errors.New("divengine: segment depth/duration out of range, or too many segments")
	ErrTableOutOfRange            = errors.New("divengine: navy table has no entry for this depth/gas")
	ErrNoSafeGasAtDepth           = errors.New("divengine: no gas in inventory can be safely breathed at this depth")
	ErrScheduleConvergenceFailure = errors.New("divengine: stop-discovery loop did not converge")
	ErrSurfaceIntervalTooShort    = errors.New("divengine: surface interval shorter than minimum required")
	ErrTooManyDives               = errors.New("divengine: exceeds the maximum number of dives per day")
	ErrPressureGroupTooHigh       = errors.New("divengine: carryover pressure group exceeds configured threshold")
)

const (
	// MaxStopDiscoveryIterations bounds the stop-discovery loop; exceeding
	// it is a ScheduleConvergenceFailure, recorded as a danger warning
	// rather than aborting the computation.
	MaxStopDiscoveryIterations = 1000

	// SafetyStopDepthM is the depth of the conventional 3-minute safety
	// stop inserted on the first ascent step that reaches or crosses it.
	SafetyStopDepthM = 5.0

	// MaxBottomSegments is the maximum number of bottom legs a multi-level
	// plan may specify.
	MaxBottomSegments = 5

	// GasSwitchTimeMin is the time spent at depth performing a gas switch
	// before continuing the ascent or stop.
	GasSwitchTimeMin = 1.0

	// StopDepthIncrement is the standard decompression stop spacing.
	StopDepthIncrement = 3.0
)
