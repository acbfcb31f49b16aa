// Package divengine is the dive decompression planning engine: given a
// descent/bottom profile and a gas inventory, it computes the ascent
// schedule (ordered decompression stops, gas switches, runtime, warnings)
// that keeps modeled tissue loadings below depth-dependent tolerance
// curves. It exposes three planner families (Bühlmann ZHL-16C/GF, a
// simplified VPM-B, and a US Navy table lookup), analysis queries, a
// repetitive-dive planner, and a cross-model comparison harness.
package divengine

import (
	"github.com/google/uuid"

	"github.com/m5lapp/divengine/analysis"
	"github.com/m5lapp/divengine/buhlmann"
	"github.com/m5lapp/divengine/compare"
	"github.com/m5lapp/divengine/gasmix"
	"github.com/m5lapp/divengine/navy"
	"github.com/m5lapp/divengine/profile"
	"github.com/m5lapp/divengine/repetitive"
	"github.com/m5lapp/divengine/vpmb"
)

// Re-exported data model. Every planner package depends on profile
// directly; the root package only aliases it so callers never need to
// import the narrower package themselves.
type (
	Units                 = profile.Units
	Tag                   = profile.Tag
	DiveSegment           = profile.DiveSegment
	GasSwitchReason       = profile.GasSwitchReason
	GasSwitch             = profile.GasSwitch
	DecompressionStop     = profile.DecompressionStop
	Warning               = profile.Warning
	SingleLevelParameters = profile.SingleLevelParameters
	MultiLevelParameters  = profile.MultiLevelParameters
	DiveProfile           = profile.DiveProfile
)

const (
	Metric   = profile.Metric
	Imperial = profile.Imperial

	TagDescent = profile.TagDescent
	TagBottom  = profile.TagBottom
	TagAscent  = profile.TagAscent
	TagDeco    = profile.TagDeco

	SwitchOptimal  = profile.SwitchOptimal
	SwitchModLimit = profile.SwitchModLimit
	SwitchDeco     = profile.SwitchDeco

	MaxStopDiscoveryIterations = profile.MaxStopDiscoveryIterations
	SafetyStopDepthM           = profile.SafetyStopDepthM
	MaxBottomSegments          = profile.MaxBottomSegments
	GasSwitchTimeMin           = profile.GasSwitchTimeMin
	StopDepthIncrement         = profile.StopDepthIncrement
)

var (
	ErrInvalidGasMix              = profile.ErrInvalidGasMix
	ErrSegmentOutOfRange          = profile.ErrSegmentOutOfRange
	ErrTableOutOfRange            = profile.ErrTableOutOfRange
	ErrNoSafeGasAtDepth           = profile.ErrNoSafeGasAtDepth
	ErrScheduleConvergenceFailure = profile.ErrScheduleConvergenceFailure
	ErrSurfaceIntervalTooShort    = profile.ErrSurfaceIntervalTooShort
	ErrTooManyDives               = profile.ErrTooManyDives
	ErrPressureGroupTooHigh       = profile.ErrPressureGroupTooHigh
)

// NewPlanID stamps a fresh identifier for a DiveProfile, correlating it
// with CLI/log output for downstream consumers.
func NewPlanID() string {
	return uuid.NewString()
}

// PlanSingleLevel computes a Bühlmann ZHL-16C/GF ascent schedule for a
// single constant-depth bottom dive.
func PlanSingleLevel(params SingleLevelParameters) (DiveProfile, error) {
	return buhlmann.PlanSingleLevel(params)
}

// PlanMultiLevel computes a Bühlmann ZHL-16C/GF ascent schedule for a
// multi-level dive, selecting decompression gases from the supplied
// inventory as the ascent progresses.
func PlanMultiLevel(params MultiLevelParameters) (DiveProfile, error) {
	return buhlmann.PlanMultiLevel(params)
}

// PlanVPMB computes a simplified VPM-B ascent schedule for a single
// constant-depth bottom dive.
func PlanVPMB(params SingleLevelParameters) (DiveProfile, error) {
	return vpmb.Plan(params)
}

// PlanNavy looks up a US Navy dive table schedule for a single
// constant-depth air dive.
func PlanNavy(depthM, bottomTime float64, gas gasmix.GasMix) (DiveProfile, error) {
	return navy.Plan(depthM, bottomTime, gas)
}

// ComputeNDL computes the no-decompression limit for a constant-depth
// dive on the given gas and gradient factors.
func ComputeNDL(depthM float64, gas SingleLevelParameters) (float64, error) {
	return buhlmann.ComputeNDL(depthM, gas)
}

// AnalyzeAtDepth reports per-compartment saturation, margin, ceiling and
// status for a finished profile's final tissue state at the given depth.
func AnalyzeAtDepth(p DiveProfile, depthM, gfHigh float64) (analysis.Report, error) {
	return analysis.AtDepth(p, depthM, gfHigh)
}

// ResidualAfterInterval advances a finished profile's final tissue state
// through a surface interval and reports the residual loading.
func ResidualAfterInterval(p DiveProfile, intervalMin float64) (repetitive.Residual, error) {
	return repetitive.ResidualAfterInterval(p, intervalMin)
}

// PressureGroup classifies a finished profile's final tissue state into
// a US Navy style pressure group letter.
func PressureGroup(p DiveProfile) (string, error) {
	return repetitive.PressureGroup(p)
}

// Compare runs several planner models over identical parameters and
// reports their differences.
func Compare(params SingleLevelParameters, models []string) (compare.Report, error) {
	return compare.Run(params, models)
}
