// Package buhlmann implements the Bühlmann ZHL-16C/GF planner: single- and
// multi-level schedule computation plus NDL, reusing the shared tissue
// model and stop-discovery loop.
package buhlmann

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/m5lapp/divengine/gasmix"
	"github.com/m5lapp/divengine/gasselect"
	"github.com/m5lapp/divengine/gf"
	"github.com/m5lapp/divengine/internal/schedule"
	"github.com/m5lapp/divengine/profile"
	"github.com/m5lapp/divengine/tissue"
)

// SingleLevelAscentRate is the standard ascent rate used for single-level
// dives.
const SingleLevelAscentRate = 9.0

// NDLMaxMinutes caps the simulated no-decompression limit.
const NDLMaxMinutes = 300

// PlanSingleLevel computes a schedule for a single constant-depth bottom
// dive.
func PlanSingleLevel(params profile.SingleLevelParameters) (profile.DiveProfile, error) {
	if err := params.Gas.Validate(); err != nil {
		return profile.DiveProfile{}, err
	}
	seg := profile.DiveSegment{DepthM: params.DepthM, Duration: params.BottomTime, Gas: params.Gas, Tag: profile.TagBottom}
	if err := seg.Validate(); err != nil {
		return profile.DiveProfile{}, err
	}

	var warnings []profile.Warning
	warnings = append(warnings, validateBottomSegment(params.DepthM, params.BottomTime, params.Gas)...)

	c := tissue.Init(params.Gas)
	c.UpdateConstantDepth(params.DepthM, params.Gas, params.BottomTime)

	runtime := params.BottomTime
	stops, _, findings, runtime := runDiscovery(c, params.DepthM, params.Gas, runtime, params.GFLow, params.GFHigh, SingleLevelAscentRate, nil)
	warnings = append(warnings, translateFindings(findings)...)

	firstStop := firstStopDepth(stops)
	if firstStop > 0 {
		warnings = append(warnings, profile.Warning{
			Level:   gasmix.SeverityWarning,
			Message: "Decompression required",
			Details: fmt.Sprintf("first stop at %.0fm", firstStop),
		})
	}

	ndl, err := ComputeNDL(params.DepthM, params)
	if err != nil {
		return profile.DiveProfile{}, err
	}

	decoStops := toDecompressionStops(stops, params.Gas)
	totalDeco := sumDuration(decoStops)

	return profile.DiveProfile{
		PlanID:        uuid.NewString(),
		Model:         "buhlmann-zhl16c-gf",
		Stops:         decoStops,
		Segments:      []profile.DiveSegment{seg},
		Warnings:      warnings,
		TotalDecoTime: totalDeco,
		TotalDiveTime: runtime,
		NDL:           ndl,
		MaxDepthM:     params.DepthM,
		AvgDepthM:     params.DepthM,
		FinalTissue:   c,
	}, nil
}

// PlanMultiLevel computes a schedule for a dive made of 1..5 bottom legs,
// selecting decompression gas from the supplied inventory at each stop
// boundary.
func PlanMultiLevel(params profile.MultiLevelParameters) (profile.DiveProfile, error) {
	if len(params.Segments) == 0 || len(params.Segments) > profile.MaxBottomSegments {
		return profile.DiveProfile{}, profile.ErrSegmentOutOfRange
	}
	if err := params.Inventory.Validate(); err != nil {
		return profile.DiveProfile{}, err
	}
	for _, seg := range params.Segments {
		if err := seg.Validate(); err != nil {
			return profile.DiveProfile{}, err
		}
	}

	descentRate := params.DescentRate
	ascentRate := params.AscentRate

	var warnings []profile.Warning
	var segments []profile.DiveSegment
	var allStops []schedule.Stop
	var allSwitches []schedule.Switch

	c := tissue.Init(params.Inventory.Bottom)
	currentDepth := 0.0
	currentGas := params.Inventory.Bottom
	runtime := 0.0
	maxDepth := 0.0
	weightedDepth := 0.0

	for _, seg := range params.Segments {
		warnings = append(warnings, validateBottomSegment(seg.DepthM, seg.Duration, seg.Gas)...)

		if seg.DepthM != currentDepth {
			tag := profile.TagDescent
			if seg.DepthM < currentDepth {
				tag = profile.TagAscent
			}
			t := math.Abs(seg.DepthM-currentDepth) / pick(tag == profile.TagDescent, descentRate, ascentRate)
			c.UpdateChangingDepth(currentDepth, seg.DepthM, seg.Gas, t)
			runtime += t
			segments = append(segments, profile.DiveSegment{DepthM: seg.DepthM, Duration: t, Gas: seg.Gas, Tag: tag})
			currentDepth = seg.DepthM
			currentGas = seg.Gas
		}

		c.UpdateConstantDepth(seg.DepthM, seg.Gas, seg.Duration)
		runtime += seg.Duration
		weightedDepth += seg.DepthM * seg.Duration
		segments = append(segments, profile.DiveSegment{DepthM: seg.DepthM, Duration: seg.Duration, Gas: seg.Gas, Tag: profile.TagBottom})
		if seg.DepthM > maxDepth {
			maxDepth = seg.DepthM
		}
		currentGas = seg.Gas
	}

	selector := func(depthM, remainingEstimateMin float64, current gasmix.GasMix) (gasmix.GasMix, bool, string) {
		maxPPO2 := 1.6
		candidate := gasselect.Best(depthM, params.Inventory, maxPPO2)
		if candidate == current {
			return candidate, false, ""
		}
		if gasselect.IsSwitchWorthwhile(current, candidate, depthM, remainingEstimateMin) {
			return candidate, true, string(profile.SwitchOptimal)
		}
		return candidate, false, ""
	}

	stops, switches, findings, totalRuntime := runDiscovery(c, currentDepth, currentGas, runtime, params.GFLow, params.GFHigh, ascentRate, selector)
	allStops = append(allStops, stops...)
	allSwitches = append(allSwitches, switches...)
	warnings = append(warnings, translateFindings(findings)...)

	firstStop := firstStopDepth(allStops)
	if firstStop > 0 {
		warnings = append(warnings, profile.Warning{
			Level:   gasmix.SeverityWarning,
			Message: "Decompression required",
			Details: fmt.Sprintf("first stop at %.0fm", firstStop),
		})
	}

	decoStops := toDecompressionStops(allStops, currentGas)
	totalDeco := sumDuration(decoStops)

	avgDepth := 0.0
	if totalRuntime > 0 {
		avgDepth = weightedDepth / totalRuntime
	}

	return profile.DiveProfile{
		PlanID:        uuid.NewString(),
		Model:         "buhlmann-zhl16c-gf",
		Stops:         decoStops,
		Switches:      toGasSwitches(allSwitches),
		Segments:      segments,
		Warnings:      warnings,
		TotalDecoTime: totalDeco,
		TotalDiveTime: totalRuntime,
		NDL:           0,
		MaxDepthM:     maxDepth,
		AvgDepthM:     avgDepth,
		FinalTissue:   c,
	}, nil
}

// ComputeNDL simulates a fresh, separate dive at depthM on params.Gas,
// advancing in 1-minute increments until the ascent ceiling makes a direct
// surfacing unsafe, and returns the last safe minute, capped at
// NDLMaxMinutes.
func ComputeNDL(depthM float64, params profile.SingleLevelParameters) (float64, error) {
	if err := params.Gas.Validate(); err != nil {
		return 0, err
	}

	c := tissue.Init(params.Gas)
	for minute := 0; minute <= NDLMaxMinutes; minute++ {
		if !gf.IsAscentSafe(c, 0, params.GFHigh) {
			return float64(minute - 1), nil
		}
		c.UpdateConstantDepth(depthM, params.Gas, 1.0)
	}
	return NDLMaxMinutes, nil
}

func runDiscovery(c *tissue.Compartments, startDepth float64, startGas gasmix.GasMix, startRuntime, gfLow, gfHigh, ascentRate float64, selector schedule.GasSelector) ([]schedule.Stop, []schedule.Switch, []schedule.Finding, float64) {
	cfg := schedule.Config{
		AscentRate:        ascentRate,
		GFHigh:            gfHigh,
		StopIncrement:     profile.StopDepthIncrement,
		InsertSafetyStop:  true,
		SafetyStopDepthM:  profile.SafetyStopDepthM,
		SafetyStopMinutes: 3.0,
		MaxIterations:     profile.MaxStopDiscoveryIterations,
		Selector:          selector,
	}
	_ = gfLow // GF_low is not used: both the ceiling blend and the gf.IsAscentSafe stop gate take GF_high only.
	return schedule.Run(c, startDepth, startGas, startRuntime, cfg)
}

func validateBottomSegment(depthM, duration float64, gas gasmix.GasMix) []profile.Warning {
	var warnings []profile.Warning

	if depthM > 40 {
		warnings = append(warnings, profile.Warning{
			Level:   gasmix.SeverityWarning,
			Message: "bottom depth exceeds 40m",
			Details: fmt.Sprintf("depth %.1fm", depthM),
		})
	}
	if duration < 1 || duration > 200 {
		warnings = append(warnings, profile.Warning{
			Level:   gasmix.SeverityWarning,
			Message: "bottom time out of typical range",
			Details: fmt.Sprintf("duration %.1fmin", duration),
		})
	}

	validation := gasmix.ValidateAtDepth(gas, depthM, false)
	for _, w := range validation.Warnings {
		warnings = append(warnings, profile.Warning{Level: w.Level, Message: w.Message, Details: w.Details})
	}

	return warnings
}

func firstStopDepth(stops []schedule.Stop) float64 {
	max := 0.0
	for _, s := range stops {
		if s.DepthM > max {
			max = s.DepthM
		}
	}
	return max
}

func toDecompressionStops(stops []schedule.Stop, startGas gasmix.GasMix) []profile.DecompressionStop {
	out := make([]profile.DecompressionStop, 0, len(stops))
	prevGas := startGas
	for _, s := range stops {
		stop := profile.DecompressionStop{
			DepthM:     s.DepthM,
			Duration:   s.Duration,
			RuntimeMin: s.RuntimeMin,
			Gas:        s.Gas,
		}
		if s.SwitchedTo != nil {
			stop.GasSwitch = &profile.GasSwitch{
				DepthM:  s.DepthM,
				FromGas: prevGas,
				ToGas:   *s.SwitchedTo,
				Reason:  profile.GasSwitchReason(s.SwitchReason),
			}
		}
		prevGas = s.Gas
		out = append(out, stop)
	}
	return out
}

func toGasSwitches(switches []schedule.Switch) []profile.GasSwitch {
	out := make([]profile.GasSwitch, 0, len(switches))
	for _, sw := range switches {
		out = append(out, profile.GasSwitch{
			DepthM:  sw.DepthM,
			FromGas: sw.From,
			ToGas:   sw.To,
			Reason:  profile.GasSwitchReason(sw.Reason),
		})
	}
	return out
}

func sumDuration(stops []profile.DecompressionStop) float64 {
	total := 0.0
	for _, s := range stops {
		total += s.Duration
	}
	return total
}

func translateFindings(findings []schedule.Finding) []profile.Warning {
	out := make([]profile.Warning, 0, len(findings))
	for _, f := range findings {
		out = append(out, profile.Warning{Level: f.Level, Message: f.Message, Details: f.Details})
	}
	return out
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
