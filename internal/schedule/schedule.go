// Package schedule implements the stop-discovery loop shared by the
// Bühlmann and VPM-B planners: starting from the depth the caller passes
// (the bottom depth for Bühlmann, the deepened first stop for VPM-B),
// repeatedly attempt to ascend 3m, staying in 1-minute increments wherever
// the ascent is not yet safe, until the diver reaches the surface or the
// iteration cap is hit.
package schedule

import (
	"fmt"

	"github.com/m5lapp/divengine/gasmix"
	"github.com/m5lapp/divengine/gf"
	"github.com/m5lapp/divengine/tissue"
)

// Stop mirrors divengine.DecompressionStop without importing the root
// package, avoiding an import cycle; planner packages translate Stop into
// divengine.DecompressionStop.
type Stop struct {
	DepthM       float64
	Duration     float64
	RuntimeMin   float64
	Gas          gasmix.GasMix
	SwitchedTo   *gasmix.GasMix
	SwitchReason string
}

// Switch mirrors divengine.GasSwitch.
type Switch struct {
	DepthM float64
	From   gasmix.GasMix
	To     gasmix.GasMix
	Reason string
}

// Finding mirrors divengine.Warning.
type Finding struct {
	Level   gasmix.Severity
	Message string
	Details string
}

// GasSelector is consulted at every stop boundary during the discovery
// loop to decide whether a better decompression gas is available and
// worth switching to. Implementations that don't support gas switching
// (single-level Bühlmann, VPM-B) can pass nil.
type GasSelector func(depthM, remainingEstimateMin float64, current gasmix.GasMix) (candidate gasmix.GasMix, shouldSwitch bool, reason string)

// Config parameterizes one run of the discovery loop.
type Config struct {
	AscentRate float64
	GFHigh     float64

	// StopIncrement is the depth granularity of stops, normally 3m.
	StopIncrement float64

	// DurationScale multiplies the length of each 1-minute stay-in-place
	// increment at the given depth; VPM-B uses this to bias toward longer
	// deep stops. Nil means no scaling (factor 1.0).
	DurationScale func(depthM float64) float64

	// InsertSafetyStop, when true, inserts a SafetyStopMinutes stop at
	// SafetyStopDepthM the first time an ascent step reaches or would
	// cross that depth (a step from 6m is shortened to land on it).
	InsertSafetyStop  bool
	SafetyStopDepthM  float64
	SafetyStopMinutes float64

	// MaxIterations bounds the loop; exceeding it yields a danger Finding
	// instead of aborting.
	MaxIterations int

	Selector GasSelector
}

// Run executes the discovery loop starting at startDepthM on startGas,
// mutating c in place, and returns the resulting stops, gas switches, and
// any findings (including a convergence-failure danger finding if the
// iteration cap was hit).
func Run(c *tissue.Compartments, startDepthM float64, startGas gasmix.GasMix, startRuntimeMin float64, cfg Config) (stops []Stop, switches []Switch, findings []Finding, runtimeMin float64) {
	currentDepth := startDepthM
	currentGas := startGas
	runtime := startRuntimeMin
	safetyStopDone := false
	iterations := 0

	durationScale := func(depthM float64) float64 { return 1.0 }
	if cfg.DurationScale != nil {
		durationScale = cfg.DurationScale
	}

	appendOrExtendStop := func(depthM, duration float64, gas gasmix.GasMix) {
		if len(stops) > 0 {
			last := &stops[len(stops)-1]
			if last.DepthM == depthM && last.Gas == gas {
				last.Duration += duration
				last.RuntimeMin = runtime
				return
			}
		}
		stops = append(stops, Stop{DepthM: depthM, Duration: duration, RuntimeMin: runtime, Gas: gas})
	}

	for currentDepth > 0 {
		iterations++
		if iterations > cfg.MaxIterations {
			findings = append(findings, Finding{
				Level:   gasmix.SeverityDanger,
				Message: "schedule did not converge within the iteration cap",
				Details: fmt.Sprintf("stop-discovery loop exceeded %d iterations at depth %.1fm", cfg.MaxIterations, currentDepth),
			})
			break
		}

		nextDepth := currentDepth - cfg.StopIncrement
		if nextDepth < 0 {
			nextDepth = 0
		}

		// A 3m step that would cross the conventional safety-stop depth
		// (typically the final leg down from 6m or 8m to the surface)
		// is redirected to land exactly on SafetyStopDepthM so the
		// 3-minute stop can be inserted there, breaking the 3m grid once
		// to land exactly on it.
		if cfg.InsertSafetyStop && !safetyStopDone && currentDepth > cfg.SafetyStopDepthM && nextDepth < cfg.SafetyStopDepthM {
			nextDepth = cfg.SafetyStopDepthM
		}

		if gf.IsAscentSafe(c, nextDepth, cfg.GFHigh) {
			c.UpdateChangingDepth(currentDepth, nextDepth, currentGas, (currentDepth-nextDepth)/cfg.AscentRate)
			runtime += (currentDepth - nextDepth) / cfg.AscentRate

			if cfg.InsertSafetyStop && !safetyStopDone && nextDepth == cfg.SafetyStopDepthM {
				c.UpdateConstantDepth(nextDepth, currentGas, cfg.SafetyStopMinutes)
				runtime += cfg.SafetyStopMinutes
				appendOrExtendStop(nextDepth, cfg.SafetyStopMinutes, currentGas)
				safetyStopDone = true
				currentDepth = nextDepth

				// Surface directly after the safety stop rather than
				// resuming the 3m grid, which would otherwise land on a
				// non-multiple-of-3 depth. If off-gassing during the stop
				// was not enough to clear the ceiling, extend the stop in
				// 1-minute increments instead of forcing an unsafe ascent.
				for !gf.IsAscentSafe(c, 0, cfg.GFHigh) {
					iterations++
					if iterations > cfg.MaxIterations {
						findings = append(findings, Finding{
							Level:   gasmix.SeverityDanger,
							Message: "schedule did not converge within the iteration cap",
							Details: fmt.Sprintf("safety stop extension exceeded %d iterations", cfg.MaxIterations),
						})
						break
					}
					c.UpdateConstantDepth(currentDepth, currentGas, 1.0)
					runtime += 1.0
					appendOrExtendStop(currentDepth, 1.0, currentGas)
				}

				nextDepth = 0
				c.UpdateChangingDepth(currentDepth, nextDepth, currentGas, currentDepth/cfg.AscentRate)
				runtime += currentDepth / cfg.AscentRate
				currentDepth = nextDepth
				continue
			}

			currentDepth = nextDepth
			continue
		}

		if cfg.Selector != nil {
			remaining := estimateRemaining(c, currentDepth, currentGas, cfg)
			if candidate, should, reason := cfg.Selector(currentDepth, remaining, currentGas); should {
				switches = append(switches, Switch{DepthM: currentDepth, From: currentGas, To: candidate, Reason: reason})
				c.UpdateConstantDepth(currentDepth, candidate, 1.0)
				runtime += 1.0
				appendOrExtendStop(currentDepth, 1.0, candidate)
				stops[len(stops)-1].SwitchedTo = &candidate
				stops[len(stops)-1].SwitchReason = reason
				currentGas = candidate
				continue
			}
		}

		minutes := 1.0 * durationScale(currentDepth)
		c.UpdateConstantDepth(currentDepth, currentGas, minutes)
		runtime += minutes
		appendOrExtendStop(currentDepth, minutes, currentGas)
	}

	return stops, switches, findings, runtime
}

// estimateRemaining projects, on a scratch clone of c, how many more
// minutes the stop-and-ascend schedule to the surface takes on the current
// gas, counting both stop minutes and travel time between stops. It never
// mutates c and ignores gas switching and safety-stop insertion, since it
// only needs a rough figure for the Selector's worthwhile-to-switch
// decision.
func estimateRemaining(c *tissue.Compartments, depthM float64, gas gasmix.GasMix, cfg Config) float64 {
	scratch := c.Clone()
	depth := depthM
	minutes := 0.0

	for i := 0; i < cfg.MaxIterations; i++ {
		if depth <= 0 {
			break
		}
		next := depth - cfg.StopIncrement
		if next < 0 {
			next = 0
		}
		if gf.IsAscentSafe(scratch, next, cfg.GFHigh) {
			scratch.UpdateChangingDepth(depth, next, gas, (depth-next)/cfg.AscentRate)
			minutes += (depth - next) / cfg.AscentRate
			depth = next
			continue
		}
		scratch.UpdateConstantDepth(depth, gas, 1.0)
		minutes += 1.0
	}

	return minutes
}
