// Package vpmb implements a simplified, bubble-oriented VPM-B planner: it
// reuses the shared tissue model and stop-discovery loop but biases toward
// deeper, shorter-then-longer stops via stricter effective gradient
// factors, a deepened first stop, and a depth-dependent duration
// multiplier.
package vpmb

import (
	"math"

	"github.com/google/uuid"

	"github.com/m5lapp/divengine/gasmix"
	"github.com/m5lapp/divengine/gf"
	"github.com/m5lapp/divengine/internal/schedule"
	"github.com/m5lapp/divengine/profile"
	"github.com/m5lapp/divengine/tissue"
)

// AscentRate is VPM-B's fixed ascent rate.
const AscentRate = 9.0

const (
	gfLowFloor     = 20.0
	gfHighFloor    = 70.0
	firstStopBias  = 3.0
	deepStopScale  = 1.3
	shallowScale   = 0.85
	deepShallowCut = 12.0
)

// Plan computes a VPM-B ascent schedule for a single constant-depth bottom
// dive.
func Plan(params profile.SingleLevelParameters) (profile.DiveProfile, error) {
	if err := params.Gas.Validate(); err != nil {
		return profile.DiveProfile{}, err
	}
	seg := profile.DiveSegment{DepthM: params.DepthM, Duration: params.BottomTime, Gas: params.Gas, Tag: profile.TagBottom}
	if err := seg.Validate(); err != nil {
		return profile.DiveProfile{}, err
	}

	gfLowEff := math.Max(gfLowFloor, params.GFLow-10)
	gfHighEff := math.Max(gfHighFloor, params.GFHigh-5)

	c := tissue.Init(params.Gas)
	c.UpdateConstantDepth(params.DepthM, params.Gas, params.BottomTime)
	runtime := params.BottomTime

	naturalFirstStop := math.Ceil(gf.Ceiling(c, gfHighEff)/3.0) * 3.0

	warnings := []profile.Warning{{
		Level:   gasmix.SeverityInfo,
		Message: "VPM-B model: deep-stop-biased schedule",
		Details: "stops are deepened and weighted toward depth relative to a dissolved-gas model",
	}}

	currentDepth := params.DepthM
	if naturalFirstStop > 0 {
		deepenedFirstStop := naturalFirstStop + firstStopBias
		if deepenedFirstStop > params.DepthM-3 {
			deepenedFirstStop = params.DepthM - 3
		}
		if deepenedFirstStop > 0 && deepenedFirstStop < currentDepth {
			c.UpdateChangingDepth(currentDepth, deepenedFirstStop, params.Gas, (currentDepth-deepenedFirstStop)/AscentRate)
			runtime += (currentDepth - deepenedFirstStop) / AscentRate
			currentDepth = deepenedFirstStop
		}

		warnings = append(warnings, profile.Warning{
			Level:   gasmix.SeverityWarning,
			Message: "Decompression required",
			Details: "first stop deepened per VPM-B deep-stop bias",
		})
	}

	durationScale := func(depthM float64) float64 {
		if depthM >= deepShallowCut {
			return deepStopScale
		}
		return shallowScale
	}

	cfg := schedule.Config{
		AscentRate:        AscentRate,
		GFHigh:            gfHighEff,
		StopIncrement:     profile.StopDepthIncrement,
		DurationScale:     durationScale,
		InsertSafetyStop:  true,
		SafetyStopDepthM:  profile.SafetyStopDepthM,
		SafetyStopMinutes: 3.0,
		MaxIterations:     profile.MaxStopDiscoveryIterations,
	}
	_ = gfLowEff // not used: as in Bühlmann, the ceiling and stop gate take only the effective GF_high.

	stops, _, findings, totalRuntime := schedule.Run(c, currentDepth, params.Gas, runtime, cfg)

	for _, f := range findings {
		warnings = append(warnings, profile.Warning{Level: f.Level, Message: f.Message, Details: f.Details})
	}

	decoStops := make([]profile.DecompressionStop, 0, len(stops))
	total := 0.0
	for _, s := range stops {
		decoStops = append(decoStops, profile.DecompressionStop{
			DepthM:     s.DepthM,
			Duration:   s.Duration,
			RuntimeMin: s.RuntimeMin,
			Gas:        s.Gas,
		})
		total += s.Duration
	}

	return profile.DiveProfile{
		PlanID:        uuid.NewString(),
		Model:         "vpmb",
		Stops:         decoStops,
		Segments:      []profile.DiveSegment{seg},
		Warnings:      warnings,
		TotalDecoTime: total,
		TotalDiveTime: totalRuntime,
		NDL:           0,
		MaxDepthM:     params.DepthM,
		AvgDepthM:     params.DepthM,
		FinalTissue:   c,
	}, nil
}
