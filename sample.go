package divengine

import "math"

// ProfileSample is one time/depth waypoint of a resampled dive profile,
// suitable for charting.
type ProfileSample struct {
	TimeMin float64
	DepthM  float64
}

const defaultTransitionRateMPerMin = 9.0

// SampleProfile resamples a finished profile's bottom segments and
// decompression stops at a fixed time resolution, interpolating depth
// linearly across the transitions between them at descentRate/ascentRate.
// A resolutionSec of zero or less falls back to one sample every 30
// seconds; a descentRate or ascentRate of zero or less falls back to the
// planners' default of 9m/min.
func SampleProfile(p DiveProfile, resolutionSec, descentRate, ascentRate float64) []ProfileSample {
	if resolutionSec <= 0 {
		resolutionSec = 30
	}
	if descentRate <= 0 {
		descentRate = defaultTransitionRateMPerMin
	}
	if ascentRate <= 0 {
		ascentRate = defaultTransitionRateMPerMin
	}
	resolutionMin := resolutionSec / 60.0

	waypoints := make([]DiveSegment, 0, len(p.Segments)+len(p.Stops))
	waypoints = append(waypoints, p.Segments...)
	for _, s := range p.Stops {
		waypoints = append(waypoints, DiveSegment{DepthM: s.DepthM, Duration: s.Duration, Tag: TagDeco})
	}

	var samples []ProfileSample
	currentDepth := 0.0
	currentTime := 0.0

	for _, wp := range waypoints {
		if wp.DepthM != currentDepth {
			rate := descentRate
			if wp.DepthM < currentDepth {
				rate = ascentRate
			}
			transitionTime := math.Abs(wp.DepthM-currentDepth) / rate
			currentTime, currentDepth = walkTransition(&samples, currentTime, transitionTime, currentDepth, wp.DepthM, resolutionMin)
		}
		currentTime = walkConstant(&samples, currentTime, wp.Duration, currentDepth, resolutionMin)
	}

	samples = append(samples, ProfileSample{TimeMin: currentTime, DepthM: currentDepth})
	return samples
}

// walkConstant appends samples at a fixed depth from startTime for
// duration minutes, at the given resolution, and returns the new elapsed
// time.
func walkConstant(samples *[]ProfileSample, startTime, duration, depth, resolutionMin float64) float64 {
	for t := 0.0; t < duration; t += resolutionMin {
		*samples = append(*samples, ProfileSample{TimeMin: startTime + t, DepthM: depth})
	}
	return startTime + duration
}

// walkTransition appends samples linearly interpolated between fromDepth
// and toDepth over transitionTime minutes, and returns the new elapsed
// time and depth.
func walkTransition(samples *[]ProfileSample, startTime, transitionTime, fromDepth, toDepth, resolutionMin float64) (float64, float64) {
	if transitionTime <= 0 {
		return startTime, toDepth
	}
	for t := 0.0; t < transitionTime; t += resolutionMin {
		frac := t / transitionTime
		depth := fromDepth + (toDepth-fromDepth)*frac
		*samples = append(*samples, ProfileSample{TimeMin: startTime + t, DepthM: depth})
	}
	return startTime + transitionTime, toDepth
}
