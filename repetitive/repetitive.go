// Package repetitive implements the repetitive-dive planner: surface
// interval off-gassing, pressure-group classification, no-fly time, and
// plan validation. Per the engine's non-goals, a subsequent dive is
// always planned from fresh tissues; residual state computed here is
// used only for pressure-group and no-fly reporting, never to seed a
// planner call.
package repetitive

import (
	"errors"
	"fmt"

	"github.com/m5lapp/divengine/gasmix"
	"github.com/m5lapp/divengine/gf"
	"github.com/m5lapp/divengine/profile"
	"github.com/m5lapp/divengine/tissue"
	"github.com/m5lapp/divengine/units"
)

// ErrNoTissueState is returned when a profile carries no final tissue
// vector to off-gas.
var ErrNoTissueState = errors.New("repetitive: profile has no final tissue state")

const (
	// NoFlyEquilibriumToleranceBar is how close to surface equilibrium a
	// compartment's N2 pressure must be to count as cleared for no-fly
	// purposes.
	NoFlyEquilibriumToleranceBar = 0.05

	// NoFlyCapMinutes bounds the no-fly simulation to 24 hours.
	NoFlyCapMinutes = 24 * 60

	// DefaultMinSurfaceInterval is the minimum surface interval the
	// validator accepts between repetitive dives.
	DefaultMinSurfaceInterval = 10.0

	// DefaultMaxDivesPerDay is the default day-rule dive count limit.
	DefaultMaxDivesPerDay = 4

	// DefaultGroupThreshold is the default maximum acceptable carryover
	// pressure group letter.
	DefaultGroupThreshold = "L"
)

// Residual is the result of advancing a profile's final tissue state
// through a surface interval.
type Residual struct {
	Tissue       *tissue.Compartments
	NoFlyTimeMin float64
}

// ResidualAfterInterval off-gases p's final tissue state at the surface on
// air for intervalMin minutes and reports the residual loading and
// no-fly time from that new state.
func ResidualAfterInterval(p profile.DiveProfile, intervalMin float64) (Residual, error) {
	if p.FinalTissue == nil {
		return Residual{}, ErrNoTissueState
	}
	c := p.FinalTissue.Clone()
	c.UpdateConstantDepth(0, gasmix.Air(), intervalMin)
	return Residual{Tissue: c, NoFlyTimeMin: NoFlyTime(c)}, nil
}

// NoFlyTime simulates further off-gassing at the surface until every
// compartment's N2 pressure is within NoFlyEquilibriumToleranceBar of
// surface equilibrium, capped at NoFlyCapMinutes.
func NoFlyTime(c *tissue.Compartments) float64 {
	scratch := c.Clone()
	equilibrium := gasmix.InspiredPressure(units.SurfacePressure, gasmix.Air().N2)

	for minute := 0.0; minute <= NoFlyCapMinutes; minute++ {
		cleared := true
		for i := 0; i < tissue.Count; i++ {
			if scratch.State[i].N2Pressure-equilibrium > NoFlyEquilibriumToleranceBar {
				cleared = false
				break
			}
		}
		if cleared {
			return minute
		}
		scratch.UpdateConstantDepth(0, gasmix.Air(), 1.0)
	}
	return NoFlyCapMinutes
}

// PressureGroup classifies p's final tissue state into a US Navy style
// pressure-group letter.
func PressureGroup(p profile.DiveProfile) (string, error) {
	if p.FinalTissue == nil {
		return "", ErrNoTissueState
	}
	return pressureGroupLetter(p.FinalTissue), nil
}

// pressureGroupLetter buckets the worst-case N2-pressure-to-M-value ratio
// across all compartments into letters A..Z by linear quantile thresholds
// over [0, 1]. The exact thresholds are not standardized by any published
// source and are treated here as a documented, non-normative choice (see
// the project's design notes).
func pressureGroupLetter(c *tissue.Compartments) string {
	worst := 0.0
	for i := 0; i < tissue.Count; i++ {
		mValue := gf.MValue(units.SurfacePressure, c.Coeffs[i].N2A, c.Coeffs[i].N2B)
		if mValue <= 0 {
			continue
		}
		ratio := c.State[i].N2Pressure / mValue
		if ratio > worst {
			worst = ratio
		}
	}
	if worst > 1 {
		worst = 1
	}
	if worst < 0 {
		worst = 0
	}

	index := int(worst * 26.0)
	if index > 25 {
		index = 25
	}
	return string(rune('A' + index))
}

// ValidateRepetitiveDive checks the structural rules governing a
// repetitive dive: a minimum surface interval, a maximum dive count per
// day, and a maximum acceptable carryover pressure group.
func ValidateRepetitiveDive(surfaceIntervalMin float64, diveCountToday int, carryoverGroup string, minSurfaceInterval float64, maxDivesPerDay int, groupThreshold string) error {
	if surfaceIntervalMin < minSurfaceInterval {
		return fmt.Errorf("%w: %.1f min is below the minimum of %.1f min", profile.ErrSurfaceIntervalTooShort, surfaceIntervalMin, minSurfaceInterval)
	}
	if diveCountToday > maxDivesPerDay {
		return fmt.Errorf("%w: %d dives exceeds the daily limit of %d", profile.ErrTooManyDives, diveCountToday, maxDivesPerDay)
	}
	if carryoverGroup > groupThreshold {
		return fmt.Errorf("%w: carryover group %s exceeds threshold %s", profile.ErrPressureGroupTooHigh, carryoverGroup, groupThreshold)
	}
	return nil
}
