// Package gf implements the gradient-factor engine: ceiling computation,
// tolerated pressure, the controlling compartment, and supersaturation,
// all built on top of the tissue model's blended M-value coefficients.
package gf

import (
	"math"

	"github.com/m5lapp/divengine/tissue"
	"github.com/m5lapp/divengine/units"
)

// MValue returns the M-value, the tissue inert-gas pressure limit, for a
// compartment with blended M-value coefficients (a, b) at ambient pressure
// P: M(P) = P/b - a/b.
func MValue(ambientBar, a, b float64) float64 {
	return ambientBar/b - a/b
}

// ToleratedPressure returns the ambient pressure a compartment can
// tolerate given its current inert gas loading Pt: P_tol = (Pt - a) * b.
func ToleratedPressure(tissuePressure, a, b float64) float64 {
	return (tissuePressure - a) * b
}

// CurrentGF linearly interpolates between gfLow at firstStopDepthM and
// gfHigh at the surface. When firstStopDepthM is 0, gfHigh applies
// everywhere.
func CurrentGF(depthM, firstStopDepthM, gfLow, gfHigh float64) float64 {
	if firstStopDepthM <= 0 {
		return gfHigh
	}
	frac := depthM / firstStopDepthM
	if frac > 1 {
		frac = 1
	}
	if frac < 0 {
		frac = 0
	}
	return gfHigh + (gfLow-gfHigh)*frac
}

// Ceiling computes the shallowest depth the diver may ascend to, blending
// the tolerated pressure with the surface using gfHigh, per the observed
// (and intentionally preserved) behavior of anchoring the gradient factor
// at gfHigh regardless of current depth. GF_low is not an input here, and
// the planners' stop-discovery loop does not use it either.
func Ceiling(c *tissue.Compartments, gfHigh float64) float64 {
	controlling := -math.MaxFloat64
	for i := 0; i < tissue.Count; i++ {
		a, b := c.CombinedAB(i)
		pTol := ToleratedPressure(c.TotalInert(i), a, b)
		if pTol > controlling {
			controlling = pTol
		}
	}

	pAdj := units.SurfacePressure + (controlling-units.SurfacePressure)*(gfHigh/100.0)
	d := units.PressureToDepth(pAdj)
	if d < 0 {
		return 0
	}
	return d
}

// ControllingTissue returns the index (0-based) of the compartment with
// the greatest ceiling depth, i.e. the tissue currently limiting the
// ascent.
func ControllingTissue(c *tissue.Compartments, gfHigh float64) int {
	best := -1
	bestCeiling := -math.MaxFloat64
	for i := 0; i < tissue.Count; i++ {
		a, b := c.CombinedAB(i)
		pTol := ToleratedPressure(c.TotalInert(i), a, b)
		pAdj := units.SurfacePressure + (pTol-units.SurfacePressure)*(gfHigh/100.0)
		ceil := units.PressureToDepth(pAdj)
		if ceil > bestCeiling {
			bestCeiling = ceil
			best = i
		}
	}
	return best
}

// IsAscentSafe reports whether the controlling compartment's ceiling is at
// or shallower than targetDepthM.
func IsAscentSafe(c *tissue.Compartments, targetDepthM, gfHigh float64) bool {
	return Ceiling(c, gfHigh) <= targetDepthM
}

// Supersaturation returns total inert gas pressure as a percentage of the
// compartment's M-value at the given depth.
func Supersaturation(c *tissue.Compartments, i int, depthM float64) float64 {
	ambient := units.DepthToPressure(depthM)
	a, b := c.CombinedAB(i)
	m := MValue(ambient, a, b)
	if m <= 0 {
		return 0
	}
	return c.TotalInert(i) / m * 100.0
}
