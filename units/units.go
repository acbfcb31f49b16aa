// Package units converts between depth and pressure and provides the small
// set of unit-formatting helpers the planners and their callers share.
package units

import "math"

const (
	// SurfacePressure is atmospheric pressure at sea level in bar.
	SurfacePressure float64 = 1.01325
	// PressurePerMetre is the pressure increase in bar per metre of sea water.
	PressurePerMetre float64 = 0.09985
	// WaterVapourPressure is the partial pressure of water vapour in the
	// lungs at body temperature, in bar.
	WaterVapourPressure float64 = 0.0627

	metresToFeet = 3.28084
	litresToCuFt = 0.0353147
	barToPSI     = 14.5038
)

// EqualFloat64 reports whether a and b are within a small tolerance of each
// other, used throughout the engine to avoid flaky float comparisons.
func EqualFloat64(a, b float64) bool {
	const threshold = 1e-9
	return math.Abs(a-b) <= threshold
}

// DepthToPressure converts a depth in metres of sea water to an absolute
// pressure in bar.
func DepthToPressure(depthM float64) float64 {
	return SurfacePressure + depthM*PressurePerMetre
}

// PressureToDepth is the inverse of DepthToPressure. Negative results are
// clamped to zero since depth cannot be negative.
func PressureToDepth(pressureBar float64) float64 {
	d := (pressureBar - SurfacePressure) / PressurePerMetre
	if d < 0 {
		return 0
	}
	return d
}

// DescOrAsc indicates the direction of travel between two depths: 1 for
// descending, -1 for ascending, 0 when the depths are equal.
func DescOrAsc(fromM, toM float64) float64 {
	if EqualFloat64(fromM, toM) {
		return 0.0
	} else if fromM < toM {
		return 1.0
	}
	return -1.0
}

// RoundToStopIncrement rounds a depth up to the nearest multiple of
// increment metres.
func RoundToStopIncrement(depthM, increment float64) float64 {
	if increment <= 0 {
		return depthM
	}
	return math.Ceil(depthM/increment) * increment
}

func MetresToFeet(m float64) float64 { return m * metresToFeet }
func FeetToMetres(ft float64) float64 { return ft / metresToFeet }

func LitresToCubicFeet(l float64) float64 { return l * litresToCuFt }
func CubicFeetToLitres(cf float64) float64 { return cf / litresToCuFt }

func BarToPSI(bar float64) float64 { return bar * barToPSI }
func PSIToBar(psi float64) float64 { return psi / barToPSI }
