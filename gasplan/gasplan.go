// Package gasplan is an adapter over a finished DiveProfile that reports
// gas-requirement figures for a given tank configuration: rule-of-thirds
// gas planning, minimum emergency gas, and spare gas remaining. It is a
// read-only report and contributes no decompression semantics of its own.
package gasplan

import (
	"github.com/m5lapp/divengine/profile"
	"github.com/m5lapp/divengine/units"
)

// Common dive-factor multipliers, used to scale SAC rate for workload or
// stress level.
const (
	DiveFactorEasy          = 1.5
	DiveFactorModerate      = 1.8
	DiveFactorTough         = 2.0
	DiveFactorStressful     = 2.5
	DiveFactorSeriousStress = 3.0
)

const buddyMultiplier = 2.0
const emergencyRateMultiplier = 1.5
const minGasPrepMinutes = 1.0
const minGasSafetyStopMinutes = 3.0

// TankConfig describes the equipment and breathing-rate assumptions a gas
// plan is computed against.
type TankConfig struct {
	SACRate         float64 // litres/min at the surface
	TankCount       int
	TankCapacity    float64 // litres water capacity per tank
	WorkingPressure float64 // bar
	DiveFactor      float64
	AscentRate      float64 // m/min, used for MinGas's emergency ascent estimate
}

// GasAvailable returns the total usable gas volume across all tanks, in
// litres at surface-equivalent volume.
func (t TankConfig) GasAvailable() float64 {
	return float64(t.TankCount) * t.TankCapacity * t.WorkingPressure
}

// GasRequired applies the rule of thirds (one third out, one third back,
// one third in reserve) to the gas a profile's segments and stops would
// consume at t's SAC rate and dive factor.
func GasRequired(p profile.DiveProfile, t TankConfig) float64 {
	return baseGasRequired(p, t) * 1.5
}

func baseGasRequired(p profile.DiveProfile, t TankConfig) float64 {
	total := 0.0
	for _, s := range p.Segments {
		total += units.DepthToPressure(s.DepthM) * t.SACRate * t.DiveFactor * s.Duration
	}
	for _, s := range p.Stops {
		total += units.DepthToPressure(s.DepthM) * t.SACRate * t.DiveFactor * s.Duration
	}
	return total
}

// MinGas returns the gas required to get two divers (or a solo diver, who
// must still carry double from independent sources) to the surface in an
// emergency from the profile's deepest point, including a brief
// at-depth pause and a three-minute safety stop.
func MinGas(p profile.DiveProfile, t TankConfig) float64 {
	maxDepth := p.MaxDepthM
	maxPressure := units.DepthToPressure(maxDepth)
	avgPressure := units.DepthToPressure(maxDepth / 2.0)
	stopPressure := units.DepthToPressure(profile.SafetyStopDepthM)

	ascentRate := t.AscentRate
	if ascentRate <= 0 {
		ascentRate = 9.0
	}
	ascentTime := maxDepth / ascentRate

	elevatedSACRate := t.SACRate * t.DiveFactor * buddyMultiplier * emergencyRateMultiplier

	preparationGas := minGasPrepMinutes * maxPressure * elevatedSACRate
	ascentGas := ascentTime * avgPressure * elevatedSACRate
	stopGas := minGasSafetyStopMinutes * stopPressure * elevatedSACRate

	return preparationGas + ascentGas + stopGas
}

// WorkingGas is the gas available across all tanks once minimum gas has
// been reserved from each.
func WorkingGas(p profile.DiveProfile, t TankConfig) float64 {
	return t.GasAvailable() - MinGas(p, t)*float64(t.TankCount)
}

// GasSpare is the gas remaining across all tanks at the end of the
// planned dive once rule-of-thirds requirements are met.
func GasSpare(p profile.DiveProfile, t TankConfig) float64 {
	return WorkingGas(p, t) - GasRequired(p, t)
}
