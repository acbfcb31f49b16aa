// Package tissue implements the 16-compartment Bühlmann ZHL-16C tissue
// loading model: per-compartment half-times and M-value coefficients for
// nitrogen and helium, and the Schreiner/Haldane update equations used to
// advance compartment pressures through constant-depth and changing-depth
// segments.
package tissue

import (
	"math"

	"github.com/m5lapp/divengine/gasmix"
	"github.com/m5lapp/divengine/units"
)

// Count is the number of tissue compartments in the ZHL-16C model.
const Count = 16

// Coefficients holds the immutable per-compartment constants for one
// compartment of the ZHL-16C model.
type Coefficients struct {
	N2HalfTime float64
	N2A        float64
	N2B        float64
	HeHalfTime float64
	HeA        float64
	HeB        float64
}

// ZHL16C is the literal ZHL-16C coefficient table: N2 half-times
// 4.0..635.0 min, He half-times 1.51..240.03 min, and their corresponding
// a/b M-value coefficients.
var ZHL16C = [Count]Coefficients{
	{N2HalfTime: 4.0, N2A: 1.2599, N2B: 0.5240, HeHalfTime: 1.51, HeA: 1.6189, HeB: 0.4245},
	{N2HalfTime: 8.0, N2A: 1.0000, N2B: 0.6514, HeHalfTime: 3.02, HeA: 1.3830, HeB: 0.5747},
	{N2HalfTime: 12.5, N2A: 0.8618, N2B: 0.7222, HeHalfTime: 4.72, HeA: 1.1919, HeB: 0.6527},
	{N2HalfTime: 18.5, N2A: 0.7562, N2B: 0.7825, HeHalfTime: 6.99, HeA: 1.0458, HeB: 0.7223},
	{N2HalfTime: 27.0, N2A: 0.6667, N2B: 0.8126, HeHalfTime: 10.21, HeA: 0.9220, HeB: 0.7582},
	{N2HalfTime: 38.3, N2A: 0.5600, N2B: 0.8434, HeHalfTime: 14.48, HeA: 0.8205, HeB: 0.7957},
	{N2HalfTime: 54.3, N2A: 0.4947, N2B: 0.8693, HeHalfTime: 20.53, HeA: 0.7305, HeB: 0.8279},
	{N2HalfTime: 77.0, N2A: 0.4500, N2B: 0.8910, HeHalfTime: 29.11, HeA: 0.6502, HeB: 0.8553},
	{N2HalfTime: 109.0, N2A: 0.4187, N2B: 0.9092, HeHalfTime: 41.20, HeA: 0.5950, HeB: 0.8757},
	{N2HalfTime: 146.0, N2A: 0.3798, N2B: 0.9222, HeHalfTime: 55.19, HeA: 0.5545, HeB: 0.8903},
	{N2HalfTime: 187.0, N2A: 0.3497, N2B: 0.9319, HeHalfTime: 70.69, HeA: 0.5333, HeB: 0.8997},
	{N2HalfTime: 239.0, N2A: 0.3223, N2B: 0.9403, HeHalfTime: 90.34, HeA: 0.5189, HeB: 0.9073},
	{N2HalfTime: 305.0, N2A: 0.2850, N2B: 0.9477, HeHalfTime: 115.29, HeA: 0.5181, HeB: 0.9122},
	{N2HalfTime: 390.0, N2A: 0.2737, N2B: 0.9544, HeHalfTime: 147.42, HeA: 0.5176, HeB: 0.9171},
	{N2HalfTime: 498.0, N2A: 0.2523, N2B: 0.9602, HeHalfTime: 188.24, HeA: 0.5172, HeB: 0.9217},
	{N2HalfTime: 635.0, N2A: 0.2327, N2B: 0.9653, HeHalfTime: 240.03, HeA: 0.5119, HeB: 0.9267},
}

// Compartment holds one tissue compartment's mutable per-run inert gas
// state. Its coefficients live alongside it in Compartments.Coeffs, a copy
// of the package level ZHL16C table.
type Compartment struct {
	N2Pressure float64
	HePressure float64
}

// Compartments is the full 16-compartment tissue state for a single
// planner call. It owns its own state; a planner hands it to the returned
// profile as FinalTissue and does not touch it afterwards.
type Compartments struct {
	Coeffs [Count]Coefficients
	State  [Count]Compartment
}

// Init creates a fresh tissue vector seeded at surface equilibrium on the
// given surface gas (air by default) with helium at zero.
func Init(surfaceGas gasmix.GasMix) *Compartments {
	c := &Compartments{Coeffs: ZHL16C}
	n2Equilibrium := gasmix.InspiredPressure(units.SurfacePressure, surfaceGas.N2)
	for i := range c.State {
		c.State[i] = Compartment{N2Pressure: n2Equilibrium, HePressure: 0.0}
	}
	return c
}

// Clone returns a deep, independent copy of the tissue vector.
func (c *Compartments) Clone() *Compartments {
	clone := *c
	return &clone
}

// schreinerConstantDepth applies the Schreiner equation for a segment at
// constant ambient pressure: P' = Pi + (P - Pi) * exp(-ln2*t/halfTime).
func schreinerConstantDepth(pi, inspired, halfTime, t float64) float64 {
	k := math.Ln2 / halfTime
	return inspired + (pi-inspired)*math.Exp(-k*t)
}

// haldaneSchreinerChangingDepth applies the linear Haldane-Schreiner
// equation for a segment during which ambient pressure changes at a
// constant rate R (bar/min of inert-gas partial pressure).
//
// Stable for t >= 1/60 min; below that the 1/k term would dominate and the
// constant-depth form should be preferred instead.
func haldaneSchreinerChangingDepth(pi, inspiredStart, rate, halfTime, t float64) float64 {
	k := math.Ln2 / halfTime
	return inspiredStart + rate*(t-1.0/k) - (inspiredStart-pi-rate/k)*math.Exp(-k*t)
}

// UpdateConstantDepth advances every compartment's N2 and He pressure for
// t minutes spent at a fixed depth, breathing the given gas.
func (c *Compartments) UpdateConstantDepth(depthM float64, gas gasmix.GasMix, t float64) {
	if t <= 0 {
		return
	}
	ambient := units.DepthToPressure(depthM)
	inspiredN2 := gasmix.InspiredPressure(ambient, gas.N2)
	inspiredHe := gasmix.InspiredPressure(ambient, gas.He)

	for i := range c.State {
		c.State[i].N2Pressure = schreinerConstantDepth(c.State[i].N2Pressure, inspiredN2, c.Coeffs[i].N2HalfTime, t)
		c.State[i].HePressure = schreinerConstantDepth(c.State[i].HePressure, inspiredHe, c.Coeffs[i].HeHalfTime, t)
	}
}

// UpdateChangingDepth advances every compartment's N2 and He pressure for
// a segment that moves linearly from fromDepthM to toDepthM over t minutes,
// breathing the given gas throughout.
func (c *Compartments) UpdateChangingDepth(fromDepthM, toDepthM float64, gas gasmix.GasMix, t float64) {
	if t <= 0 {
		return
	}
	if t < 1.0/60.0 {
		// Too short for the linear form to be numerically stable; treat as
		// an instantaneous jump followed by a constant-depth segment.
		c.UpdateConstantDepth(toDepthM, gas, t)
		return
	}

	ambStart := units.DepthToPressure(fromDepthM)
	ambEnd := units.DepthToPressure(toDepthM)

	inspiredStartN2 := gasmix.InspiredPressure(ambStart, gas.N2)
	inspiredEndN2 := gasmix.InspiredPressure(ambEnd, gas.N2)
	rateN2 := (inspiredEndN2 - inspiredStartN2) / t

	inspiredStartHe := gasmix.InspiredPressure(ambStart, gas.He)
	inspiredEndHe := gasmix.InspiredPressure(ambEnd, gas.He)
	rateHe := (inspiredEndHe - inspiredStartHe) / t

	for i := range c.State {
		c.State[i].N2Pressure = haldaneSchreinerChangingDepth(c.State[i].N2Pressure, inspiredStartN2, rateN2, c.Coeffs[i].N2HalfTime, t)
		c.State[i].HePressure = haldaneSchreinerChangingDepth(c.State[i].HePressure, inspiredStartHe, rateHe, c.Coeffs[i].HeHalfTime, t)
	}
}

// CombinedAB returns the blended (a, b) M-value coefficients for
// compartment i, weighted by the current N2/He pressure fractions. Falls
// back to N2-only coefficients when the total inert pressure is zero.
func (c *Compartments) CombinedAB(i int) (a, b float64) {
	s := c.State[i]
	total := s.N2Pressure + s.HePressure
	if total <= 0 {
		return c.Coeffs[i].N2A, c.Coeffs[i].N2B
	}
	a = (c.Coeffs[i].N2A*s.N2Pressure + c.Coeffs[i].HeA*s.HePressure) / total
	b = (c.Coeffs[i].N2B*s.N2Pressure + c.Coeffs[i].HeB*s.HePressure) / total
	return a, b
}

// TotalInert returns the total inert gas pressure (N2 + He) for
// compartment i.
func (c *Compartments) TotalInert(i int) float64 {
	return c.State[i].N2Pressure + c.State[i].HePressure
}
