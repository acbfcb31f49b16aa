package tissue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m5lapp/divengine/gasmix"
)

func TestInitSeedsSurfaceEquilibrium(t *testing.T) {
	c := Init(gasmix.Air())
	expected := gasmix.InspiredPressure(1.01325, 0.79)
	for i := 0; i < Count; i++ {
		assert.InDelta(t, expected, c.State[i].N2Pressure, 1e-9)
		assert.Equal(t, 0.0, c.State[i].HePressure)
	}
}

func TestUpdateConstantDepthMonotonicTowardInspired(t *testing.T) {
	c := Init(gasmix.Air())
	before := c.State[0].N2Pressure
	c.UpdateConstantDepth(30, gasmix.Air(), 20)
	after := c.State[0].N2Pressure

	inspired := gasmix.InspiredPressure(4.01, 0.79)
	assert.Greater(t, after, before)
	assert.Less(t, after, inspired+1e-9)
}

func TestUpdateNonNegativePressures(t *testing.T) {
	c := Init(gasmix.Air())
	c.UpdateConstantDepth(40, gasmix.Air(), 25)
	c.UpdateChangingDepth(40, 9, gasmix.Air(), 3)
	for i := 0; i < Count; i++ {
		assert.GreaterOrEqual(t, c.State[i].N2Pressure, 0.0)
		assert.GreaterOrEqual(t, c.State[i].HePressure, 0.0)
	}
}

func TestUpdateChangingDepthStableForTinyDuration(t *testing.T) {
	c := Init(gasmix.Air())
	assert.NotPanics(t, func() {
		c.UpdateChangingDepth(10, 9, gasmix.Air(), 1.0/120.0)
	})
}

func TestCloneIsIndependent(t *testing.T) {
	c := Init(gasmix.Air())
	clone := c.Clone()
	clone.UpdateConstantDepth(30, gasmix.Air(), 10)
	assert.NotEqual(t, c.State[0].N2Pressure, clone.State[0].N2Pressure)
}

func TestCombinedABFallsBackToN2Only(t *testing.T) {
	c := &Compartments{Coeffs: ZHL16C}
	a, b := c.CombinedAB(0)
	assert.Equal(t, ZHL16C[0].N2A, a)
	assert.Equal(t, ZHL16C[0].N2B, b)
}

func TestCombinedABBlendsByPressureFraction(t *testing.T) {
	c := &Compartments{Coeffs: ZHL16C}
	c.State[0] = Compartment{N2Pressure: 1.0, HePressure: 1.0}
	a, b := c.CombinedAB(0)
	wantA := (ZHL16C[0].N2A + ZHL16C[0].HeA) / 2.0
	wantB := (ZHL16C[0].N2B + ZHL16C[0].HeB) / 2.0
	assert.InDelta(t, wantA, a, 1e-9)
	assert.InDelta(t, wantB, b, 1e-9)
}

func TestZHL16CTableShape(t *testing.T) {
	wantN2HalfTimes := []float64{4.0, 8.0, 12.5, 18.5, 27.0, 38.3, 54.3, 77.0, 109.0, 146.0, 187.0, 239.0, 305.0, 390.0, 498.0, 635.0}
	wantHeHalfTimes := []float64{1.51, 3.02, 4.72, 6.99, 10.21, 14.48, 20.53, 29.11, 41.20, 55.19, 70.69, 90.34, 115.29, 147.42, 188.24, 240.03}

	for i := 0; i < Count; i++ {
		assert.InDelta(t, wantN2HalfTimes[i], ZHL16C[i].N2HalfTime, 1e-9)
		assert.InDelta(t, wantHeHalfTimes[i], ZHL16C[i].HeHalfTime, 1e-9)
	}
}
