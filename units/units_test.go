package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepthToPressure(t *testing.T) {
	tests := []struct {
		name  string
		depth float64
		want  float64
	}{
		{name: "surface", depth: 0, want: 1.01325},
		{name: "10m", depth: 10, want: 1.01325 + 10*0.09985},
		{name: "40m", depth: 40, want: 1.01325 + 40*0.09985},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DepthToPressure(tt.depth), 1e-9)
		})
	}
}

func TestPressureToDepthRoundTrip(t *testing.T) {
	for _, d := range []float64{0, 3, 18, 40, 100} {
		p := DepthToPressure(d)
		got := PressureToDepth(p)
		assert.InDelta(t, d, got, 1e-6)
	}
}

func TestPressureToDepthClampsNegative(t *testing.T) {
	assert.Equal(t, 0.0, PressureToDepth(0))
}

func TestDescOrAsc(t *testing.T) {
	assert.Equal(t, 1.0, DescOrAsc(0, 10))
	assert.Equal(t, -1.0, DescOrAsc(10, 0))
	assert.Equal(t, 0.0, DescOrAsc(10, 10))
}

func TestRoundToStopIncrement(t *testing.T) {
	assert.Equal(t, 9.0, RoundToStopIncrement(7.2, 3))
	assert.Equal(t, 21.0, RoundToStopIncrement(21.0, 3))
	assert.Equal(t, 0.0, RoundToStopIncrement(0, 3))
}

func TestUnitConversions(t *testing.T) {
	assert.InDelta(t, 32.8084, MetresToFeet(10), 1e-6)
	assert.InDelta(t, 10.0, FeetToMetres(MetresToFeet(10)), 1e-6)
	assert.InDelta(t, 14.5038, BarToPSI(1), 1e-6)
	assert.InDelta(t, 1.0, PSIToBar(BarToPSI(1)), 1e-9)
}
