package gasplan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m5lapp/divengine/profile"
)

func sampleProfile() profile.DiveProfile {
	return profile.DiveProfile{
		MaxDepthM: 30,
		Segments: []profile.DiveSegment{
			{DepthM: 30, Duration: 20, Tag: profile.TagBottom},
		},
		Stops: []profile.DecompressionStop{
			{DepthM: 6, Duration: 5},
			{DepthM: 3, Duration: 8},
		},
	}
}

func sampleTanks() TankConfig {
	return TankConfig{
		SACRate:         20,
		TankCount:       1,
		TankCapacity:    12,
		WorkingPressure: 200,
		DiveFactor:      DiveFactorModerate,
		AscentRate:      9,
	}
}

func TestGasAvailableMultipliesAcrossTanks(t *testing.T) {
	tanks := sampleTanks()
	tanks.TankCount = 2
	assert.Equal(t, 2*12*200.0, tanks.GasAvailable())
}

func TestGasRequiredIsOneAndAHalfTimesBase(t *testing.T) {
	p := sampleProfile()
	tanks := sampleTanks()
	base := baseGasRequired(p, tanks)
	assert.InDelta(t, base*1.5, GasRequired(p, tanks), 1e-9)
	assert.Greater(t, base, 0.0)
}

func TestMinGasScalesWithDepthAndDiveFactor(t *testing.T) {
	p := sampleProfile()
	shallow := p
	shallow.MaxDepthM = 10

	tanks := sampleTanks()
	assert.Greater(t, MinGas(p, tanks), MinGas(shallow, tanks))
}

func TestWorkingGasSubtractsReserve(t *testing.T) {
	p := sampleProfile()
	tanks := sampleTanks()
	assert.InDelta(t, tanks.GasAvailable()-MinGas(p, tanks)*float64(tanks.TankCount), WorkingGas(p, tanks), 1e-9)
}

func TestGasSpareIsWorkingGasMinusRequired(t *testing.T) {
	p := sampleProfile()
	tanks := sampleTanks()
	assert.InDelta(t, WorkingGas(p, tanks)-GasRequired(p, tanks), GasSpare(p, tanks), 1e-9)
}
