package vpmb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m5lapp/divengine/gasmix"
	"github.com/m5lapp/divengine/profile"
)

func TestPlanReportsZeroNDL(t *testing.T) {
	params := profile.SingleLevelParameters{
		DepthM:     40,
		BottomTime: 25,
		Gas:        gasmix.Air(),
		GFLow:      30,
		GFHigh:     85,
	}
	p, err := Plan(params)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.NDL)
	assert.Equal(t, "vpmb", p.Model)
	assert.NotEmpty(t, p.PlanID)
}

func TestPlanEmitsModelWarning(t *testing.T) {
	params := profile.SingleLevelParameters{
		DepthM:     40,
		BottomTime: 25,
		Gas:        gasmix.Air(),
		GFLow:      30,
		GFHigh:     85,
	}
	p, err := Plan(params)
	require.NoError(t, err)

	found := false
	for _, w := range p.Warnings {
		if w.Level == gasmix.SeverityInfo {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPlanStopsAreNonIncreasing(t *testing.T) {
	params := profile.SingleLevelParameters{
		DepthM:     45,
		BottomTime: 20,
		Gas:        gasmix.Air(),
		GFLow:      30,
		GFHigh:     85,
	}
	p, err := Plan(params)
	require.NoError(t, err)

	for i := 1; i < len(p.Stops); i++ {
		assert.LessOrEqual(t, p.Stops[i].DepthM, p.Stops[i-1].DepthM)
	}
}

func TestPlanNoDecoDiveProducesOnlySafetyStop(t *testing.T) {
	params := profile.SingleLevelParameters{
		DepthM:     12,
		BottomTime: 15,
		Gas:        gasmix.Air(),
		GFLow:      30,
		GFHigh:     85,
	}
	p, err := Plan(params)
	require.NoError(t, err)

	for _, s := range p.Stops {
		assert.Equal(t, profile.SafetyStopDepthM, s.DepthM)
	}
}
