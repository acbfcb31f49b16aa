package navy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m5lapp/divengine/gasmix"
	"github.com/m5lapp/divengine/profile"
)

func TestPlanAppendsSafetyStopAtTwelveMetresOrDeeper(t *testing.T) {
	p, err := Plan(18, 60, gasmix.Air())
	require.NoError(t, err)

	require.NotEmpty(t, p.Stops)
	last := p.Stops[len(p.Stops)-1]
	assert.Equal(t, profile.SafetyStopDepthM, last.DepthM)
	assert.Equal(t, 3.0, last.Duration)
	assert.NotEmpty(t, p.PlanID)
}

func TestPlanReturnsRepetitiveGroup(t *testing.T) {
	p, err := Plan(18, 60, gasmix.Air())
	require.NoError(t, err)

	found := false
	for _, w := range p.Warnings {
		if w.Message == "repetitive group" {
			found = true
			assert.NotEmpty(t, w.Details)
		}
	}
	assert.True(t, found)
}

func TestPlanRejectsNonAirGas(t *testing.T) {
	_, err := Plan(18, 60, gasmix.Nitrox(0.32, "EAN32"))
	assert.ErrorIs(t, err, profile.ErrTableOutOfRange)
}

func TestPlanRejectsDepthBeyondTableRange(t *testing.T) {
	_, err := Plan(50, 20, gasmix.Air())
	assert.ErrorIs(t, err, profile.ErrTableOutOfRange)
}

func TestPlanPicksMostConservativeRowWhenBottomTimeExceedsTable(t *testing.T) {
	p, err := Plan(42, 999, gasmix.Air())
	require.NoError(t, err)
	assert.Greater(t, p.TotalDecoTime, 0.0)
}

func TestGroupReturnsLetter(t *testing.T) {
	g, err := Group(18, 60)
	require.NoError(t, err)
	assert.NotEmpty(t, g)
}
