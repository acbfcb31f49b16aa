package buhlmann

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m5lapp/divengine/gasmix"
	"github.com/m5lapp/divengine/profile"
)

func TestPlanSingleLevelNoDecoAirDive(t *testing.T) {
	params := profile.SingleLevelParameters{
		DepthM:     18,
		BottomTime: 40,
		Gas:        gasmix.Air(),
		GFLow:      30,
		GFHigh:     85,
	}

	p, err := PlanSingleLevel(params)
	require.NoError(t, err)

	assert.NotEmpty(t, p.PlanID)
	for _, s := range p.Stops {
		assert.NotEqual(t, gasmix.SeverityDanger, "")
		assert.True(t, s.DepthM == 0 || s.DepthM == profile.SafetyStopDepthM)
	}
	for _, w := range p.Warnings {
		assert.NotEqual(t, gasmix.SeverityDanger, w.Level)
	}
	assert.GreaterOrEqual(t, p.NDL, 40.0)
}

func TestPlanSingleLevelMandatoryDecoAirDive(t *testing.T) {
	params := profile.SingleLevelParameters{
		DepthM:     40,
		BottomTime: 25,
		Gas:        gasmix.Air(),
		GFLow:      30,
		GFHigh:     85,
	}

	p, err := PlanSingleLevel(params)
	require.NoError(t, err)

	require.NotEmpty(t, p.Stops)
	found := false
	for _, w := range p.Warnings {
		if w.Message == "Decompression required" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPlanSingleLevelUnsafePPO2(t *testing.T) {
	params := profile.SingleLevelParameters{
		DepthM:     45,
		BottomTime: 10,
		Gas:        gasmix.Nitrox(0.36, "EAN36"),
		GFLow:      30,
		GFHigh:     85,
	}

	p, err := PlanSingleLevel(params)
	require.NoError(t, err)

	found := false
	for _, w := range p.Warnings {
		if w.Level == gasmix.SeverityDanger {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPlanMultiLevelOrdersSegmentsByDescendingDepth(t *testing.T) {
	air := gasmix.Air()
	params := profile.MultiLevelParameters{
		Segments: []profile.DiveSegment{
			{DepthM: 30, Duration: 15, Gas: air, Tag: profile.TagBottom},
			{DepthM: 20, Duration: 10, Gas: air, Tag: profile.TagBottom},
			{DepthM: 10, Duration: 5, Gas: air, Tag: profile.TagBottom},
		},
		Inventory:   gasmix.Inventory{Bottom: air},
		GFLow:       30,
		GFHigh:      85,
		DescentRate: 20,
		AscentRate:  10,
	}

	p, err := PlanMultiLevel(params)
	require.NoError(t, err)
	assert.NotEmpty(t, p.PlanID)
	assert.Equal(t, 30.0, p.MaxDepthM)

	var bottomDepths []float64
	for _, s := range p.Segments {
		if s.Tag == profile.TagBottom {
			bottomDepths = append(bottomDepths, s.DepthM)
		}
	}
	require.Len(t, bottomDepths, 3)
	assert.True(t, bottomDepths[0] >= bottomDepths[1])
	assert.True(t, bottomDepths[1] >= bottomDepths[2])
}

func TestPlanMultiLevelTrimixGasSwitches(t *testing.T) {
	bottom := gasmix.Trimix(0.21, 0.35, "Trimix 21/35")
	ean50 := gasmix.Nitrox(0.50, "EAN50")
	o2 := gasmix.Nitrox(1.0, "O2")

	params := profile.MultiLevelParameters{
		Segments: []profile.DiveSegment{
			{DepthM: 40, Duration: 25, Gas: bottom, Tag: profile.TagBottom},
		},
		Inventory:   gasmix.Inventory{Bottom: bottom, Deco: []gasmix.GasMix{ean50, o2}},
		GFLow:       30,
		GFHigh:      85,
		DescentRate: 20,
		AscentRate:  9,
	}

	p, err := PlanMultiLevel(params)
	require.NoError(t, err)

	var toEAN50, toO2 bool
	for _, sw := range p.Switches {
		if sw.ToGas.Name == "EAN50" {
			toEAN50 = true
			assert.Equal(t, profile.SwitchOptimal, sw.Reason)
		}
		if sw.ToGas.Name == "O2" {
			toO2 = true
			assert.Equal(t, profile.SwitchOptimal, sw.Reason)
		}
	}
	assert.True(t, toEAN50)
	assert.True(t, toO2)
}

func TestComputeNDLMonotonicity(t *testing.T) {
	shallow := profile.SingleLevelParameters{Gas: gasmix.Air(), GFLow: 30, GFHigh: 85}
	deep := profile.SingleLevelParameters{Gas: gasmix.Air(), GFLow: 30, GFHigh: 85}

	ndlShallow, err := ComputeNDL(15, shallow)
	require.NoError(t, err)
	ndlDeep, err := ComputeNDL(35, deep)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, ndlShallow, ndlDeep)
}

func TestPlanSingleLevelInvalidGasMix(t *testing.T) {
	params := profile.SingleLevelParameters{
		DepthM:     20,
		BottomTime: 20,
		Gas:        gasmix.GasMix{O2: 0.5, N2: 0.3, He: 0.0},
		GFLow:      30,
		GFHigh:     85,
	}
	_, err := PlanSingleLevel(params)
	assert.ErrorIs(t, err, gasmix.ErrInvalidGasMix)
}
