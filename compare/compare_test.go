package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m5lapp/divengine/gasmix"
	"github.com/m5lapp/divengine/profile"
)

func TestRunComparesBuhlmannAndVPMB(t *testing.T) {
	params := profile.SingleLevelParameters{
		DepthM:     40,
		BottomTime: 25,
		Gas:        gasmix.Air(),
		GFLow:      30,
		GFHigh:     85,
	}

	report, err := Run(params, []string{"buhlmann", "vpmb"})
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Len(t, report.Spreads, 6)
}

func TestRunUnknownModelFails(t *testing.T) {
	params := profile.SingleLevelParameters{Gas: gasmix.Air(), GFLow: 30, GFHigh: 85}
	_, err := Run(params, []string{"made-up-model"})
	assert.Error(t, err)
}

func TestClassifySpread(t *testing.T) {
	assert.Equal(t, "major", classify(25))
	assert.Equal(t, "moderate", classify(15))
	assert.Equal(t, "minor", classify(5))
}

func TestRunIncludesNavy(t *testing.T) {
	params := profile.SingleLevelParameters{
		DepthM:     18,
		BottomTime: 60,
		Gas:        gasmix.Air(),
		GFLow:      30,
		GFHigh:     85,
	}
	report, err := Run(params, []string{"buhlmann", "navy"})
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
}
