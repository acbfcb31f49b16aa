package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanCmdModelFlagDefaultsToBuhlmann(t *testing.T) {
	flag := planCmd.Flags().Lookup("model")
	assert.NotNil(t, flag, "model flag must be registered")
	assert.Equal(t, "buhlmann", flag.DefValue)
}

func TestPlanCmdGradientFactorFlagsHaveSaneDefaults(t *testing.T) {
	low := planCmd.Flags().Lookup("gf-low")
	high := planCmd.Flags().Lookup("gf-high")
	assert.NotNil(t, low)
	assert.NotNil(t, high)
	assert.Equal(t, "30", low.DefValue)
	assert.Equal(t, "85", high.DefValue)
}

func TestRootCmdHasAllSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["plan"])
	assert.True(t, names["ndl"])
	assert.True(t, names["analyze"])
	assert.True(t, names["compare"])
}

func TestAnalyzeCmdAtDepthFlagDefaultsToSurface(t *testing.T) {
	flag := analyzeCmd.Flags().Lookup("at-depth")
	assert.NotNil(t, flag, "at-depth flag must be registered")
	assert.Equal(t, "0", flag.DefValue)
}
