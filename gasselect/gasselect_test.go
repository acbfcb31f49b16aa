package gasselect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m5lapp/divengine/gasmix"
)

func TestBestFallsBackToBottomGas(t *testing.T) {
	inv := gasmix.Inventory{Bottom: gasmix.Trimix(0.21, 0.35, "Trimix 21/35")}
	best := Best(40, inv, 1.4)
	assert.Equal(t, inv.Bottom, best)
}

func TestBestPicksHighestQualifyingO2(t *testing.T) {
	inv := gasmix.Inventory{
		Bottom: gasmix.Trimix(0.21, 0.35, "Trimix 21/35"),
		Deco:   []gasmix.GasMix{gasmix.Nitrox(0.50, "EAN50"), gasmix.Nitrox(1.0, "O2")},
	}
	best := Best(6, inv, 1.6)
	assert.Equal(t, "O2", best.Name)

	best = Best(21, inv, 1.6)
	assert.Equal(t, "EAN50", best.Name)
}

func TestIsSwitchWorthwhile(t *testing.T) {
	bottom := gasmix.Trimix(0.21, 0.35, "Trimix 21/35")
	ean50 := gasmix.Nitrox(0.50, "EAN50")

	assert.True(t, IsSwitchWorthwhile(bottom, ean50, 21, 10))
	assert.False(t, IsSwitchWorthwhile(bottom, ean50, 21, 1))

	tinyDelta := gasmix.Nitrox(bottom.O2+0.02, "barely better")
	assert.False(t, IsSwitchWorthwhile(bottom, tinyDelta, 21, 10))
}

func TestSwitchDepthHasMinFloor(t *testing.T) {
	o2 := gasmix.Nitrox(1.0, "O2")
	assert.Equal(t, MinDecoGasDepth, SwitchDepth(o2))

	ean50 := gasmix.Nitrox(0.50, "EAN50")
	assert.Greater(t, SwitchDepth(ean50), MinDecoGasDepth)
}
