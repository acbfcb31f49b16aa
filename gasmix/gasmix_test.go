package gasmix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Air().Validate())
	assert.NoError(t, Nitrox(0.32, "EAN32").Validate())
	assert.NoError(t, Trimix(0.21, 0.35, "Trimix 21/35").Validate())

	bad := GasMix{O2: 0.21, N2: 0.5, He: 0.0}
	err := bad.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidGasMix)
}

func TestEND(t *testing.T) {
	air := Air()
	assert.InDelta(t, 30.0, air.END(30), 1e-9)

	trimix := Trimix(0.21, 0.35, "")
	// N2 fraction is 0.44, so END should be shallower than the real depth.
	assert.Less(t, trimix.END(40), 40.0)
}

func TestMOD(t *testing.T) {
	ean32 := Nitrox(0.32, "EAN32")
	mod := ean32.MOD(1.4)
	assert.InDelta(t, 33.8, mod, 0.5)
}

func TestMinDepth(t *testing.T) {
	o2 := Nitrox(1.0, "O2")
	assert.Equal(t, 0.0, o2.MinDepth())

	// A very lean hypoxic trimix should require a minimum depth.
	hypoxic := GasMix{O2: 0.10, N2: 0.50, He: 0.40}
	assert.Greater(t, hypoxic.MinDepth(), 0.0)
}

func TestValidateAtDepthDangerPPO2(t *testing.T) {
	ean36 := Nitrox(0.36, "EAN36")
	res := ValidateAtDepth(ean36, 45, false)
	assert.False(t, res.Safe)
	found := false
	for _, w := range res.Warnings {
		if w.Level == SeverityDanger {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateAtDepthNarcosisWarning(t *testing.T) {
	air := Air()
	res := ValidateAtDepth(air, 45, false)
	var hasWarning bool
	for _, w := range res.Warnings {
		if w.Level == SeverityWarning {
			hasWarning = true
		}
	}
	assert.True(t, hasWarning)
}

func TestInventoryValidate(t *testing.T) {
	inv := Inventory{
		Bottom: Trimix(0.21, 0.35, "Trimix 21/35"),
		Deco:   []GasMix{Nitrox(0.50, "EAN50"), Nitrox(1.0, "O2")},
	}
	assert.NoError(t, inv.Validate())

	bad := Inventory{
		Bottom: Air(),
		Deco:   []GasMix{Nitrox(0.18, "lean")},
	}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidInventory)
}

func TestInventoryAll(t *testing.T) {
	inv := Inventory{Bottom: Air(), Deco: []GasMix{Nitrox(0.50, "EAN50")}}
	assert.Len(t, inv.All(), 2)
}
