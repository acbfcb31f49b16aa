// Package gasmix models breathing gas mixtures and the safety predicates
// (PPO2, PPN2, END, MOD, hypoxic floor) that depend only on a mix and a
// depth.
package gasmix

import (
	"errors"
	"fmt"
	"math"

	"github.com/m5lapp/divengine/units"
)

// ErrInvalidGasMix is returned when a GasMix's fractions do not normalize
// to 1 within tolerance.
var ErrInvalidGasMix = errors.New("gasmix: fractions do not sum to 1")

const mixSumTolerance = 1e-3

// GasMix represents a breathing gas with fractions of oxygen, nitrogen and
// helium. The three fractions must sum to 1 within mixSumTolerance.
type GasMix struct {
	O2   float64 `bson:"o2" json:"o2"`
	N2   float64 `bson:"n2" json:"n2"`
	He   float64 `bson:"he" json:"he"`
	Name string  `bson:"name" json:"name"`
}

// Air is the standard surface breathing gas.
func Air() GasMix {
	return GasMix{O2: 0.21, N2: 0.79, He: 0.0, Name: "Air"}
}

// Nitrox constructs a GasMix with the given oxygen fraction and the
// remainder made up of nitrogen.
func Nitrox(fo2 float64, name string) GasMix {
	return GasMix{O2: fo2, N2: 1.0 - fo2, He: 0.0, Name: name}
}

// Trimix constructs a GasMix with the given oxygen and helium fractions,
// the remainder made up of nitrogen.
func Trimix(fo2, fhe float64, name string) GasMix {
	return GasMix{O2: fo2, N2: 1.0 - fo2 - fhe, He: fhe, Name: name}
}

// Validate checks that the mix's fractions sum to 1 within tolerance.
func (g GasMix) Validate() error {
	sum := g.O2 + g.N2 + g.He
	if math.Abs(sum-1.0) > mixSumTolerance {
		return fmt.Errorf("%w: %s sums to %.4f", ErrInvalidGasMix, g.describe(), sum)
	}
	if g.O2 < 0 || g.O2 > 1 || g.N2 < 0 || g.N2 > 1 || g.He < 0 || g.He > 1 {
		return fmt.Errorf("%w: %s has an out-of-range fraction", ErrInvalidGasMix, g.describe())
	}
	return nil
}

func (g GasMix) describe() string {
	if g.Name != "" {
		return g.Name
	}
	return fmt.Sprintf("O2=%.3f/N2=%.3f/He=%.3f", g.O2, g.N2, g.He)
}

// PPO2 returns the partial pressure of oxygen for the mix at the given
// depth, in bar.
func (g GasMix) PPO2(depthM float64) float64 {
	return units.DepthToPressure(depthM) * g.O2
}

// PPN2 returns the partial pressure of nitrogen for the mix at the given
// depth, in bar, corrected for water vapour in the lungs.
func (g GasMix) PPN2(depthM float64) float64 {
	return (units.DepthToPressure(depthM) - units.WaterVapourPressure) * g.N2
}

// PPHe returns the partial pressure of helium for the mix at the given
// depth, in bar, corrected for water vapour in the lungs.
func (g GasMix) PPHe(depthM float64) float64 {
	return (units.DepthToPressure(depthM) - units.WaterVapourPressure) * g.He
}

// InspiredPressure applies the body-temperature water-vapour correction to
// an ambient pressure for a given fraction of inert (or any) gas.
func InspiredPressure(ambientBar, fraction float64) float64 {
	return (ambientBar - units.WaterVapourPressure) * fraction
}

// END returns the Equivalent Narcotic Depth of the mix at depthM. Helium is
// treated as non-narcotic.
func (g GasMix) END(depthM float64) float64 {
	return (depthM+10.0)*(g.N2+g.O2) - 10.0
}

// MOD returns the Maximum Operating Depth in metres for the mix given a
// maximum tolerated PPO2 in bar.
func (g GasMix) MOD(maxPPO2 float64) float64 {
	return (maxPPO2/g.O2 - units.SurfacePressure) / units.PressurePerMetre
}

// MinDepth returns the hypoxic floor in metres: the shallowest depth at
// which the mix's PPO2 is at least 0.16 bar. Surface-breathable mixes
// return 0.
func (g GasMix) MinDepth() float64 {
	d := (0.16/g.O2 - units.SurfacePressure) / units.PressurePerMetre
	if d < 0 {
		return 0
	}
	return d
}

// Severity levels for Warning, shared across the engine's packages.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// DepthValidation is the result of validating a gas at a depth.
type DepthValidation struct {
	Safe     bool
	Warnings []DepthWarning
}

// DepthWarning is a single finding from ValidateAtDepth.
type DepthWarning struct {
	Level   Severity
	Message string
	Details string
}

const (
	maxWorkingPPO2 = 1.4
	maxDecoPPO2    = 1.6
	minPPO2        = 0.16
	maxEND         = 30.0
)

// ValidateAtDepth checks a gas mix's suitability at a given depth, raising
// danger-level findings for PPO2 outside safe bounds and warning-level
// findings for narcosis or approaching MOD.
func ValidateAtDepth(g GasMix, depthM float64, inDeco bool) DepthValidation {
	var findings []DepthWarning
	safe := true

	ppo2 := g.PPO2(depthM)
	ppo2Limit := maxWorkingPPO2
	if inDeco {
		ppo2Limit = maxDecoPPO2
	}

	if ppo2 > ppo2Limit {
		safe = false
		findings = append(findings, DepthWarning{
			Level:   SeverityDanger,
			Message: "oxygen toxicity risk: PPO2 exceeds safe limit",
			Details: fmt.Sprintf("PPO2=%.3f bar at %.1fm exceeds limit of %.2f bar", ppo2, depthM, ppo2Limit),
		})
	}
	if ppo2 < minPPO2 {
		safe = false
		findings = append(findings, DepthWarning{
			Level:   SeverityDanger,
			Message: "hypoxic gas: PPO2 below safe minimum",
			Details: fmt.Sprintf("PPO2=%.3f bar at %.1fm is below %.2f bar", ppo2, depthM, minPPO2),
		})
	}

	end := g.END(depthM)
	if end > maxEND {
		findings = append(findings, DepthWarning{
			Level:   SeverityWarning,
			Message: "narcosis risk: equivalent narcotic depth exceeds 30m",
			Details: fmt.Sprintf("END=%.1fm at %.1fm", end, depthM),
		})
	}

	mod := g.MOD(ppo2Limit)
	if depthM > 0.9*mod {
		findings = append(findings, DepthWarning{
			Level:   SeverityWarning,
			Message: "approaching maximum operating depth",
			Details: fmt.Sprintf("depth %.1fm is within 10%% of MOD %.1fm", depthM, mod),
		})
	}

	return DepthValidation{Safe: safe, Warnings: findings}
}

// Inventory is exactly one bottom gas plus an ordered list of deco gases.
type Inventory struct {
	Bottom GasMix
	Deco   []GasMix
}

// ErrInvalidInventory is returned by Validate when the inventory violates
// its structural invariants.
var ErrInvalidInventory = errors.New("gasmix: invalid gas inventory")

// Validate checks that every deco gas has strictly higher O2 than the
// bottom gas and that there are no duplicate mixes.
func (inv Inventory) Validate() error {
	if err := inv.Bottom.Validate(); err != nil {
		return err
	}

	seen := map[string]bool{inv.Bottom.describe(): true}
	for _, d := range inv.Deco {
		if err := d.Validate(); err != nil {
			return err
		}
		if d.O2 <= inv.Bottom.O2 {
			return fmt.Errorf("%w: deco gas %s does not have higher O2 than bottom gas %s", ErrInvalidInventory, d.describe(), inv.Bottom.describe())
		}
		key := d.describe()
		if seen[key] {
			return fmt.Errorf("%w: duplicate gas %s in inventory", ErrInvalidInventory, key)
		}
		seen[key] = true
	}
	return nil
}

// All returns the bottom gas followed by all deco gases.
func (inv Inventory) All() []GasMix {
	all := make([]GasMix, 0, len(inv.Deco)+1)
	all = append(all, inv.Bottom)
	all = append(all, inv.Deco...)
	return all
}
