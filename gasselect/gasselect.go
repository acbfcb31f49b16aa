// Package gasselect chooses the best breathing gas for a given depth from
// an inventory, and decides whether switching to a candidate gas is
// worthwhile.
package gasselect

import (
	"math"

	"github.com/m5lapp/divengine/gasmix"
)

// MinDecoGasDepth is the shallowest depth a deco-gas switch may be placed
// at.
const MinDecoGasDepth = 6.0

const minWorthwhileO2Delta = 0.05
const minRemainingTimeForSwitch = 2.0

// Best returns the best gas to breathe at depthM from the inventory: the
// candidate (bottom gas or any deco gas) that satisfies MinDepth <= depthM
// <= MOD(maxPPO2ForPhase) and has the highest O2 fraction. Falls back to
// the bottom gas if none qualify.
func Best(depthM float64, inv gasmix.Inventory, maxPPO2ForPhase float64) gasmix.GasMix {
	best := inv.Bottom
	bestO2 := -1.0

	for _, g := range inv.All() {
		if depthM < g.MinDepth() {
			continue
		}
		if depthM > g.MOD(maxPPO2ForPhase) {
			continue
		}
		if g.O2 > bestO2 {
			bestO2 = g.O2
			best = g
		}
	}

	return best
}

// IsSwitchWorthwhile decides whether switching from current to candidate
// at depthM, with remainingTimeMin of deco time left, is worthwhile.
func IsSwitchWorthwhile(current, candidate gasmix.GasMix, depthM, remainingTimeMin float64) bool {
	if candidate.O2-current.O2 < minWorthwhileO2Delta {
		return false
	}
	if remainingTimeMin < minRemainingTimeForSwitch {
		return false
	}
	validation := gasmix.ValidateAtDepth(candidate, depthM, true)
	if !validation.Safe {
		return false
	}
	return true
}

// SwitchDepth returns the depth at which a switch from one gas to another
// should occur: the deepest point at or above MOD(to, 1.6) - 1m, but never
// shallower than MinDecoGasDepth.
func SwitchDepth(to gasmix.GasMix) float64 {
	depth := math.Floor(to.MOD(1.6)) - 1.0
	if depth < MinDecoGasDepth {
		return MinDecoGasDepth
	}
	return depth
}
