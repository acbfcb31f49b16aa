// Package analysis implements the stop-analysis query: per-compartment
// saturation, margin, ceiling and status at an arbitrary selected depth,
// plus a human-readable explanation of whether ascending there is safe.
package analysis

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/m5lapp/divengine/gf"
	"github.com/m5lapp/divengine/profile"
	"github.com/m5lapp/divengine/tissue"
	"github.com/m5lapp/divengine/units"
)

// ErrNoTissueState is returned when a profile carries no final tissue
// vector to analyze, e.g. a Navy table plan.
var ErrNoTissueState = errors.New("analysis: profile has no final tissue state")

// Status classifies a compartment's saturation level.
type Status string

const (
	StatusSafe    Status = "safe"
	StatusCaution Status = "caution"
	StatusDanger  Status = "danger"
)

// CompartmentReport is the per-compartment result of an analysis query.
type CompartmentReport struct {
	Index             int
	TissuePressure    float64
	ToleratedPressure float64
	AbsoluteMargin    float64
	RelativeMarginPct float64
	CeilingM          float64
	SaturationPct     float64
	Status            Status
}

// Report is the full result of analyzing a tissue vector at a depth.
type Report struct {
	Compartments        []CompartmentReport
	LimitingCompartment int
	MeanSaturationPct   float64
	Explanation         string
}

// AtDepth analyzes p's final tissue state at depthM using gfHigh for the
// tolerated-pressure blend, mirroring the gradient-factor engine's ceiling
// computation.
func AtDepth(p profile.DiveProfile, depthM, gfHigh float64) (Report, error) {
	if p.FinalTissue == nil {
		return Report{}, ErrNoTissueState
	}
	return Compute(p.FinalTissue, depthM, gfHigh), nil
}

// Compute analyzes a tissue vector directly, independent of any profile.
func Compute(c *tissue.Compartments, depthM, gfHigh float64) Report {
	reports := make([]CompartmentReport, tissue.Count)
	saturations := make([]float64, tissue.Count)

	limiting := 0
	limitingCeiling := -1.0

	for i := 0; i < tissue.Count; i++ {
		a, b := c.CombinedAB(i)
		tp := c.TotalInert(i)
		tolerated := gf.ToleratedPressure(tp, a, b)
		ceiling := units.PressureToDepth(units.SurfacePressure + (tolerated-units.SurfacePressure)*(gfHigh/100.0))
		if ceiling < 0 {
			ceiling = 0
		}

		ambient := units.DepthToPressure(depthM)
		margin := ambient - tolerated
		relMargin := 0.0
		if tolerated != 0 {
			relMargin = margin / tolerated * 100.0
		}

		saturation := gf.Supersaturation(c, i, depthM)
		saturations[i] = saturation

		status := StatusSafe
		switch {
		case saturation >= 90:
			status = StatusDanger
		case saturation >= 70:
			status = StatusCaution
		}

		reports[i] = CompartmentReport{
			Index:             i + 1,
			TissuePressure:    tp,
			ToleratedPressure: tolerated,
			AbsoluteMargin:    margin,
			RelativeMarginPct: relMargin,
			CeilingM:          ceiling,
			SaturationPct:     saturation,
			Status:            status,
		}

		if ceiling > limitingCeiling {
			limitingCeiling = ceiling
			limiting = i
		}
	}

	safe := limitingCeiling <= depthM
	explanation := fmt.Sprintf(
		"compartment %d is limiting with a ceiling of %.1fm; ascent to %.1fm is %s",
		limiting+1, limitingCeiling, depthM, safeWord(safe),
	)

	return Report{
		Compartments:        reports,
		LimitingCompartment: limiting + 1,
		MeanSaturationPct:   stat.Mean(saturations, nil),
		Explanation:         explanation,
	}
}

func safeWord(safe bool) string {
	if safe {
		return "safe"
	}
	return "not safe"
}
