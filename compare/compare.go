// Package compare runs multiple planner models over identical parameters
// and reports how their schedules differ, classifying the spread of each
// aspect and producing conservatism-driven recommendations.
package compare

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/m5lapp/divengine/buhlmann"
	"github.com/m5lapp/divengine/navy"
	"github.com/m5lapp/divengine/profile"
	"github.com/m5lapp/divengine/vpmb"
)

const (
	deepStopThresholdM = 12.0

	majorSpreadPct    = 20.0
	moderateSpreadPct = 10.0
)

// planFunc uniformly dispatches a SingleLevelParameters value to one
// planner model, the tagged-variant shape the comparison harness iterates
// over.
type planFunc func(profile.SingleLevelParameters) (profile.DiveProfile, error)

var models = map[string]planFunc{
	"buhlmann": buhlmann.PlanSingleLevel,
	"vpmb":     vpmb.Plan,
	"navy": func(params profile.SingleLevelParameters) (profile.DiveProfile, error) {
		return navy.Plan(params.DepthM, params.BottomTime, params.Gas)
	},
}

// ModelResult pairs a model name with its computed profile.
type ModelResult struct {
	Model   string
	Profile profile.DiveProfile
}

// AspectSpread reports one aspect's values across models and its
// classified spread.
type AspectSpread struct {
	Aspect         string
	Values         map[string]float64
	SpreadPct      float64
	Classification string
}

// Report is the full output of a comparison run.
type Report struct {
	Results         []ModelResult
	Spreads         []AspectSpread
	Recommendations []string
}

// Run computes a profile for each named model against identical
// parameters and compares them across total time, deco time, first stop
// depth, stop count, deep stops, and shallow stops.
func Run(params profile.SingleLevelParameters, modelNames []string) (Report, error) {
	var results []ModelResult

	for _, name := range modelNames {
		plan, ok := models[name]
		if !ok {
			return Report{}, fmt.Errorf("compare: unknown model %q", name)
		}
		logrus.WithField("model", name).Debug("running comparison planner")

		p, err := plan(params)
		if err != nil {
			return Report{}, fmt.Errorf("compare: model %q failed: %w", name, err)
		}
		results = append(results, ModelResult{Model: name, Profile: p})
	}

	aspects := []struct {
		name string
		fn   func(profile.DiveProfile) float64
	}{
		{"total_time", func(p profile.DiveProfile) float64 { return p.TotalDiveTime }},
		{"deco_time", func(p profile.DiveProfile) float64 { return p.TotalDecoTime }},
		{"first_stop_depth", firstStopDepth},
		{"stop_count", func(p profile.DiveProfile) float64 { return float64(len(p.Stops)) }},
		{"deep_stops", func(p profile.DiveProfile) float64 { return float64(countStops(p, true)) }},
		{"shallow_stops", func(p profile.DiveProfile) float64 { return float64(countStops(p, false)) }},
	}

	var spreads []AspectSpread
	for _, aspect := range aspects {
		values := make(map[string]float64, len(results))
		raw := make([]float64, 0, len(results))
		for _, r := range results {
			v := aspect.fn(r.Profile)
			values[r.Model] = v
			raw = append(raw, v)
		}
		spreads = append(spreads, AspectSpread{
			Aspect:         aspect.name,
			Values:         values,
			SpreadPct:      spreadPercent(raw),
			Classification: classify(spreadPercent(raw)),
		})
	}

	return Report{
		Results:         results,
		Spreads:         spreads,
		Recommendations: recommend(results, spreads),
	}, nil
}

func firstStopDepth(p profile.DiveProfile) float64 {
	max := 0.0
	for _, s := range p.Stops {
		if s.DepthM > max {
			max = s.DepthM
		}
	}
	return max
}

func countStops(p profile.DiveProfile, deep bool) int {
	count := 0
	for _, s := range p.Stops {
		if (s.DepthM >= deepStopThresholdM) == deep {
			count++
		}
	}
	return count
}

// spreadPercent reports the spread of a set of values as a percentage of
// their mean, using gonum/stat for the mean and a plain scan for min/max.
func spreadPercent(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := stat.Mean(values, nil)
	if mean == 0 {
		return 0
	}
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return (max - min) / mean * 100.0
}

func classify(spreadPct float64) string {
	switch {
	case spreadPct >= majorSpreadPct:
		return "major"
	case spreadPct >= moderateSpreadPct:
		return "moderate"
	default:
		return "minor"
	}
}

func recommend(results []ModelResult, spreads []AspectSpread) []string {
	var recs []string

	mostConservative := ""
	mostDecoTime := -1.0
	for _, r := range results {
		if r.Profile.TotalDecoTime > mostDecoTime {
			mostDecoTime = r.Profile.TotalDecoTime
			mostConservative = r.Model
		}
	}
	if mostConservative != "" {
		recs = append(recs, fmt.Sprintf("%s is the most conservative model by total decompression time", mostConservative))
	}

	for _, r := range results {
		dangerCount := 0
		for _, w := range r.Profile.Warnings {
			if string(w.Level) == "danger" {
				dangerCount++
			}
		}
		if dangerCount > 0 {
			recs = append(recs, fmt.Sprintf("%s raised %d danger-level warning(s); review before use", r.Model, dangerCount))
		}
	}

	for _, s := range spreads {
		if s.Classification == "major" {
			recs = append(recs, fmt.Sprintf("%s shows major disagreement (%.0f%%) across models", s.Aspect, s.SpreadPct))
		}
	}

	return recs
}
