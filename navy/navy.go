// Package navy implements a table-driven approximation of the US Navy
// standard air decompression tables: lookup by depth tier and bottom
// time, with conservative rounding and a repetitive group side output.
package navy

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/m5lapp/divengine/gasmix"
	"github.com/m5lapp/divengine/profile"
)

// AscentRate is the Navy table's fixed ascent rate between stops.
const AscentRate = 9.0

const airO2Tolerance = 0.01

// stopSpec is one fixed stop in a table entry, shallowest last.
type stopSpec struct {
	DepthM   float64
	Duration float64
}

// entry is one depth/bottom-time row of the table.
type entry struct {
	BottomTimeMin float64
	Stops         []stopSpec
	Group         string
}

// tiers are the supported depth tiers in metres, shallowest first.
var tiers = []float64{12, 15, 18, 21, 24, 27, 30, 33, 36, 39, 42}

// table holds, for each depth tier, entries ordered by increasing bottom
// time. Stop schedules and repetitive groups grow more conservative as
// depth and bottom time increase; this is a representative, internally
// consistent approximation rather than a reproduction of the historical
// printed tables.
var table = map[float64][]entry{
	12: {
		{BottomTimeMin: 60, Stops: nil, Group: "E"},
		{BottomTimeMin: 100, Stops: nil, Group: "G"},
		{BottomTimeMin: 150, Stops: []stopSpec{{DepthM: 3, Duration: 5}}, Group: "J"},
	},
	15: {
		{BottomTimeMin: 45, Stops: nil, Group: "F"},
		{BottomTimeMin: 80, Stops: []stopSpec{{DepthM: 3, Duration: 5}}, Group: "I"},
		{BottomTimeMin: 120, Stops: []stopSpec{{DepthM: 3, Duration: 12}}, Group: "L"},
	},
	18: {
		{BottomTimeMin: 35, Stops: nil, Group: "F"},
		{BottomTimeMin: 60, Stops: nil, Group: "J"},
		{BottomTimeMin: 100, Stops: []stopSpec{{DepthM: 3, Duration: 21}}, Group: "M"},
	},
	21: {
		{BottomTimeMin: 25, Stops: nil, Group: "F"},
		{BottomTimeMin: 50, Stops: []stopSpec{{DepthM: 3, Duration: 13}}, Group: "K"},
		{BottomTimeMin: 80, Stops: []stopSpec{{DepthM: 3, Duration: 29}}, Group: "N"},
	},
	24: {
		{BottomTimeMin: 20, Stops: nil, Group: "F"},
		{BottomTimeMin: 40, Stops: []stopSpec{{DepthM: 3, Duration: 16}}, Group: "K"},
		{BottomTimeMin: 70, Stops: []stopSpec{{DepthM: 6, Duration: 6}, {DepthM: 3, Duration: 39}}, Group: "O"},
	},
	27: {
		{BottomTimeMin: 15, Stops: nil, Group: "E"},
		{BottomTimeMin: 30, Stops: []stopSpec{{DepthM: 3, Duration: 15}}, Group: "J"},
		{BottomTimeMin: 60, Stops: []stopSpec{{DepthM: 6, Duration: 9}, {DepthM: 3, Duration: 45}}, Group: "P"},
	},
	30: {
		{BottomTimeMin: 12, Stops: nil, Group: "D"},
		{BottomTimeMin: 25, Stops: []stopSpec{{DepthM: 3, Duration: 17}}, Group: "J"},
		{BottomTimeMin: 50, Stops: []stopSpec{{DepthM: 6, Duration: 13}, {DepthM: 3, Duration: 55}}, Group: "Q"},
	},
	33: {
		{BottomTimeMin: 10, Stops: nil, Group: "D"},
		{BottomTimeMin: 20, Stops: []stopSpec{{DepthM: 3, Duration: 18}}, Group: "J"},
		{BottomTimeMin: 40, Stops: []stopSpec{{DepthM: 9, Duration: 3}, {DepthM: 6, Duration: 15}, {DepthM: 3, Duration: 60}}, Group: "Q"},
	},
	36: {
		{BottomTimeMin: 8, Stops: nil, Group: "C"},
		{BottomTimeMin: 18, Stops: []stopSpec{{DepthM: 3, Duration: 19}}, Group: "J"},
		{BottomTimeMin: 30, Stops: []stopSpec{{DepthM: 9, Duration: 5}, {DepthM: 6, Duration: 19}, {DepthM: 3, Duration: 64}}, Group: "Q"},
	},
	39: {
		{BottomTimeMin: 6, Stops: nil, Group: "C"},
		{BottomTimeMin: 15, Stops: []stopSpec{{DepthM: 3, Duration: 20}}, Group: "J"},
		{BottomTimeMin: 25, Stops: []stopSpec{{DepthM: 9, Duration: 7}, {DepthM: 6, Duration: 23}, {DepthM: 3, Duration: 70}}, Group: "R"},
	},
	42: {
		{BottomTimeMin: 5, Stops: nil, Group: "B"},
		{BottomTimeMin: 12, Stops: []stopSpec{{DepthM: 3, Duration: 21}}, Group: "J"},
		{BottomTimeMin: 20, Stops: []stopSpec{{DepthM: 9, Duration: 9}, {DepthM: 6, Duration: 28}, {DepthM: 3, Duration: 80}}, Group: "R"},
	},
}

// Plan looks up a fixed decompression schedule for a single constant-depth
// air dive, rounding depth to the nearest supported tier and bottom time
// up to the nearest tabulated row.
func Plan(depthM, bottomTime float64, gas gasmix.GasMix) (profile.DiveProfile, error) {
	if math.Abs(gas.O2-0.21) > airO2Tolerance {
		return profile.DiveProfile{}, fmt.Errorf("%w: navy tables only support air, got O2=%.3f", profile.ErrTableOutOfRange, gas.O2)
	}
	if depthM > tiers[len(tiers)-1] {
		return profile.DiveProfile{}, fmt.Errorf("%w: depth %.1fm exceeds table range", profile.ErrTableOutOfRange, depthM)
	}

	tier := nearestTier(depthM)
	rows := table[tier]

	chosen := rows[len(rows)-1]
	for _, row := range rows {
		if row.BottomTimeMin >= bottomTime {
			chosen = row
			break
		}
	}

	decoStops := make([]profile.DecompressionStop, 0, len(chosen.Stops)+1)
	runtime := bottomTime + tier/AscentRate
	total := 0.0
	hasShallowStop := false
	for _, s := range chosen.Stops {
		runtime += s.Duration
		total += s.Duration
		decoStops = append(decoStops, profile.DecompressionStop{
			DepthM:     s.DepthM,
			Duration:   s.Duration,
			RuntimeMin: runtime,
			Gas:        gas,
		})
		if s.DepthM == 3 || s.DepthM == profile.SafetyStopDepthM {
			hasShallowStop = true
		}
	}

	if tier >= 12 && !hasShallowStop {
		runtime += 3.0
		total += 3.0
		decoStops = append(decoStops, profile.DecompressionStop{
			DepthM:     profile.SafetyStopDepthM,
			Duration:   3.0,
			RuntimeMin: runtime,
			Gas:        gas,
		})
	}

	warnings := []profile.Warning{{
		Level:   gasmix.SeverityInfo,
		Message: "repetitive group",
		Details: chosen.Group,
	}}

	return profile.DiveProfile{
		PlanID:        uuid.NewString(),
		Model:         "navy-table",
		Stops:         decoStops,
		Segments:      []profile.DiveSegment{{DepthM: tier, Duration: bottomTime, Gas: gas, Tag: profile.TagBottom}},
		Warnings:      warnings,
		TotalDecoTime: total,
		TotalDiveTime: runtime,
		NDL:           noStopLimit(rows),
		MaxDepthM:     tier,
		AvgDepthM:     tier,
	}, nil
}

// Group returns the repetitive group letter chosen for a lookup, without
// needing to re-parse it back out of the profile's warnings.
func Group(depthM, bottomTime float64) (string, error) {
	if depthM > tiers[len(tiers)-1] {
		return "", fmt.Errorf("%w: depth %.1fm exceeds table range", profile.ErrTableOutOfRange, depthM)
	}
	tier := nearestTier(depthM)
	rows := table[tier]
	chosen := rows[len(rows)-1]
	for _, row := range rows {
		if row.BottomTimeMin >= bottomTime {
			chosen = row
			break
		}
	}
	return chosen.Group, nil
}

func nearestTier(depthM float64) float64 {
	best := tiers[0]
	bestDiff := math.Abs(depthM - best)
	for _, tier := range tiers[1:] {
		diff := math.Abs(depthM - tier)
		if diff < bestDiff {
			best = tier
			bestDiff = diff
		}
	}
	return best
}

func noStopLimit(rows []entry) float64 {
	limit := 0.0
	for _, row := range rows {
		if row.Stops == nil && row.BottomTimeMin > limit {
			limit = row.BottomTimeMin
		}
	}
	return limit
}
