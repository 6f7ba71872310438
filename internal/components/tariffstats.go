// Package components implements the per-timestep behaviour of every
// energy component in spec.md §4: building/fabric load selection, the
// DHW cylinder, the battery (ESS), the heat pump + gas heater pair,
// solar generation, flexible loads (EV chargers, data centre), the
// low-priority MOP load, and grid settlement. Each component is a
// small, allocation-light struct/function pair that the simulator
// drives in the fixed phase order spec.md §4.1 mandates; there are no
// interfaces here, only concrete types dispatched by nil checks on
// TaskData's optional fields.
package components

import (
	"math"
	"sort"

	"github.com/elemental-power/epoch/internal/epochconst"
)

// DayStats is the calendar-day tariff average and percentile shared by
// the DHW top-up charge policy and ESS CONSUME_PLUS (spec.md §4.3/§4.4).
type DayStats struct {
	Average    float64
	Percentile float64
}

// ComputeDayTariffStats precomputes, for every timestep, the average and
// DayTariffPercentile-th value of that timestep's calendar day. stepsPerDay
// is the number of timesteps in a 24h window (e.g. 48 for a half-hourly
// SiteData). The trailing partial day (if the series length is not a
// multiple of stepsPerDay) uses whatever steps it has.
func ComputeDayTariffStats(tariff []float64, stepsPerDay int) []DayStats {
	n := len(tariff)
	out := make([]DayStats, n)
	if stepsPerDay <= 0 {
		return out
	}
	for start := 0; start < n; start += stepsPerDay {
		end := start + stepsPerDay
		if end > n {
			end = n
		}
		window := append([]float64(nil), tariff[start:end]...)
		sort.Float64s(window)
		stats := DayStats{
			Average:    mean(window),
			Percentile: percentileValue(window, epochconst.DayTariffPercentile),
		}
		for t := start; t < end; t++ {
			out[t] = stats
		}
	}
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// percentileValue returns sorted[floor(p*len(sorted))] from a
// pre-sorted slice, with the index clamped to the slice bounds.
func percentileValue(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Floor(p * float64(len(sorted))))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}
