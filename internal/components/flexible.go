package components

import (
	"math"

	"github.com/elemental-power/epoch/internal/epochconst"
)

// FutureEnergyEstimate is the mean of (building_eload - aggregateSolar)
// over the horizon steps following t, clipped at the series end
// (SPEC_FULL.md §4 expansion of spec.md §4.1 phase 4). horizon <= 0
// falls back to epochconst.DataCentreLookaheadSteps.
func FutureEnergyEstimate(buildingEload, aggregateSolar []float64, t, horizon int) float64 {
	if horizon <= 0 {
		horizon = epochconst.DataCentreLookaheadSteps
	}
	start := t + 1
	end := start + horizon
	n := len(buildingEload)
	if end > n {
		end = n
	}
	if start >= end {
		return 0
	}
	sum := 0.0
	count := 0
	for i := start; i < end; i++ {
		sum += buildingEload[i] - aggregateSolar[i]
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// StepFlexibleLoad throttles a flexible load (EV charger fleet or data
// centre) to the headroom between the import cap and the sum of this
// timestep's net demand so far and the future-energy estimate, delivering its
// full target draw when headroom allows (spec.md §4.1 phase 4).
func StepFlexibleLoad(targetPowerKW float64, elecSoFar, futureEnergy, importCapKW, intervalHours float64) float64 {
	target := targetPowerKW * intervalHours
	if target <= 0 {
		return 0
	}
	headroom := importCapKW*intervalHours - math.Max(elecSoFar+futureEnergy, 0)
	if headroom <= 0 {
		return 0
	}
	return math.Min(target, headroom)
}
