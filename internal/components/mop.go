package components

import "math"

// StepMOP soaks up export-bound surplus after ESS dispatch, before
// grid settlement, up to powerKW*interval, at zero marginal cost
// (SPEC_FULL.md §4 expansion — the MOP component is named but not
// specified in spec.md §4). It never draws on a net-demand timestep.
func StepMOP(powerKW float64, elecBeforeMOP, intervalHours float64) float64 {
	if elecBeforeMOP >= 0 || powerKW <= 0 {
		return 0
	}
	surplus := -elecBeforeMOP
	maxDraw := powerKW * intervalHours
	return math.Min(surplus, maxDraw)
}
