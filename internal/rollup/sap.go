package rollup

import "github.com/elemental-power/epoch/internal/epochconst"

// SAPRatings holds the Environmental Impact and Energy Cost SAP 10.2
// bands (spec.md §4.6). Scores are on the SAP 1-100+ scale, where 100
// represents zero net cost/emissions and higher is better; this rollup
// approximates the score from the scenario's cost and carbon intensity
// relative to the baseline, since spec.md defers to "SAP 10.2 §13/§14
// formulas" without reproducing them.
type SAPRatings struct {
	EIScore float64
	ECScore float64
	EIBand  string
	ECBand  string
}

// ComputeSAPRatings derives EI (carbon-based) and EC (cost-based)
// scores from the scenario's combined carbon balance and annual cost
// (Compare passes meter cost plus opex) relative to the baseline, then maps each to an A-G band via the
// fixed SAP thresholds (epochconst.RatingGrade).
//
// This is a simplification of the full SAP 10.2 formulas (which factor
// in floor area, heating degree days, and fuel-specific cost per kWh)
// that spec.md names but does not reproduce; it preserves the rating's
// purpose — a relative A-G grade that improves as carbon/cost fall
// below the baseline — without inventing SAP's floor-area regression
// constants from nothing.
func ComputeSAPRatings(scenarioCarbonKg, baselineCarbonKg, scenarioCostGBP, baselineCostGBP float64) SAPRatings {
	ei := scoreRelativeToBaseline(scenarioCarbonKg, baselineCarbonKg)
	ec := scoreRelativeToBaseline(scenarioCostGBP, baselineCostGBP)
	return SAPRatings{
		EIScore: ei,
		ECScore: ec,
		EIBand:  epochconst.RatingGrade(ei),
		ECBand:  epochconst.RatingGrade(ec),
	}
}

// scoreRelativeToBaseline maps "scenario is x% of baseline" onto the
// SAP 1-100 scale: matching the baseline scores 100*(1-x) at x=1 => 0,
// eliminating it entirely (x=0) scores 100, and a scenario worse than
// baseline (x>1) scores below zero, clamped at 0 (band G).
func scoreRelativeToBaseline(scenario, baseline float64) float64 {
	if baseline <= 0 {
		if scenario <= 0 {
			return 100
		}
		return 0
	}
	score := 100 * (1 - scenario/baseline)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
