// Package costmodel implements the piecewise-linear CAPEX/OPEX rate
// tables and the scenario-level cost configuration (TaskConfig).
package costmodel

import "github.com/elemental-power/epoch/internal/epocherr"

// Segment is one piece of a piecewise-linear cost curve: for units up to
// Upper, the marginal Rate applies.
type Segment struct {
	Upper float64 `yaml:"upper" json:"upper"`
	Rate  float64 `yaml:"rate" json:"rate"`
}

// PiecewiseCostModel computes total cost for n units as
// fixed_cost + sum of segment contributions + final_rate * (n - last_upper)_+.
// Segments must be strictly increasing by Upper.
type PiecewiseCostModel struct {
	FixedCost  float64   `yaml:"fixed_cost" json:"fixed_cost"`
	Segments   []Segment `yaml:"segments" json:"segments"`
	FinalRate  float64   `yaml:"final_rate" json:"final_rate"`
}

// Validate checks the strictly-increasing-Upper invariant.
func (m PiecewiseCostModel) Validate() error {
	prev := 0.0
	for i, seg := range m.Segments {
		if i > 0 && seg.Upper <= prev {
			return epocherr.New(epocherr.KindInvalidParamRange, "piecewise cost model segments must be strictly increasing by upper")
		}
		prev = seg.Upper
	}
	return nil
}

// Cost returns the total cost of n units (n >= 0).
func (m PiecewiseCostModel) Cost(n float64) float64 {
	if n <= 0 {
		return m.FixedCost
	}
	total := m.FixedCost
	lower := 0.0
	for _, seg := range m.Segments {
		if n <= lower {
			return total
		}
		upper := seg.Upper
		amount := n
		if amount > upper {
			amount = upper
		}
		total += (amount - lower) * seg.Rate
		lower = upper
		if n <= upper {
			return total
		}
	}
	total += (n - lower) * m.FinalRate
	return total
}
