package components

import "github.com/elemental-power/epoch/internal/taskdata"

// Generation returns the combined AC solar yield at timestep t across
// every configured panel orientation (spec.md §4.1 phase 2). Each
// panel indexes into SiteData.SolarYields and scales by YieldScalar.
func Generation(panels []taskdata.SolarPanelConfig, solarYields [][]float64, t int) float64 {
	total := 0.0
	for _, p := range panels {
		scalar := p.YieldScalar
		if scalar == 0 {
			scalar = 1.0
		}
		total += solarYields[p.YieldIndex][t] * scalar
	}
	return total
}
