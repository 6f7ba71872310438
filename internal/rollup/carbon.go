package rollup

import "github.com/elemental-power/epoch/internal/simulator"

// CarbonBalance is the scope 1 / scope 2 split required by spec.md §3's
// invariant combined_carbon_balance = scope_1 + scope_2.
type CarbonBalance struct {
	Scope1Kg   float64
	Scope2Kg   float64
	CombinedKg float64
}

// ComputeCarbon reads the scope totals the simulator already
// accumulated during the balance loop.
func ComputeCarbon(result *simulator.SimulationResult) CarbonBalance {
	return CarbonBalance{
		Scope1Kg:   result.CarbonScope1KgTotal(),
		Scope2Kg:   result.CarbonScope2KgTotal,
		CombinedKg: result.CombinedCarbonBalanceKg(),
	}
}
