package components

import (
	"math"

	"github.com/elemental-power/epoch/internal/epocherr"
	"github.com/elemental-power/epoch/internal/epochconst"
	"github.com/elemental-power/epoch/internal/sitedata"
	"github.com/elemental-power/epoch/internal/taskdata"
)

// HeatResult reports one timestep's heat-production phase (spec.md
// §4.1 phase 3): the heat pump services as much of the demand as its
// lookup-table operating point allows, the gas heater covers the
// remainder up to its capacity, and whatever is still unmet accrues to
// Heat_shortfall.
type HeatResult struct {
	ElecDemand float64 // electrical draw from the heat pump, added to Elec_e
	GasKWh     float64 // gas burned (scope 1), assumed unity combustion efficiency
	Shortfall  float64
}

// StepHeatProduction drives the ASHP (if present) then the gas heater
// (if present) against heatDemand, in that order.
func StepHeatProduction(hp *taskdata.HeatPumpConfig, gas *taskdata.GasHeaterConfig, heatDemand, airTemp float64, ashpOutput, ashpInput sitedata.ASHPTable, intervalHours float64) (HeatResult, error) {
	remaining := heatDemand
	var res HeatResult

	if hp != nil {
		outputRateKW, err := ashpOutput.Lookup(airTemp, hp.SendTempC)
		if err != nil {
			return res, epocherr.Wrap(epocherr.KindNumericFailure, "ashp output lookup", err)
		}
		inputRateKW, err := ashpInput.Lookup(airTemp, hp.SendTempC)
		if err != nil {
			return res, epocherr.Wrap(epocherr.KindNumericFailure, "ashp input lookup", err)
		}
		maxHeat := outputRateKW * intervalHours
		delivered := math.Min(math.Max(remaining, 0), maxHeat)
		if outputRateKW > 0 {
			res.ElecDemand = delivered / outputRateKW * inputRateKW
		}
		remaining -= delivered
	}

	if gas != nil && remaining > 0 {
		gasMax := gas.CapacityKW * intervalHours
		delivered := math.Min(remaining, gasMax)
		res.GasKWh = delivered
		remaining -= delivered
	}

	if remaining > 0 {
		res.Shortfall = remaining
	}
	return res, nil
}

// ScopeOneEmissionFactor returns the kg CO2e/kWh factor for burning the
// configured gas type on-site (spec.md §4.6).
func ScopeOneEmissionFactor(gas *taskdata.GasHeaterConfig) float64 {
	if gas == nil {
		return 0
	}
	if gas.GasType == taskdata.GasTypeLPG {
		return epochconst.EmissionFactorLPG
	}
	return epochconst.EmissionFactorNaturalGas
}
