package rollup

import (
	"math"

	"github.com/elemental-power/epoch/internal/sitedata"
	"github.com/elemental-power/epoch/internal/simulator"
	"github.com/elemental-power/epoch/internal/taskdata"
)

// ScenarioComparison is the full set of scalar metrics spec.md §4.6
// produces for one scenario, relative to the baseline.
type ScenarioComparison struct {
	Capex   CapexBreakdown
	Opex    OpexBreakdown
	Carbon  CarbonBalance
	SAP     SAPRatings
	NPVGBP  float64

	OperatingBalanceGBP float64 // baseline total annual cost minus scenario total annual cost ("savings")
	PaybackYears        float64
	PaybackUndefined    bool // true when operating_balance <= 0: JSON has no native Infinity
	ROI                 float64

	AnnualisedCostGBP float64 // capex amortised over npv_time_horizon, plus annual opex
	CarbonBalanceKg   float64 // baseline combined carbon minus scenario combined carbon ("carbon saved")
}

// Compare folds a scenario's SimulationResult against the baseline's
// into the metrics spec.md §4.6 names. baselineResult must come from
// simulating Baseline(site, task.Config, task.Grid) against the same
// SiteData.
func Compare(site *sitedata.SiteData, task *taskdata.TaskData, result *simulator.SimulationResult, baselineTask *taskdata.TaskData, baselineResult *simulator.SimulationResult) *ScenarioComparison {
	capex := ComputeCapex(task, site)
	opex := ComputeOpex(task)
	carbon := ComputeCarbon(result)

	baselineOpex := ComputeOpex(baselineTask)
	baselineCarbon := ComputeCarbon(baselineResult)

	scenarioAnnual := result.MeterCostGBP() + opex.Total
	baselineAnnual := baselineResult.MeterCostGBP() + baselineOpex.Total
	operatingBalance := baselineAnnual - scenarioAnnual

	c := &ScenarioComparison{
		Capex:               capex,
		Opex:                opex,
		Carbon:              carbon,
		SAP:                 ComputeSAPRatings(carbon.CombinedKg, baselineCarbon.CombinedKg, scenarioAnnual, baselineAnnual),
		NPVGBP:              ComputeNPV(task, result, opex),
		OperatingBalanceGBP: operatingBalance,
	}

	if operatingBalance > 0 {
		c.PaybackYears = capex.Total / operatingBalance
	} else {
		c.PaybackUndefined = true
		c.PaybackYears = math.Inf(1)
	}

	if capex.Total > 0 {
		c.ROI = operatingBalance/capex.Total - 1
	}

	if task.Config.NPVTimeHorizon > 0 {
		c.AnnualisedCostGBP = capex.Total/float64(task.Config.NPVTimeHorizon) + opex.Total
	} else {
		c.AnnualisedCostGBP = opex.Total
	}
	c.CarbonBalanceKg = baselineCarbon.CombinedKg - carbon.CombinedKg

	return c
}
