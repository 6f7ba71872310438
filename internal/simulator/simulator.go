// Package simulator drives the half-hourly energy-balance loop
// described in spec.md §4.1: six strictly ordered phases per timestep,
// run by Simulator.Simulate against an immutable SiteData and a single
// TaskData. The loop is pure with respect to SiteData and deterministic
// for a given TaskData — summation always proceeds in timestep order.
package simulator

import (
	"math"

	"github.com/elemental-power/epoch/internal/components"
	"github.com/elemental-power/epoch/internal/epocherr"
	"github.com/elemental-power/epoch/internal/sitedata"
	"github.com/elemental-power/epoch/internal/taskdata"
)

// Mode selects whether Simulate collects ReportData.
type Mode int

const (
	ResultOnly Mode = iota
	FullReporting
)

// ReportData is per-timestep series produced only in FullReporting
// mode (spec.md §3).
type ReportData map[string][]float64

// SimulationResult is the scalar (and, optionally, series) output of
// one scenario's simulation — the "flows" that internal/rollup turns
// into cost, carbon, and finance metrics.
type SimulationResult struct {
	Timesteps int

	ImportKWh         float64
	ExportKWh         float64
	ImportCostGBP     float64
	ExportRevenueGBP  float64
	ImportShortfallKWh float64
	CurtailedExportKWh float64

	HeatShortfallKWh float64
	DHWShortfallKWh  float64

	GasKWhTotal      float64
	ScopeOneFactor   float64 // kg CO2e / kWh of gas burned
	CarbonScope2KgTotal float64 // Σ import*grid_co2 − Σ export*grid_co2

	ReportData ReportData // nil unless mode == FullReporting
}

// MeterCostGBP is the net cost of the grid meter: import spend minus
// export revenue (spec.md §4.5/§4.6).
func (r *SimulationResult) MeterCostGBP() float64 {
	return r.ImportCostGBP - r.ExportRevenueGBP
}

// CarbonScope1KgTotal is the on-site combustion carbon (spec.md §4.6).
func (r *SimulationResult) CarbonScope1KgTotal() float64 {
	return r.GasKWhTotal * r.ScopeOneFactor
}

// CombinedCarbonBalanceKg is scope_1 + scope_2, an invariant from spec.md §3.
func (r *SimulationResult) CombinedCarbonBalanceKg() float64 {
	return r.CarbonScope1KgTotal() + r.CarbonScope2KgTotal
}

// Simulator binds a SiteData for repeated simulation of many TaskData
// values; it holds no per-scenario mutable state, so one Simulator is
// safely shared (read-only) across every worker in a search.
type Simulator struct {
	Site *sitedata.SiteData
}

// New constructs a Simulator over an already-validated SiteData.
func New(site *sitedata.SiteData) *Simulator {
	return &Simulator{Site: site}
}

// Simulate runs task end-to-end against the bound SiteData. It
// validates task first (spec.md §4.1 "Validation"); an invalid task
// fails fast with epocherr.KindInvalidTaskData and performs no
// simulation work.
func (s *Simulator) Simulate(task *taskdata.TaskData, mode Mode) (*SimulationResult, error) {
	if err := task.Validate(s.Site); err != nil {
		return nil, err
	}

	site := s.Site
	n := site.Timesteps()
	intervalHours := site.IntervalHours()

	stepsPerDay := int(86400.0 / site.TimestepIntervalS)
	tariffSeries := site.ImportTariffs[task.Grid.TariffIndex]
	dayStats := components.ComputeDayTariffStats(tariffSeries, stepsPerDay)

	aggregateSolar := make([]float64, n)
	for t := 0; t < n; t++ {
		aggregateSolar[t] = components.Generation(task.SolarPanels, site.SolarYields, t)
	}

	var fabricSeries [][]float64
	if len(site.FabricInterventions) > 0 {
		fabricSeries = make([][]float64, len(site.FabricInterventions))
		for i, fi := range site.FabricInterventions {
			fabricSeries[i] = fi.ReducedHload
		}
	}

	var dhwState *components.DHWState
	if task.DHW != nil {
		dhwState = components.NewDHWState(*task.DHW)
	}
	var essState *components.ESSState
	if task.ESS != nil {
		essState = components.NewESSState(*task.ESS)
	}

	result := &SimulationResult{
		Timesteps:      n,
		ScopeOneFactor: components.ScopeOneEmissionFactor(task.GasHeater),
	}

	lookahead := 0
	if task.DataCentre != nil {
		lookahead = task.DataCentre.LookaheadSteps
	}

	var report ReportData
	if mode == FullReporting {
		report = newReportData(n)
	}

	importCapKW := task.Grid.ImportLimitKW * (1 - task.Grid.ImportHeadroom)

	// prevNetElec is the site's net electrical position (demand positive,
	// surplus negative) after generation and dispatch settled last
	// timestep. DHW runs in phase 1, before this timestep's own solar
	// injection (phase 2), so the surplus-diversion charge policy
	// (spec.md §4.3) looks at the previous timestep's settled position
	// rather than a same-timestep value that can't yet be known.
	prevNetElec := 0.0

	for t := 0; t < n; t++ {
		tariff := tariffSeries[t]

		// Phase 1: building/EV/DHW demand placement.
		eload, hload := components.BuildingLoad(task.Building, site.BuildingEload, site.BuildingHload, fabricSeries, t)
		elec := eload + site.EVEload[t]
		heatDemand := hload

		var dhwRes components.DHWResult
		if task.DHW != nil {
			hpPower := 0.0
			if task.HeatPump != nil {
				hpPower = task.HeatPump.RatedPowerKW
			}
			dhwRes = dhwState.Step(*task.DHW, site.DHWDemand[t], tariff, dayStats[t], prevNetElec, hpPower, intervalHours)
			elec += dhwRes.ElecDelta
			result.DHWShortfallKWh += dhwRes.Shortfall
		}

		// Phase 2: generation injection.
		elec -= aggregateSolar[t]

		// Phase 3: heat production.
		heatRes, err := components.StepHeatProduction(task.HeatPump, task.GasHeater, heatDemand, site.AirTemperature[t], site.ASHPOutputTable, site.ASHPInputTable, intervalHours)
		if err != nil {
			return nil, err
		}
		elec += heatRes.ElecDemand
		result.GasKWhTotal += heatRes.GasKWh
		result.HeatShortfallKWh += heatRes.Shortfall

		// Phase 4: flexible loads.
		futureEnergy := components.FutureEnergyEstimate(site.BuildingEload, aggregateSolar, t, lookahead)
		if task.DataCentre != nil {
			elec += components.StepFlexibleLoad(task.DataCentre.PowerKW, elec, futureEnergy, importCapKW, intervalHours)
		}
		if task.EVCharger != nil {
			totalPower := task.EVCharger.PowerKW * float64(task.EVCharger.Count)
			elec += components.StepFlexibleLoad(totalPower, elec, futureEnergy, importCapKW, intervalHours)
		}

		// Phase 5: ESS dispatch.
		var essRes components.ESSResult
		if task.ESS != nil {
			futureHeadroom := importCapKW*intervalHours - math.Max(elec+futureEnergy, 0)
			essRes = essState.Step(*task.ESS, elec, tariff, dayStats[t], futureHeadroom, intervalHours)
			elec += essRes.ElecDelta
		}

		// MOP soaks remaining export-bound surplus before settlement.
		var mopDraw float64
		if task.MOP != nil {
			mopDraw = components.StepMOP(task.MOP.PowerKW, elec, intervalHours)
			elec += mopDraw
		}

		// Phase 6: grid settlement.
		gridRes := components.Settle(elec, task.Grid, tariff, intervalHours)
		result.ImportKWh += gridRes.Import
		result.ExportKWh += gridRes.Export
		result.ImportCostGBP += gridRes.Cost
		result.ExportRevenueGBP += gridRes.Revenue
		result.ImportShortfallKWh += gridRes.ImportShortfall
		result.CurtailedExportKWh += gridRes.CurtailedExport
		result.CarbonScope2KgTotal += (gridRes.Import - gridRes.Export) * site.GridCO2[t]

		if report != nil {
			appendStep(report, t, eload, hload, elec, dhwRes, essRes, heatRes, gridRes, mopDraw, aggregateSolar[t])
		}

		prevNetElec = elec
	}

	if math.IsNaN(result.CombinedCarbonBalanceKg()) || math.IsInf(result.MeterCostGBP(), 0) {
		return nil, epocherr.New(epocherr.KindNumericFailure, "simulation produced a non-finite metric")
	}

	result.ReportData = report
	return result, nil
}
