// Package rollup turns a simulator.SimulationResult and its TaskData
// into the scalar metrics spec.md §4.6 describes: CAPEX/OPEX
// breakdowns, carbon scope 1/2, NPV, SAP EI/EC ratings, payback, and
// ROI, each compared against a computed baseline scenario.
package rollup

import (
	"github.com/elemental-power/epoch/internal/sitedata"
	"github.com/elemental-power/epoch/internal/taskdata"
)

// CapexBreakdown is the one-off installation cost per present,
// non-incumbent component family (spec.md §4.6). BuildingFabric is a
// fixed cost from SiteData, not a PiecewiseCostModel evaluation.
type CapexBreakdown struct {
	Solar          float64
	Battery        float64
	HeatPump       float64
	GasHeater      float64
	EVCharger      float64
	DHWCylinder    float64
	BuildingFabric float64
	FundingCredit  float64 // subtracted from Total: BUS grant + general grant
	Total          float64
}

// ComputeCapex sums PiecewiseCostModel.Cost(sizing) for every present,
// non-incumbent component, then subtracts BUS and general grant
// funding (spec.md §4.6).
func ComputeCapex(task *taskdata.TaskData, site *sitedata.SiteData) CapexBreakdown {
	model := task.Config.CapexModel
	var b CapexBreakdown

	for _, p := range task.SolarPanels {
		if !p.Incumbent {
			b.Solar += model.Solar.Capex.Cost(p.PeakKWp)
		}
	}
	if task.ESS != nil && !task.ESS.Incumbent {
		b.Battery = model.Battery.Capex.Cost(task.ESS.CapacityKWh)
	}
	if task.HeatPump != nil && !task.HeatPump.Incumbent {
		b.HeatPump = model.HeatPump.Capex.Cost(task.HeatPump.RatedPowerKW)
	}
	if task.GasHeater != nil && !task.GasHeater.Incumbent {
		b.GasHeater = model.GasHeater.Capex.Cost(task.GasHeater.CapacityKW)
	}
	if task.EVCharger != nil && !task.EVCharger.Incumbent {
		b.EVCharger = model.EVCharger.Capex.Cost(float64(task.EVCharger.Count))
	}
	if task.DHW != nil && !task.DHW.Incumbent {
		b.DHWCylinder = model.DHWCylinder.Capex.Cost(task.DHW.VolumeLitres)
	}
	if task.Building.FabricInterventionIndex > 0 {
		idx := task.Building.FabricInterventionIndex - 1
		if idx < len(site.FabricInterventions) {
			b.BuildingFabric = site.FabricInterventions[idx].Cost
		}
	}

	if task.HeatPump != nil && task.GasHeater != nil && task.Config.UseBoilerUpgradeScheme {
		b.FundingCredit += task.Config.CapexModel.BoilerUpgradeSchemeGrant
	}
	b.FundingCredit += task.Config.GeneralGrantFunding

	b.Total = b.Solar + b.Battery + b.HeatPump + b.GasHeater + b.EVCharger + b.DHWCylinder + b.BuildingFabric - b.FundingCredit
	return b
}
