package rollup

import "github.com/elemental-power/epoch/internal/taskdata"

// OpexBreakdown is the annual running cost per present component
// family, regardless of incumbency — OPEX is the ongoing cost of
// operating a component you already have, not an installation cost
// (spec.md §4.6).
type OpexBreakdown struct {
	Solar          float64
	Battery        float64
	HeatPump       float64
	GasHeater      float64
	EVCharger      float64
	DHWCylinder    float64
	BuildingFabric float64
	Total          float64
}

// ComputeOpex evaluates each family's OPEX PiecewiseCostModel at the
// same sizing quantity used for CAPEX.
func ComputeOpex(task *taskdata.TaskData) OpexBreakdown {
	model := task.Config.OpexModel
	var b OpexBreakdown

	for _, p := range task.SolarPanels {
		b.Solar += model.Solar.Opex.Cost(p.PeakKWp)
	}
	if task.ESS != nil {
		b.Battery = model.Battery.Opex.Cost(task.ESS.CapacityKWh)
	}
	if task.HeatPump != nil {
		b.HeatPump = model.HeatPump.Opex.Cost(task.HeatPump.RatedPowerKW)
	}
	if task.GasHeater != nil {
		b.GasHeater = model.GasHeater.Opex.Cost(task.GasHeater.CapacityKW)
	}
	if task.EVCharger != nil {
		b.EVCharger = model.EVCharger.Opex.Cost(float64(task.EVCharger.Count))
	}
	if task.DHW != nil {
		b.DHWCylinder = model.DHWCylinder.Opex.Cost(task.DHW.VolumeLitres)
	}
	if task.Building.FabricInterventionIndex > 0 {
		b.BuildingFabric = model.BuildingFabric.Opex.Cost(1)
	}

	b.Total = b.Solar + b.Battery + b.HeatPump + b.GasHeater + b.EVCharger + b.DHWCylinder + b.BuildingFabric
	return b
}
