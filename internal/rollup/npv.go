package rollup

import (
	"math"

	"github.com/elemental-power/epoch/internal/simulator"
	"github.com/elemental-power/epoch/internal/taskdata"
)

type replacementSchedule struct {
	capexCost float64
	age       float64
	lifetime  float64
}

func schedules(task *taskdata.TaskData) []replacementSchedule {
	model := task.Config.CapexModel
	var out []replacementSchedule
	add := func(base taskdata.ComponentBase, cost float64) {
		if base.LifetimeYears <= 0 {
			return
		}
		out = append(out, replacementSchedule{capexCost: cost, age: base.AgeYears, lifetime: base.LifetimeYears})
	}
	for _, p := range task.SolarPanels {
		add(p.ComponentBase, model.Solar.Capex.Cost(p.PeakKWp))
	}
	if task.ESS != nil {
		add(task.ESS.ComponentBase, model.Battery.Capex.Cost(task.ESS.CapacityKWh))
	}
	if task.HeatPump != nil {
		add(task.HeatPump.ComponentBase, model.HeatPump.Capex.Cost(task.HeatPump.RatedPowerKW))
	}
	if task.GasHeater != nil {
		add(task.GasHeater.ComponentBase, model.GasHeater.Capex.Cost(task.GasHeater.CapacityKW))
	}
	if task.EVCharger != nil {
		add(task.EVCharger.ComponentBase, model.EVCharger.Capex.Cost(float64(task.EVCharger.Count)))
	}
	if task.DHW != nil {
		add(task.DHW.ComponentBase, model.DHWCylinder.Capex.Cost(task.DHW.VolumeLitres))
	}
	return out
}

// ComputeNPV discounts the scenario's annual cost stream over
// npv_time_horizon years, adding component replacement CAPEX at
// max(lifetime-age,0) + k*lifetime and crediting the pro-rata residual
// value of each component's remaining life at the horizon's end
// (spec.md §4.6).
func ComputeNPV(task *taskdata.TaskData, result *simulator.SimulationResult, opex OpexBreakdown) float64 {
	horizon := task.Config.NPVTimeHorizon
	discount := task.Config.NPVDiscountFactor
	if horizon <= 0 {
		return 0
	}
	annualCost := result.MeterCostGBP() + opex.Total
	scheds := schedules(task)

	npv := 0.0
	for y := 0; y < horizon; y++ {
		cost := annualCost
		for _, s := range scheds {
			firstReplace := math.Max(s.lifetime-s.age, 0)
			for k := 0; ; k++ {
				year := firstReplace + float64(k)*s.lifetime
				if year >= float64(horizon) {
					break
				}
				if int(year) == y {
					cost += s.capexCost
				}
			}
		}
		npv += cost / math.Pow(1+discount, float64(y))
	}

	residual := 0.0
	for _, s := range scheds {
		installYear := -s.age
		for installYear+s.lifetime <= float64(horizon) {
			installYear += s.lifetime
		}
		ageAtHorizon := float64(horizon) - installYear
		remainingFraction := 1 - ageAtHorizon/s.lifetime
		if remainingFraction > 0 {
			residual += s.capexCost * remainingFraction
		}
	}
	npv -= residual / math.Pow(1+discount, float64(horizon))

	return npv
}
