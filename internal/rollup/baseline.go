package rollup

import (
	"github.com/elemental-power/epoch/internal/epochconst"
	"github.com/elemental-power/epoch/internal/sitedata"
	"github.com/elemental-power/epoch/internal/taskdata"
)

// Baseline builds the comparison scenario spec.md §9 resolves as "no
// optional components, fabric_intervention_index 0, and an incumbent
// gas heater servicing 100% of building_hload." It is computed once
// per search and reused for every scenario's comparison.
func Baseline(site *sitedata.SiteData, cfg taskdata.TaskConfig, grid taskdata.GridConfig) *taskdata.TaskData {
	maxHload := 0.0
	for _, h := range site.BuildingHload {
		if h > maxHload {
			maxHload = h
		}
	}
	intervalHours := site.IntervalHours()
	capacityKW := maxHload
	if intervalHours > 0 {
		capacityKW = maxHload / intervalHours
	}

	return &taskdata.TaskData{
		Building: taskdata.BuildingConfig{EloadScalar: 1, HloadScalar: 1},
		Grid:     grid,
		GasHeater: &taskdata.GasHeaterConfig{
			ComponentBase: taskdata.ComponentBase{
				Incumbent:     true,
				LifetimeYears: epochconst.DefaultLifetimeGasHeaterYears,
			},
			GasType:    taskdata.GasTypeNatural,
			CapacityKW: capacityKW,
		},
		Config: cfg,
	}
}
