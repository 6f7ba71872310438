package components

import "github.com/elemental-power/epoch/internal/taskdata"

// BuildingLoad selects timestep t's electrical and heat load, per
// spec.md §4.2: fabric_intervention_index 0 uses building_hload
// directly; index k>0 uses fabric_interventions[k-1].reduced_hload.
// Scalars are applied elementwise after series selection.
func BuildingLoad(cfg taskdata.BuildingConfig, buildingEload, buildingHload []float64, fabricReducedHload [][]float64, t int) (eload, hload float64) {
	eload = buildingEload[t] * scalarOrOne(cfg.EloadScalar)
	hloadSeries := buildingHload
	if cfg.FabricInterventionIndex > 0 {
		hloadSeries = fabricReducedHload[cfg.FabricInterventionIndex-1]
	}
	hload = hloadSeries[t] * scalarOrOne(cfg.HloadScalar)
	return eload, hload
}

// scalarOrOne treats a zero-value scalar as "not configured" => 1.0,
// so a TaskData built with Go zero values behaves as an unscaled
// building rather than one with zero demand.
func scalarOrOne(s float64) float64 {
	if s == 0 {
		return 1.0
	}
	return s
}
