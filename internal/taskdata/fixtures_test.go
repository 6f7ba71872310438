package taskdata

import (
	"time"

	"github.com/elemental-power/epoch/internal/sitedata"
)

// minimalSiteDataForValidation builds a small but structurally valid
// SiteData (2 solar series, 2 fabric interventions, 2 import tariff
// series, an ASHP table spanning send_temp_c 45) for Validate tests.
func minimalSiteDataForValidation() *sitedata.SiteData {
	const n = 4
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make([]float64, n)
	site := &sitedata.SiteData{
		StartTS:           start,
		EndTS:             start.Add(time.Duration(n) * 30 * time.Minute),
		TimestepIntervalS: 1800,
		BuildingEload:     series,
		BuildingHload:     series,
		EVEload:           series,
		DHWDemand:         series,
		AirTemperature:    series,
		GridCO2:           series,
		SolarYields:       [][]float64{series, series},
		ImportTariffs:     [][]float64{series, series},
		FabricInterventions: []sitedata.FabricIntervention{
			{Cost: 100, ReducedHload: series},
			{Cost: 200, ReducedHload: series},
		},
		ASHPInputTable: sitedata.ASHPTable{
			AirTemps: []float64{0, 10}, SendTemps: []float64{30, 60},
			Values: [][]float64{{1, 2}, {1.5, 2.5}},
		},
		ASHPOutputTable: sitedata.ASHPTable{
			AirTemps: []float64{0, 10}, SendTemps: []float64{30, 60},
			Values: [][]float64{{3, 4}, {3.5, 4.5}},
		},
	}
	return site
}
