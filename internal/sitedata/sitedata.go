// Package sitedata holds the immutable per-site inputs to a simulation:
// a fixed year of load, weather, tariff, solar yield, and heat-pump
// performance data, all sharing a common timestep grid. A SiteData value
// is loaded once and shared read-only across every worker in a search.
package sitedata

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/elemental-power/epoch/internal/epocherr"
)

// FabricIntervention is a building-fabric retrofit option. Index 0 in
// SiteData.FabricInterventions corresponds to TaskData fabric index 1;
// TaskData fabric index 0 means "use BuildingHload directly" (see
// spec.md §4.2/§9 — preserved for SiteData JSON compatibility).
type FabricIntervention struct {
	Cost          float64   `json:"cost"`
	ReducedHload  []float64 `json:"reduced_hload"`
}

// ASHPTable is a rectangular lookup table indexed by air temperature
// (rows) and send temperature (columns).
type ASHPTable struct {
	AirTemps  []float64   `json:"air_temps"`  // row coordinates, strictly increasing
	SendTemps []float64   `json:"send_temps"` // column coordinates, strictly increasing
	Values    [][]float64 `json:"values"`     // Values[row][col]
}

// SiteData is immutable after Load/Validate succeeds.
type SiteData struct {
	StartTS           time.Time `json:"start_ts"`
	EndTS             time.Time `json:"end_ts"`
	TimestepIntervalS float64   `json:"timestep_interval_s"`

	BuildingEload []float64 `json:"building_eload"`
	BuildingHload []float64 `json:"building_hload"`
	EVEload       []float64 `json:"ev_eload"`
	DHWDemand     []float64 `json:"dhw_demand"`
	AirTemperature []float64 `json:"air_temperature"`
	GridCO2       []float64 `json:"grid_co2"`

	SolarYields  [][]float64           `json:"solar_yields"`
	ImportTariffs [][]float64          `json:"import_tariffs"`
	FabricInterventions []FabricIntervention `json:"fabric_interventions"`

	ASHPInputTable  ASHPTable `json:"ashp_input_table"`
	ASHPOutputTable ASHPTable `json:"ashp_output_table"`
}

// Timesteps returns the number of simulated timesteps.
func (s *SiteData) Timesteps() int {
	if s.TimestepIntervalS <= 0 {
		return 0
	}
	return int(s.EndTS.Sub(s.StartTS).Seconds() / s.TimestepIntervalS)
}

// IntervalHours is the timestep length in hours.
func (s *SiteData) IntervalHours() float64 {
	return s.TimestepIntervalS / 3600.0
}

// Load reads and validates a SiteData JSON document from path.
func Load(path string) (*SiteData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, epocherr.Wrap(epocherr.KindInvalidSiteData, "read site data file", err)
	}
	var s SiteData
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, epocherr.Wrap(epocherr.KindInvalidSiteData, "parse site data JSON", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every length invariant from spec.md §3. It does not
// mutate the receiver.
func (s *SiteData) Validate() error {
	n := s.Timesteps()
	if n <= 0 {
		return epocherr.New(epocherr.KindInvalidSiteData, "timesteps must be positive (check start_ts/end_ts/timestep_interval_s)")
	}

	checkLen := func(name string, got int) error {
		if got != n {
			return epocherr.New(epocherr.KindInvalidSiteData, fmt.Sprintf("%s has length %d, want %d", name, got, n))
		}
		return nil
	}
	if err := checkLen("building_eload", len(s.BuildingEload)); err != nil {
		return err
	}
	if err := checkLen("building_hload", len(s.BuildingHload)); err != nil {
		return err
	}
	if err := checkLen("ev_eload", len(s.EVEload)); err != nil {
		return err
	}
	if err := checkLen("dhw_demand", len(s.DHWDemand)); err != nil {
		return err
	}
	if err := checkLen("air_temperature", len(s.AirTemperature)); err != nil {
		return err
	}
	if err := checkLen("grid_co2", len(s.GridCO2)); err != nil {
		return err
	}
	for i, ser := range s.SolarYields {
		if err := checkLen(fmt.Sprintf("solar_yields[%d]", i), len(ser)); err != nil {
			return err
		}
	}
	for i, ser := range s.ImportTariffs {
		if err := checkLen(fmt.Sprintf("import_tariffs[%d]", i), len(ser)); err != nil {
			return err
		}
	}
	for i, fi := range s.FabricInterventions {
		if err := checkLen(fmt.Sprintf("fabric_interventions[%d].reduced_hload", i), len(fi.ReducedHload)); err != nil {
			return err
		}
	}
	if len(s.ASHPInputTable.Values) != len(s.ASHPInputTable.AirTemps) {
		return epocherr.New(epocherr.KindInvalidSiteData, "ashp_input_table row count mismatch")
	}
	if len(s.ASHPOutputTable.Values) != len(s.ASHPOutputTable.AirTemps) {
		return epocherr.New(epocherr.KindInvalidSiteData, "ashp_output_table row count mismatch")
	}
	for _, tbl := range []ASHPTable{s.ASHPInputTable, s.ASHPOutputTable} {
		for i, row := range tbl.Values {
			if len(row) != len(tbl.SendTemps) {
				return epocherr.New(epocherr.KindInvalidSiteData, fmt.Sprintf("ashp table row %d has %d cols, want %d", i, len(row), len(tbl.SendTemps)))
			}
		}
	}
	return nil
}

// ValidIndex reports whether i is a valid index into a slice of length n.
func ValidIndex(i, n int) bool { return i >= 0 && i < n }
