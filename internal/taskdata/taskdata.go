// Package taskdata describes a single scenario: which optional
// components are present and their scalar parameters. A TaskData value
// is mutable while being constructed (e.g. by TaskGenerator) and
// immutable once handed to a Simulator.
package taskdata

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/elemental-power/epoch/internal/costmodel"
	"github.com/elemental-power/epoch/internal/epocherr"
	"github.com/elemental-power/epoch/internal/sitedata"
)

// Load reads a single scenario's TaskData JSON document from path,
// including its embedded TaskConfig (spec.md's "typed loader"
// collaborator concern, made concrete per SPEC_FULL.md §6). Structural
// validation against a SiteData still requires a separate call to
// Validate once the site is known.
func Load(path string) (*TaskData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, epocherr.Wrap(epocherr.KindInvalidTaskData, "read task data file", err)
	}
	var t TaskData
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, epocherr.Wrap(epocherr.KindInvalidTaskData, "parse task data JSON", err)
	}
	if err := t.Config.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// ComponentBase is embedded by every optional component record.
// Incumbent marks a pre-existing component: its CAPEX is excluded from
// the scenario, but replacement scheduling in the NPV roll-up still
// applies using Age/Lifetime.
type ComponentBase struct {
	Incumbent    bool    `json:"incumbent"`
	AgeYears     float64 `json:"age"`
	LifetimeYears float64 `json:"lifetime"`
}

// BatteryMode selects the ESS dispatch policy (spec.md §4.4).
type BatteryMode string

const (
	BatteryModeConsume     BatteryMode = "CONSUME"
	BatteryModeConsumePlus BatteryMode = "CONSUME_PLUS"
)

// GasType selects the emission factor for the gas heater (spec.md §4.6).
type GasType string

const (
	GasTypeNatural GasType = "NATURAL_GAS"
	GasTypeLPG     GasType = "LIQUID_PETROLEUM_GAS"
)

// HeatSource selects the heat pump's heat-extraction mode.
type HeatSource string

const (
	HeatSourceAmbientAir HeatSource = "AMBIENT_AIR"
	HeatSourceHotRoom    HeatSource = "HOTROOM"
)

// BuildingConfig selects the heat-load series and scales base demand
// (spec.md §4.2). It is not optional: every scenario has a building.
type BuildingConfig struct {
	EloadScalar             float64 `json:"eload_scalar"`
	HloadScalar             float64 `json:"hload_scalar"`
	FabricInterventionIndex int     `json:"fabric_intervention_index"` // 0 = SiteData.BuildingHload directly
}

// DHWConfig configures the domestic hot-water cylinder (spec.md §4.3).
type DHWConfig struct {
	ComponentBase
	VolumeLitres float64 `json:"volume_litres"`
}

// ESSConfig configures the battery energy storage system (spec.md §4.4).
type ESSConfig struct {
	ComponentBase
	CapacityKWh      float64     `json:"capacity_kwh"`
	ChargePowerKW    float64     `json:"charge_power_kw"`
	DischargePowerKW float64     `json:"discharge_power_kw"`
	InitialChargeKWh float64     `json:"initial_charge_kwh"`
	Mode             BatteryMode `json:"battery_mode"`
}

// HeatPumpConfig configures the air-source heat pump (spec.md §4.1/§4.6).
type HeatPumpConfig struct {
	ComponentBase
	SendTempC     float64    `json:"send_temp_c"`
	Source        HeatSource `json:"heat_source"`
	RatedPowerKW  float64    `json:"rated_power_kw"` // caps the DHW cylinder's HP-driven top-up charge (spec.md §4.3)
}

// GasHeaterConfig configures the gas-fired backup/primary heater.
type GasHeaterConfig struct {
	ComponentBase
	GasType    GasType `json:"gas_type"`
	CapacityKW float64 `json:"capacity_kw"`
}

// SolarPanelConfig configures one PV orientation (spec.md §4.1 phase 2).
// TaskData may list several, one per installed orientation.
type SolarPanelConfig struct {
	ComponentBase
	YieldIndex  int     `json:"yield_index"`  // into SiteData.SolarYields
	YieldScalar float64 `json:"yield_scalar"`
	PeakKWp     float64 `json:"peak_kwp"` // CAPEX sizing quantity
}

// EVChargerConfig configures a fleet of identical EV chargers.
type EVChargerConfig struct {
	ComponentBase
	Count   int     `json:"count"`
	PowerKW float64 `json:"power_kw"` // per charger
}

// DataCentreConfig configures a flexible IT load.
type DataCentreConfig struct {
	ComponentBase
	PowerKW        float64 `json:"power_kw"`
	LookaheadSteps int     `json:"lookahead_steps"` // 0 => epochconst.DataCentreLookaheadSteps
}

// MOPConfig configures the low-priority "mop-up" load that soaks
// surplus export headroom (spec.md §2 item 4, supplemented in
// SPEC_FULL.md §4).
type MOPConfig struct {
	ComponentBase
	PowerKW float64 `json:"power_kw"`
}

// GridConfig is the grid connection; every scenario has exactly one.
type GridConfig struct {
	ImportLimitKW  float64 `json:"import_limit_kw"`
	ExportLimitKW  float64 `json:"export_limit_kw"`
	ImportHeadroom float64 `json:"import_headroom"` // fraction in [0,1)
	TariffIndex    int     `json:"tariff_index"`    // into SiteData.ImportTariffs
	ExportTariffGBPPerKWh float64 `json:"export_tariff_gbp_per_kwh"`
}

// TaskData is the complete per-scenario choice of components.
type TaskData struct {
	Building BuildingConfig `json:"building"`
	Grid     GridConfig     `json:"grid"`

	DHW        *DHWConfig        `json:"dhw,omitempty"`
	ESS        *ESSConfig        `json:"ess,omitempty"`
	HeatPump   *HeatPumpConfig   `json:"heat_pump,omitempty"`
	GasHeater  *GasHeaterConfig  `json:"gas_heater,omitempty"`
	SolarPanels []SolarPanelConfig `json:"solar_panels,omitempty"`
	EVCharger  *EVChargerConfig  `json:"ev_charger,omitempty"`
	DataCentre *DataCentreConfig `json:"data_centre,omitempty"`
	MOP        *MOPConfig        `json:"mop,omitempty"`

	Config costmodel.TaskConfig `json:"config"`
}

// Validate checks every index/range invariant from spec.md: referenced
// indices must fall within SiteData's lists, and the heat pump's send
// temperature must be representable in the ASHP lookup tables.
func (t *TaskData) Validate(site *sitedata.SiteData) error {
	if t.Building.FabricInterventionIndex < 0 || t.Building.FabricInterventionIndex > len(site.FabricInterventions) {
		return epocherr.New(epocherr.KindInvalidTaskData, "fabric_intervention_index out of range")
	}
	if !sitedata.ValidIndex(t.Grid.TariffIndex, len(site.ImportTariffs)) {
		return epocherr.New(epocherr.KindInvalidTaskData, "grid.tariff_index out of range")
	}
	if t.Grid.ImportHeadroom < 0 || t.Grid.ImportHeadroom >= 1 {
		return epocherr.New(epocherr.KindInvalidTaskData, "grid.import_headroom must be in [0,1)")
	}
	for i, p := range t.SolarPanels {
		if !sitedata.ValidIndex(p.YieldIndex, len(site.SolarYields)) {
			return epocherr.New(epocherr.KindInvalidTaskData, "solar_panels["+strconv.Itoa(i)+"].yield_index out of range")
		}
	}
	if t.HeatPump != nil {
		tbl := site.ASHPOutputTable
		if !tbl.Representable(t.HeatPump.SendTempC) {
			return epocherr.New(epocherr.KindInvalidTaskData, "heat_pump.send_temp_c is not representable in the ASHP lookup table")
		}
		if t.GasHeater == nil && t.Config.UseBoilerUpgradeScheme {
			return epocherr.New(epocherr.KindInvalidTaskData, "use_boiler_upgrade_scheme requires a gas_heater (the scheme grant applies when a heat pump replaces a gas heater)")
		}
	}
	return nil
}
