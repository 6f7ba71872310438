package costmodel

import (
	"fmt"
	"os"

	"github.com/elemental-power/epoch/internal/epocherr"
	"gopkg.in/yaml.v3"
)

// CostModel holds one CAPEX and one OPEX piecewise curve per component
// family, keyed by the family's sizing quantity (kW, kWh, kWp, litres,
// or charger count — spec.md §4.6).
type CostModel struct {
	Solar            FamilyCost `yaml:"solar" json:"solar"`
	Battery          FamilyCost `yaml:"battery" json:"battery"`
	HeatPump         FamilyCost `yaml:"heat_pump" json:"heat_pump"`
	GasHeater        FamilyCost `yaml:"gas_heater" json:"gas_heater"`
	EVCharger        FamilyCost `yaml:"ev_charger" json:"ev_charger"`
	DHWCylinder      FamilyCost `yaml:"dhw_cylinder" json:"dhw_cylinder"`
	BuildingFabric   FamilyCost `yaml:"building_fabric" json:"building_fabric"`

	BoilerUpgradeSchemeGrant float64 `yaml:"boiler_upgrade_scheme_grant" json:"boiler_upgrade_scheme_grant"`
}

// FamilyCost bundles the CAPEX and OPEX piecewise curves for one
// component family.
type FamilyCost struct {
	Capex PiecewiseCostModel `yaml:"capex" json:"capex"`
	Opex  PiecewiseCostModel `yaml:"opex" json:"opex"`
}

func (c CostModel) Validate() error {
	families := []PiecewiseCostModel{
		c.Solar.Capex, c.Solar.Opex,
		c.Battery.Capex, c.Battery.Opex,
		c.HeatPump.Capex, c.HeatPump.Opex,
		c.GasHeater.Capex, c.GasHeater.Opex,
		c.EVCharger.Capex, c.EVCharger.Opex,
		c.DHWCylinder.Capex, c.DHWCylinder.Opex,
		c.BuildingFabric.Capex, c.BuildingFabric.Opex,
	}
	for i, f := range families {
		if err := f.Validate(); err != nil {
			return epocherr.Wrap(epocherr.KindInvalidParamRange, fmt.Sprintf("cost model family %d", i), err)
		}
	}
	return nil
}

// TaskConfig is the scenario-independent cost/finance configuration
// shared by every simulation in a search (spec.md §3).
type TaskConfig struct {
	CapexLimit             float64 `yaml:"capex_limit" json:"capex_limit"`
	UseBoilerUpgradeScheme  bool    `yaml:"use_boiler_upgrade_scheme" json:"use_boiler_upgrade_scheme"`
	GeneralGrantFunding     float64 `yaml:"general_grant_funding" json:"general_grant_funding"`
	NPVTimeHorizon          int     `yaml:"npv_time_horizon" json:"npv_time_horizon"`
	NPVDiscountFactor       float64 `yaml:"npv_discount_factor" json:"npv_discount_factor"`

	CapexModel CostModel `yaml:"capex_model" json:"capex_model"`
	OpexModel  CostModel `yaml:"opex_model" json:"opex_model"`
}

func (c TaskConfig) Validate() error {
	if c.NPVTimeHorizon < 0 {
		return epocherr.New(epocherr.KindInvalidParamRange, "npv_time_horizon must be >= 0")
	}
	if c.NPVDiscountFactor < 0 {
		return epocherr.New(epocherr.KindInvalidParamRange, "npv_discount_factor must be >= 0")
	}
	if err := c.CapexModel.Validate(); err != nil {
		return err
	}
	if err := c.OpexModel.Validate(); err != nil {
		return err
	}
	return nil
}

// Load reads and validates a TaskConfig from a YAML file, in the
// teacher's config.Load idiom (read -> unmarshal -> validate).
func Load(path string) (*TaskConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, epocherr.Wrap(epocherr.KindInvalidParamRange, "read task config file", err)
	}
	var c TaskConfig
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, epocherr.Wrap(epocherr.KindInvalidParamRange, "parse task config YAML", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
