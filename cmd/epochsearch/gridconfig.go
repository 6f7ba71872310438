package main

import (
	"os"

	"github.com/elemental-power/epoch/internal/epocherr"
	"github.com/elemental-power/epoch/internal/taskdata"
	"github.com/elemental-power/epoch/internal/taskgen"
	"gopkg.in/yaml.v3"
)

// GridConfig is epochsearch's YAML grid-definition file: a fixed
// catalogue of known axes, each present only when its range is given.
// The core's taskgen.Generator is fully generic (any Axis with an
// Apply closure); this catalogue is CLI-level wiring, not a core
// concern, so it lives in cmd/epochsearch rather than internal/taskgen.
type GridConfig struct {
	BatteryCapacityKWh  *taskgen.Range `yaml:"battery_capacity_kwh"`
	SolarPeakKWp        *taskgen.Range `yaml:"solar_peak_kwp"`
	HeatPumpRatedPowerKW *taskgen.Range `yaml:"heat_pump_rated_power_kw"`
	HeatPumpSendTempC   *taskgen.Range `yaml:"heat_pump_send_temp_c"`
	DHWVolumeLitres     *taskgen.Range `yaml:"dhw_volume_litres"`
	EVChargerCount      *taskgen.Range `yaml:"ev_charger_count"`
}

// LoadGridConfig reads and parses a grid-definition YAML file.
func LoadGridConfig(path string) (*GridConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, epocherr.Wrap(epocherr.KindIoError, "read grid config file", err)
	}
	var gc GridConfig
	if err := yaml.Unmarshal(raw, &gc); err != nil {
		return nil, epocherr.Wrap(epocherr.KindInvalidParamRange, "parse grid config YAML", err)
	}
	return &gc, nil
}

// Prepare mutates base so every enabled axis has a non-nil component
// record to mutate, and returns the taskgen.Axis list describing how
// each axis value is applied.
func (gc *GridConfig) Prepare(base *taskdata.TaskData) []taskgen.Axis {
	var axes []taskgen.Axis

	if gc.BatteryCapacityKWh != nil {
		if base.ESS == nil {
			base.ESS = &taskdata.ESSConfig{Mode: taskdata.BatteryModeConsume}
		}
		axes = append(axes, taskgen.Axis{
			Name: "battery_capacity_kwh", Range: *gc.BatteryCapacityKWh,
			Apply: func(t *taskdata.TaskData, v float64) {
				t.ESS.CapacityKWh = v
				t.ESS.ChargePowerKW = v / 2
				t.ESS.DischargePowerKW = v / 2
			},
		})
	}
	if gc.SolarPeakKWp != nil {
		if len(base.SolarPanels) == 0 {
			base.SolarPanels = []taskdata.SolarPanelConfig{{YieldIndex: 0, YieldScalar: 1}}
		}
		axes = append(axes, taskgen.Axis{
			Name: "solar_peak_kwp", Range: *gc.SolarPeakKWp,
			Apply: func(t *taskdata.TaskData, v float64) { t.SolarPanels[0].PeakKWp = v },
		})
	}
	if gc.HeatPumpRatedPowerKW != nil {
		if base.HeatPump == nil {
			base.HeatPump = &taskdata.HeatPumpConfig{Source: taskdata.HeatSourceAmbientAir}
		}
		axes = append(axes, taskgen.Axis{
			Name: "heat_pump_rated_power_kw", Range: *gc.HeatPumpRatedPowerKW,
			Apply: func(t *taskdata.TaskData, v float64) { t.HeatPump.RatedPowerKW = v },
		})
	}
	if gc.HeatPumpSendTempC != nil {
		if base.HeatPump == nil {
			base.HeatPump = &taskdata.HeatPumpConfig{Source: taskdata.HeatSourceAmbientAir}
		}
		axes = append(axes, taskgen.Axis{
			Name: "heat_pump_send_temp_c", Range: *gc.HeatPumpSendTempC,
			Apply: func(t *taskdata.TaskData, v float64) { t.HeatPump.SendTempC = v },
		})
	}
	if gc.DHWVolumeLitres != nil {
		if base.DHW == nil {
			base.DHW = &taskdata.DHWConfig{}
		}
		axes = append(axes, taskgen.Axis{
			Name: "dhw_volume_litres", Range: *gc.DHWVolumeLitres,
			Apply: func(t *taskdata.TaskData, v float64) { t.DHW.VolumeLitres = v },
		})
	}
	if gc.EVChargerCount != nil {
		if base.EVCharger == nil {
			base.EVCharger = &taskdata.EVChargerConfig{PowerKW: 7}
		}
		axes = append(axes, taskgen.Axis{
			Name: "ev_charger_count", Range: *gc.EVChargerCount,
			Apply: func(t *taskdata.TaskData, v float64) { t.EVCharger.Count = int(v) },
		})
	}

	return axes
}
