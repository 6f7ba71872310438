package simulator

import (
	"github.com/elemental-power/epoch/internal/components"
)

// reportSeries lists every ReportData key Simulate populates in
// FullReporting mode (spec.md §3: "imports/exports, PV DC/AC, ESS
// charge/discharge/SoC/RTL/aux, DHW SoC & losses, ASHP loads and
// outputs, heat shortfalls/surpluses, etc.").
var reportSeries = []string{
	"building_eload", "building_hload", "elec_balance",
	"pv_ac", "import_kwh", "export_kwh",
	"import_shortfall_kwh", "curtailed_export_kwh",
	"ess_charge_kwh", "ess_discharge_kwh", "ess_soc_kwh", "ess_rtl_kwh", "ess_aux_kwh",
	"dhw_soc_kwh", "dhw_standby_loss_kwh", "dhw_surplus_charge_kwh", "dhw_hp_charge_kwh", "dhw_shortfall_kwh",
	"heat_pump_elec_kwh", "gas_kwh", "heat_shortfall_kwh",
	"mop_draw_kwh",
}

func newReportData(n int) ReportData {
	rd := make(ReportData, len(reportSeries))
	for _, key := range reportSeries {
		rd[key] = make([]float64, n)
	}
	return rd
}

func appendStep(rd ReportData, t int, eload, hload, elecBalance float64, dhw components.DHWResult, ess components.ESSResult, heat components.HeatResult, grid components.GridResult, mopDraw, pvAC float64) {
	rd["building_eload"][t] = eload
	rd["building_hload"][t] = hload
	rd["elec_balance"][t] = elecBalance
	rd["pv_ac"][t] = pvAC
	rd["import_kwh"][t] = grid.Import
	rd["export_kwh"][t] = grid.Export
	rd["import_shortfall_kwh"][t] = grid.ImportShortfall
	rd["curtailed_export_kwh"][t] = grid.CurtailedExport

	rd["ess_charge_kwh"][t] = ess.Charge
	rd["ess_discharge_kwh"][t] = ess.Discharge
	rd["ess_soc_kwh"][t] = ess.SoC
	rd["ess_rtl_kwh"][t] = ess.RTL
	rd["ess_aux_kwh"][t] = ess.Aux

	rd["dhw_soc_kwh"][t] = dhw.SoC
	rd["dhw_standby_loss_kwh"][t] = dhw.StandbyLoss
	rd["dhw_surplus_charge_kwh"][t] = dhw.SurplusCharge
	rd["dhw_hp_charge_kwh"][t] = dhw.HPCharge
	rd["dhw_shortfall_kwh"][t] = dhw.Shortfall

	rd["heat_pump_elec_kwh"][t] = heat.ElecDemand
	rd["gas_kwh"][t] = heat.GasKWh
	rd["heat_shortfall_kwh"][t] = heat.Shortfall

	rd["mop_draw_kwh"][t] = mopDraw
}
