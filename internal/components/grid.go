package components

import (
	"math"

	"github.com/elemental-power/epoch/internal/taskdata"
)

// GridResult is the settlement of one timestep's final net Elec_e
// against the grid connection's import/export caps (spec.md §4.5).
type GridResult struct {
	Import            float64
	Export            float64
	ImportShortfall   float64
	CurtailedExport   float64
	Cost              float64
	Revenue           float64
}

// Settle clips elecFinal by the grid connection's caps and prices the
// result against the timestep's import tariff and the flat export
// tariff.
func Settle(elecFinal float64, grid taskdata.GridConfig, tariff float64, intervalHours float64) GridResult {
	importCap := grid.ImportLimitKW * intervalHours * (1 - grid.ImportHeadroom)
	exportCap := grid.ExportLimitKW * intervalHours

	var res GridResult
	if elecFinal >= 0 {
		res.Import = math.Min(elecFinal, importCap)
		res.ImportShortfall = elecFinal - res.Import
	} else {
		surplus := -elecFinal
		res.Export = math.Min(surplus, exportCap)
		res.CurtailedExport = surplus - res.Export
	}
	res.Cost = res.Import * tariff
	res.Revenue = res.Export * grid.ExportTariffGBPPerKWh
	return res
}
