package components

import (
	"testing"

	"github.com/elemental-power/epoch/internal/taskdata"
)

func TestSettle_ImportWithinCap(t *testing.T) {
	grid := taskdata.GridConfig{ImportLimitKW: 10, ExportLimitKW: 10, ExportTariffGBPPerKWh: 0.05}
	res := Settle(5.0, grid, 0.20, 1.0)
	if res.Import != 5.0 || res.ImportShortfall != 0 {
		t.Errorf("Import=%g Shortfall=%g, want Import=5 Shortfall=0", res.Import, res.ImportShortfall)
	}
	if res.Cost != 1.0 {
		t.Errorf("Cost = %g, want 1.0", res.Cost)
	}
}

func TestSettle_ImportClippedByCap(t *testing.T) {
	grid := taskdata.GridConfig{ImportLimitKW: 2, ExportLimitKW: 10}
	res := Settle(5.0, grid, 0.20, 1.0)
	if res.Import != 2.0 {
		t.Errorf("Import = %g, want 2.0", res.Import)
	}
	if res.ImportShortfall != 3.0 {
		t.Errorf("ImportShortfall = %g, want 3.0", res.ImportShortfall)
	}
}

func TestSettle_ExportClippedByCap(t *testing.T) {
	grid := taskdata.GridConfig{ImportLimitKW: 10, ExportLimitKW: 1, ExportTariffGBPPerKWh: 0.05}
	res := Settle(-4.0, grid, 0.20, 1.0)
	if res.Export != 1.0 {
		t.Errorf("Export = %g, want 1.0", res.Export)
	}
	if res.CurtailedExport != 3.0 {
		t.Errorf("CurtailedExport = %g, want 3.0", res.CurtailedExport)
	}
	if res.Revenue != 0.05 {
		t.Errorf("Revenue = %g, want 0.05", res.Revenue)
	}
}

func TestSettle_ImportHeadroomShrinksCap(t *testing.T) {
	grid := taskdata.GridConfig{ImportLimitKW: 10, ImportHeadroom: 0.5}
	res := Settle(10.0, grid, 0.20, 1.0)
	if res.Import != 5.0 {
		t.Errorf("Import = %g, want 5.0 (half the nominal cap)", res.Import)
	}
}

func TestSettle_ShortfallsAndCurtailmentNeverNegative(t *testing.T) {
	grid := taskdata.GridConfig{ImportLimitKW: 100, ExportLimitKW: 100}
	for _, elec := range []float64{-50, -1, 0, 1, 50} {
		res := Settle(elec, grid, 0.2, 1.0)
		if res.ImportShortfall < 0 || res.CurtailedExport < 0 {
			t.Errorf("Settle(%g): shortfall=%g curtailed=%g, both must be >= 0", elec, res.ImportShortfall, res.CurtailedExport)
		}
	}
}
