package rollup

import (
	"testing"

	"github.com/elemental-power/epoch/internal/costmodel"
	"github.com/elemental-power/epoch/internal/sitedata"
	"github.com/elemental-power/epoch/internal/taskdata"
)

func flatFamily(rate float64) costmodel.FamilyCost {
	return costmodel.FamilyCost{
		Capex: costmodel.PiecewiseCostModel{FinalRate: rate},
		Opex:  costmodel.PiecewiseCostModel{FinalRate: rate / 10},
	}
}

func testCostModel() costmodel.CostModel {
	return costmodel.CostModel{
		Solar:                    flatFamily(1000),
		Battery:                  flatFamily(500),
		HeatPump:                 flatFamily(800),
		GasHeater:                flatFamily(200),
		EVCharger:                flatFamily(300),
		DHWCylinder:              flatFamily(2),
		BuildingFabric:           flatFamily(1),
		BoilerUpgradeSchemeGrant: 5000,
	}
}

func TestComputeCapex_SkipsIncumbentComponents(t *testing.T) {
	task := &taskdata.TaskData{
		ESS: &taskdata.ESSConfig{ComponentBase: taskdata.ComponentBase{Incumbent: true}, CapacityKWh: 10},
		Config: costmodel.TaskConfig{CapexModel: testCostModel()},
	}
	b := ComputeCapex(task, &sitedata.SiteData{})
	if b.Battery != 0 {
		t.Errorf("Battery capex = %g, want 0 for an incumbent component", b.Battery)
	}
}

func TestComputeCapex_SumsNonIncumbentFamilies(t *testing.T) {
	task := &taskdata.TaskData{
		ESS:      &taskdata.ESSConfig{CapacityKWh: 10},
		HeatPump: &taskdata.HeatPumpConfig{RatedPowerKW: 5},
		Config:   costmodel.TaskConfig{CapexModel: testCostModel()},
	}
	b := ComputeCapex(task, &sitedata.SiteData{})
	if b.Battery != 10*500 {
		t.Errorf("Battery = %g, want %g", b.Battery, 10*500.0)
	}
	if b.HeatPump != 5*800 {
		t.Errorf("HeatPump = %g, want %g", b.HeatPump, 5*800.0)
	}
	if b.Total != b.Battery+b.HeatPump {
		t.Errorf("Total = %g, want %g", b.Total, b.Battery+b.HeatPump)
	}
}

func TestComputeCapex_BuildingFabricFromSiteDataFixedCost(t *testing.T) {
	site := &sitedata.SiteData{
		FabricInterventions: []sitedata.FabricIntervention{
			{Cost: 100}, {Cost: 250},
		},
	}
	task := &taskdata.TaskData{
		Building: taskdata.BuildingConfig{FabricInterventionIndex: 2},
		Config:   costmodel.TaskConfig{CapexModel: testCostModel()},
	}
	b := ComputeCapex(task, site)
	if b.BuildingFabric != 250 {
		t.Errorf("BuildingFabric = %g, want 250 (site fixed cost, not piecewise)", b.BuildingFabric)
	}
}

func TestComputeCapex_BoilerUpgradeSchemeGrantAppliesOnlyWithBothComponents(t *testing.T) {
	model := testCostModel()
	task := &taskdata.TaskData{
		HeatPump:  &taskdata.HeatPumpConfig{RatedPowerKW: 1},
		GasHeater: &taskdata.GasHeaterConfig{CapacityKW: 1},
		Config:    costmodel.TaskConfig{CapexModel: model, UseBoilerUpgradeScheme: true},
	}
	b := ComputeCapex(task, &sitedata.SiteData{})
	if b.FundingCredit != model.BoilerUpgradeSchemeGrant {
		t.Errorf("FundingCredit = %g, want %g", b.FundingCredit, model.BoilerUpgradeSchemeGrant)
	}
}

func TestComputeCapex_GeneralGrantAlwaysSubtracted(t *testing.T) {
	task := &taskdata.TaskData{
		Config: costmodel.TaskConfig{CapexModel: testCostModel(), GeneralGrantFunding: 750},
	}
	b := ComputeCapex(task, &sitedata.SiteData{})
	if b.FundingCredit != 750 {
		t.Errorf("FundingCredit = %g, want 750", b.FundingCredit)
	}
	if b.Total != -750 {
		t.Errorf("Total = %g, want -750 (no components, grant still subtracted)", b.Total)
	}
}
