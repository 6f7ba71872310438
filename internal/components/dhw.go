package components

import (
	"math"

	"github.com/elemental-power/epoch/internal/epochconst"
	"github.com/elemental-power/epoch/internal/taskdata"
)

// DHWState is the domestic hot-water cylinder's mutable
// state-of-charge (spec.md §4.3). Zero value starts at an empty
// cylinder; NewDHWState starts full, which is the usual choice for a
// year-long simulation with a repeating load profile.
type DHWState struct {
	SoC float64 // kWh
}

// NewDHWState returns a cylinder initialised fully charged.
func NewDHWState(cfg taskdata.DHWConfig) *DHWState {
	return &DHWState{SoC: Capacity(cfg)}
}

// Capacity is the cylinder's usable energy capacity, raising its full
// volume from T_cold to T_set.
func Capacity(cfg taskdata.DHWConfig) float64 {
	return epochconst.WaterDensityKgPerL * cfg.VolumeLitres * epochconst.WaterSpecificHeatKJ *
		(epochconst.DHWSetTempC - epochconst.DHWColdFeedTempC) / 3600.0
}

// DHWResult reports one timestep's cylinder behaviour for ReportData
// and for the caller (the simulator) to fold into Elec_e.
type DHWResult struct {
	ElecDelta    float64 // added to Elec_e: surplus immersion charge + HP top-up charge + shortfall cover, minus nothing (demand is always >= 0)
	StandbyLoss  float64 // kWh
	SurplusCharge float64
	HPCharge     float64
	Shortfall    float64 // unmet demand, covered by emergency immersion
	SoC          float64 // post-step state, for reporting
}

// Step applies standby loss, the surplus-diversion and HP top-up charge
// policies, and the demand discharge, in the order spec.md §4.3
// describes. DHW runs in phase 1, ahead of this timestep's own solar
// injection, so prevNetElec is the site's net electrical position
// (demand positive, surplus negative) as it settled at the *previous*
// timestep (spec.md §4.1's "using previous timestep context"), not the
// current one.
func (s *DHWState) Step(cfg taskdata.DHWConfig, demand float64, tariff float64, day DayStats, prevNetElec float64, hpPowerKW, intervalHours float64) DHWResult {
	capacity := Capacity(cfg)

	tAvg := (s.SoC*3600.0)/(epochconst.WaterDensityKgPerL*cfg.VolumeLitres*epochconst.WaterSpecificHeatKJ) + epochconst.DHWColdFeedTempC
	u := 1.70 * math.Pow(cfg.VolumeLitres/250.0, 2.0/3.0) // W/°C
	standbyLoss := u * (tAvg - epochconst.DHWAmbientTempC) * intervalHours / 1000.0
	s.SoC -= standbyLoss

	var res DHWResult

	if prevNetElec < 0 {
		surplus := -prevNetElec
		room := capacity - s.SoC
		charge := math.Min(surplus, room)
		if charge > 0 {
			s.SoC += charge
			res.SurplusCharge = charge
			res.ElecDelta += charge
		}
	}

	if tariff <= day.Average && tariff <= day.Percentile {
		hpMax := hpPowerKW * intervalHours
		room := capacity - s.SoC
		charge := math.Min(hpMax, room)
		if charge > 0 {
			s.SoC += charge
			res.HPCharge = charge
			res.ElecDelta += charge
		}
	}

	s.SoC -= demand
	if s.SoC < 0 {
		res.Shortfall = -s.SoC
		res.ElecDelta += res.Shortfall
		s.SoC = 0
	}

	res.StandbyLoss = standbyLoss
	res.SoC = s.SoC
	return res
}
