package components

import (
	"math"

	"github.com/elemental-power/epoch/internal/epochconst"
	"github.com/elemental-power/epoch/internal/taskdata"
)

// ESSState is the battery's mutable state-of-charge (spec.md §4.4).
type ESSState struct {
	SoC float64 // kWh
}

// NewESSState starts the battery at its configured initial charge.
func NewESSState(cfg taskdata.ESSConfig) *ESSState {
	return &ESSState{SoC: cfg.InitialChargeKWh}
}

// ESSResult reports one timestep's battery activity.
type ESSResult struct {
	ElecDelta float64 // added to Elec_e: positive = net charge draw, negative = net discharge credit
	Charge    float64
	Discharge float64
	RTL       float64 // round-trip loss booked this step
	Aux       float64 // parasitic load booked this step
	SoC       float64
}

// Step dispatches the battery against elecBeforeESS (Elec_e[t] after
// flexible loads, before ESS) per the CONSUME / CONSUME_PLUS rules.
// futureHeadroom bounds the CONSUME_PLUS opportunistic charge by the
// same future-energy estimate flexible loads use, so opportunistic
// charging does not itself create an import shortfall.
func (s *ESSState) Step(cfg taskdata.ESSConfig, elecBeforeESS, tariff float64, day DayStats, futureHeadroom, intervalHours float64) ESSResult {
	var res ESSResult
	capacity := cfg.CapacityKWh
	chargeMax := cfg.ChargePowerKW * intervalHours
	dischargeMax := cfg.DischargePowerKW * intervalHours
	loss := epochconst.ESSRoundTripLossFraction

	res.Aux = capacity / epochconst.ESSAuxDivisor * intervalHours
	res.ElecDelta += res.Aux

	if elecBeforeESS >= 0 {
		available := math.Min(dischargeMax, s.SoC)
		discharge := math.Min(elecBeforeESS, available)
		s.SoC -= discharge
		res.Discharge = discharge
		res.ElecDelta -= discharge
	} else {
		surplus := -elecBeforeESS
		room := capacity - s.SoC
		availableCharge := math.Min(chargeMax, room/(1-loss))
		charge := math.Min(surplus, availableCharge)
		stored := charge * (1 - loss)
		s.SoC += stored
		res.Charge = charge
		res.RTL = charge - stored
		res.ElecDelta += charge
	}

	if cfg.Mode == taskdata.BatteryModeConsumePlus {
		if tariff < day.Average && tariff <= day.Percentile && capacity > 0 && s.SoC/capacity < epochconst.ESSOpportunisticTargetSOC {
			target := capacity * epochconst.ESSOpportunisticTargetSOC
			room := target - s.SoC
			powerHeadroom := chargeMax - res.Charge
			bound := math.Min(powerHeadroom, room/(1-loss))
			bound = math.Min(bound, math.Max(futureHeadroom, 0))
			if bound > 0 {
				stored := bound * (1 - loss)
				s.SoC += stored
				res.Charge += bound
				res.RTL += bound - stored
				res.ElecDelta += bound
			}
		}
	}

	res.SoC = s.SoC
	return res
}
