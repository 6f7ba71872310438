package sitedata

import "github.com/elemental-power/epoch/internal/epocherr"

// Lookup bilinearly interpolates table at (airTemp, sendTemp). Values
// outside the table's coordinate range are clamped to the nearest edge,
// since heat-pump performance curves are only specified within a
// manufacturer's envelope; extrapolation would invent data spec.md does
// not provide.
func (t ASHPTable) Lookup(airTemp, sendTemp float64) (float64, error) {
	if len(t.AirTemps) == 0 || len(t.SendTemps) == 0 {
		return 0, epocherr.New(epocherr.KindInvalidTaskData, "ashp table is empty")
	}
	ri, rf := locate(t.AirTemps, airTemp)
	ci, cf := locate(t.SendTemps, sendTemp)

	r0, r1 := ri, ri
	if ri+1 < len(t.AirTemps) {
		r1 = ri + 1
	}
	c0, c1 := ci, ci
	if ci+1 < len(t.SendTemps) {
		c1 = ci + 1
	}

	v00 := t.Values[r0][c0]
	v01 := t.Values[r0][c1]
	v10 := t.Values[r1][c0]
	v11 := t.Values[r1][c1]

	v0 := v00 + (v01-v00)*cf
	v1 := v10 + (v11-v10)*cf
	return v0 + (v1-v0)*rf, nil
}

// locate returns the index i of the segment [coords[i], coords[i+1]]
// that contains x and the fractional position of x along it, in [0,1].
// x at or below the first coordinate gives (0, 0); x at or above the
// last gives (len-1, 0). coords must be strictly increasing.
func locate(coords []float64, x float64) (idx int, frac float64) {
	if x <= coords[0] {
		return 0, 0
	}
	last := len(coords) - 1
	if x >= coords[last] {
		return last, 0
	}
	for i := 0; i < last; i++ {
		if x >= coords[i] && x <= coords[i+1] {
			span := coords[i+1] - coords[i]
			if span <= 0 {
				return i, 0
			}
			return i, (x - coords[i]) / span
		}
	}
	return last, 0
}

// Representable reports whether sendTemp falls within the table's
// column range; the Simulator's pre-flight validation rejects scenarios
// whose configured send temperature falls outside it (spec.md §4.1).
func (t ASHPTable) Representable(sendTemp float64) bool {
	if len(t.SendTemps) == 0 {
		return false
	}
	return sendTemp >= t.SendTemps[0] && sendTemp <= t.SendTemps[len(t.SendTemps)-1]
}
