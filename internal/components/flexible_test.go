package components

import "testing"

func TestFutureEnergyEstimate_MeanOverHorizon(t *testing.T) {
	buildingEload := []float64{0, 5, 5, 5, 5, 0}
	aggregateSolar := []float64{0, 1, 1, 1, 1, 0}
	got := FutureEnergyEstimate(buildingEload, aggregateSolar, 0, 4)
	want := 4.0 // (5-1) over steps 1..4, all equal to 4
	if got != want {
		t.Errorf("FutureEnergyEstimate = %g, want %g", got, want)
	}
}

func TestFutureEnergyEstimate_ClipsAtSeriesEnd(t *testing.T) {
	buildingEload := []float64{0, 1, 2, 3}
	aggregateSolar := []float64{0, 0, 0, 0}
	got := FutureEnergyEstimate(buildingEload, aggregateSolar, 2, 10)
	if got != 3.0 {
		t.Errorf("FutureEnergyEstimate = %g, want 3.0 (only index 3 remains)", got)
	}
}

func TestFutureEnergyEstimate_ZeroAtSeriesEnd(t *testing.T) {
	buildingEload := []float64{0, 1, 2, 3}
	aggregateSolar := []float64{0, 0, 0, 0}
	got := FutureEnergyEstimate(buildingEload, aggregateSolar, 3, 4)
	if got != 0 {
		t.Errorf("FutureEnergyEstimate at the last index = %g, want 0", got)
	}
}

func TestFutureEnergyEstimate_DefaultsHorizonWhenNonPositive(t *testing.T) {
	buildingEload := make([]float64, 10)
	aggregateSolar := make([]float64, 10)
	for i := range buildingEload {
		buildingEload[i] = float64(i)
	}
	got := FutureEnergyEstimate(buildingEload, aggregateSolar, 0, 0)
	want := FutureEnergyEstimate(buildingEload, aggregateSolar, 0, 4)
	if got != want {
		t.Errorf("zero horizon should default to epochconst.DataCentreLookaheadSteps: got %g, want %g", got, want)
	}
}

func TestStepFlexibleLoad_FullDrawWhenHeadroomAllows(t *testing.T) {
	got := StepFlexibleLoad(3.0, 0, 0, 10, 1.0)
	if got != 3.0 {
		t.Errorf("StepFlexibleLoad = %g, want 3.0", got)
	}
}

func TestStepFlexibleLoad_ThrottledByHeadroom(t *testing.T) {
	got := StepFlexibleLoad(5.0, 8, 0, 10, 1.0)
	if got != 2.0 {
		t.Errorf("StepFlexibleLoad = %g, want 2.0 (headroom-limited)", got)
	}
}

func TestStepFlexibleLoad_ZeroWhenNoHeadroom(t *testing.T) {
	got := StepFlexibleLoad(5.0, 20, 0, 10, 1.0)
	if got != 0 {
		t.Errorf("StepFlexibleLoad = %g, want 0", got)
	}
}

func TestStepFlexibleLoad_ZeroTargetIsZero(t *testing.T) {
	got := StepFlexibleLoad(0, 0, 0, 10, 1.0)
	if got != 0 {
		t.Errorf("StepFlexibleLoad = %g, want 0", got)
	}
}
