package costmodel

import "testing"

// TestPiecewiseCost_ScenarioTest5 seeds spec.md §8 scenario test 5.
func TestPiecewiseCost_ScenarioTest5(t *testing.T) {
	m := PiecewiseCostModel{
		FixedCost: 50,
		Segments:  []Segment{{Upper: 10, Rate: 5}},
		FinalRate: 2,
	}

	cases := []struct {
		n    float64
		want float64
	}{
		{0, 50},
		{10, 100},
		{20, 120},
	}
	for _, c := range cases {
		if got := m.Cost(c.n); got != c.want {
			t.Errorf("Cost(%g) = %g, want %g", c.n, got, c.want)
		}
	}
}

func TestPiecewiseCost_MonotonicAndBoundaryContinuous(t *testing.T) {
	m := PiecewiseCostModel{
		FixedCost: 10,
		Segments:  []Segment{{Upper: 5, Rate: 2}, {Upper: 15, Rate: 1}},
		FinalRate: 0.5,
	}
	prev := m.Cost(0)
	for n := 0.5; n <= 40; n += 0.5 {
		got := m.Cost(n)
		if got < prev-1e-9 {
			t.Fatalf("cost not monotonic non-decreasing at n=%g: %g < %g", n, got, prev)
		}
		prev = got
	}

	// boundary equals both adjacent formulas
	atBoundary := m.Cost(5)
	justBefore := m.FixedCost + 5*2
	if atBoundary != justBefore {
		t.Errorf("cost at first boundary = %g, want %g", atBoundary, justBefore)
	}
}

func TestPiecewiseCost_ValidateRejectsNonIncreasingSegments(t *testing.T) {
	m := PiecewiseCostModel{
		Segments: []Segment{{Upper: 10, Rate: 1}, {Upper: 10, Rate: 2}},
	}
	if err := m.Validate(); err == nil {
		t.Fatal("expected error for non-strictly-increasing segment uppers")
	}
}
