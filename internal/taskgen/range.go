// Package taskgen enumerates the Cartesian product of a scenario's
// parameter axes (spec.md §4.7): total_scenarios, a streaming cursor
// consumed atomically by many workers, and O(axes) random access into the
// grid by scenario index via mixed-radix decoding.
package taskgen

import (
	"math"

	"github.com/elemental-power/epoch/internal/epocherr"
)

// Range is one parameter axis's {min, max, step} specification.
type Range struct {
	Min  float64 `yaml:"min" json:"min"`
	Max  float64 `yaml:"max" json:"max"`
	Step float64 `yaml:"step" json:"step"`
}

// Expand produces the evenly spaced values an axis ranges over (spec.md
// §4.7). step=0 with min==max yields the single value min. Any other
// invalid combination fails with epocherr.KindInvalidParamRange.
func (r Range) Expand() ([]float64, error) {
	if r.Max < r.Min {
		return nil, epocherr.New(epocherr.KindInvalidParamRange, "range max < min")
	}
	if r.Step == 0 {
		if r.Max != r.Min {
			return nil, epocherr.New(epocherr.KindInvalidParamRange, "zero step with distinct min/max endpoints")
		}
		return []float64{r.Min}, nil
	}
	if r.Step < 0 {
		return nil, epocherr.New(epocherr.KindInvalidParamRange, "negative step")
	}
	count := int(math.Round((r.Max-r.Min)/r.Step)) + 1
	values := make([]float64, count)
	for i := 0; i < count; i++ {
		values[i] = r.Min + float64(i)*r.Step
	}
	return values, nil
}
