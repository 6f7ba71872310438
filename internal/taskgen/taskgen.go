package taskgen

import (
	"sync/atomic"

	"github.com/elemental-power/epoch/internal/epocherr"
	"github.com/elemental-power/epoch/internal/taskdata"
)

// Axis is one named parameter axis: a Range expanded to concrete
// values, and an Apply closure that sets the corresponding TaskData
// field for a chosen value. Keeping Apply a plain function (rather than
// reflecting over struct tags) avoids any interface/vtable dispatch on
// the grid's hot path.
type Axis struct {
	Name  string
	Range Range
	Apply func(task *taskdata.TaskData, value float64)
}

// Spec is a whole grid definition: a template TaskData (carrying the
// fixed TaskConfig and any components not driven by an axis) plus the
// axes that vary. Axis 0 varies fastest (spec.md §4.7), so scenario
// indices are reproducible across runs and machines.
type Spec struct {
	Base taskdata.TaskData
	Axes []Axis
}

// Generator is the constructed, immutable grid: precomputed axis
// values and cumulative products for mixed-radix decoding, plus an
// atomic streaming cursor shared by every worker.
type Generator struct {
	base       taskdata.TaskData
	axes       []Axis
	values     [][]float64
	cumProduct []uint64
	total      uint64
	cursor     uint64
}

// New validates and expands every axis, then precomputes the
// cumulative products used by GetTask's mixed-radix decode.
func New(spec Spec) (*Generator, error) {
	g := &Generator{base: spec.Base, axes: spec.Axes}
	g.values = make([][]float64, len(spec.Axes))
	g.cumProduct = make([]uint64, len(spec.Axes)+1)
	g.cumProduct[0] = 1

	for i, axis := range spec.Axes {
		values, err := axis.Range.Expand()
		if err != nil {
			return nil, epocherr.Wrap(epocherr.KindInvalidParamRange, "axis "+axis.Name, err)
		}
		g.values[i] = values
		g.cumProduct[i+1] = g.cumProduct[i] * uint64(len(values))
	}
	if len(spec.Axes) == 0 {
		g.total = 1
	} else {
		g.total = g.cumProduct[len(spec.Axes)]
	}
	return g, nil
}

// Total is the product of every axis's cardinality.
func (g *Generator) Total() uint64 { return g.total }

// GetTask decodes scenario index (1-based, 1..=Total()) into a TaskData
// via mixed-radix decoding: axis 0 is the fastest-varying digit.
func (g *Generator) GetTask(index uint64) (taskdata.TaskData, error) {
	if index < 1 || index > g.total {
		return taskdata.TaskData{}, epocherr.New(epocherr.KindInvalidParamRange, "scenario index out of range")
	}
	task := g.base
	idx0 := index - 1
	for i, axis := range g.axes {
		digit := (idx0 / g.cumProduct[i]) % uint64(len(g.values[i]))
		axis.Apply(&task, g.values[i][digit])
	}
	return task, nil
}

// TaskWithIndex pairs a decoded TaskData with the scenario index that
// produced it, for replay through the Simulator after a search.
type TaskWithIndex struct {
	Index uint64
	Task  taskdata.TaskData
}

// NextTask atomically claims the next scenario index and decodes it.
// Many workers call this concurrently; each index is handed out
// exactly once. ok is false once the grid is exhausted.
func (g *Generator) NextTask() (out TaskWithIndex, ok bool) {
	index := atomic.AddUint64(&g.cursor, 1)
	if index > g.total {
		return TaskWithIndex{}, false
	}
	task, err := g.GetTask(index)
	if err != nil {
		return TaskWithIndex{}, false
	}
	return TaskWithIndex{Index: index, Task: task}, true
}

// Reset rewinds the streaming cursor to the start, for reuse across
// multiple searches over the same grid (e.g. unit tests).
func (g *Generator) Reset() { atomic.StoreUint64(&g.cursor, 0) }
