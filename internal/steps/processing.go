package steps

import (
	"errors"
	"fmt"
	"math"

	"github.com/datachef/datachef/internal/dataset"
)

// Processing is the generic processing step. It records itself in the
// dataset's history without touching the data, which makes it the
// cheapest way to stamp provenance onto a dataset.
type Processing struct {
	Base
}

// NewProcessing creates a generic processing step.
func NewProcessing() *Processing {
	return &Processing{NewBase("ProcessingStep", map[string]any{
		"parameters": map[string]any{},
	})}
}

// Process implements the processing contract; the data stay untouched.
func (p *Processing) Process(d *dataset.Dataset) error { return nil }

// Normalisation scales a dataset's values to a common reference:
// maximum, amplitude, or area.
type Normalisation struct {
	Base
}

// NewNormalisation creates a normalisation step; default kind maximum.
func NewNormalisation() *Normalisation {
	return &Normalisation{NewBase("Normalisation", map[string]any{
		"parameters": map[string]any{"kind": "maximum"},
	})}
}

// Process normalises the dataset values in place.
func (n *Normalisation) Process(d *dataset.Dataset) error {
	if len(d.Data.Values) == 0 {
		return errors.New("dataset has no data")
	}
	kind, _ := n.parameters()["kind"].(string)
	var reference float64
	switch kind {
	case "", "maximum":
		reference = math.Inf(-1)
		for _, v := range d.Data.Values {
			reference = math.Max(reference, math.Abs(v))
		}
	case "amplitude":
		min, max := minMax(d.Data.Values)
		reference = max - min
	case "area":
		for _, v := range d.Data.Values {
			reference += math.Abs(v)
		}
	default:
		return fmt.Errorf("unknown normalisation kind %q", kind)
	}
	if reference == 0 {
		return errors.New("cannot normalise all-zero data")
	}
	for i := range d.Data.Values {
		d.Data.Values[i] /= reference
	}
	return nil
}

// Scaling multiplies a dataset's values by a constant factor.
type Scaling struct {
	Base
}

// NewScaling creates a scaling step with factor 1.
func NewScaling() *Scaling {
	return &Scaling{NewBase("Scaling", map[string]any{
		"parameters": map[string]any{"factor": 1.0},
	})}
}

// Process scales the dataset values in place.
func (s *Scaling) Process(d *dataset.Dataset) error {
	factor, ok := floatOf(s.parameters()["factor"])
	if !ok {
		return errors.New("scaling factor is not a number")
	}
	for i := range d.Data.Values {
		d.Data.Values[i] *= factor
	}
	return nil
}

// BaselineCorrection subtracts a polynomial baseline of order 0 or 1,
// estimated from the outer fraction of the data on both ends.
type BaselineCorrection struct {
	Base
}

// NewBaselineCorrection creates a baseline correction step of order 0
// using 10% of the data on each end.
func NewBaselineCorrection() *BaselineCorrection {
	return &BaselineCorrection{NewBase("BaselineCorrection", map[string]any{
		"parameters": map[string]any{"order": 0, "fraction": 0.1},
	})}
}

// Process subtracts the estimated baseline in place.
func (b *BaselineCorrection) Process(d *dataset.Dataset) error {
	n := len(d.Data.Values)
	if n == 0 {
		return errors.New("dataset has no data")
	}
	order, _ := floatOf(b.parameters()["order"])
	fraction, ok := floatOf(b.parameters()["fraction"])
	if !ok || fraction <= 0 || fraction > 0.5 {
		fraction = 0.1
	}
	edge := int(math.Max(1, math.Floor(float64(n)*fraction)))

	left := mean(d.Data.Values[:edge])
	right := mean(d.Data.Values[n-edge:])
	switch int(order) {
	case 0:
		offset := (left + right) / 2
		for i := range d.Data.Values {
			d.Data.Values[i] -= offset
		}
	case 1:
		slope := (right - left) / float64(n-1)
		for i := range d.Data.Values {
			d.Data.Values[i] -= left + slope*float64(i)
		}
	default:
		return fmt.Errorf("unsupported baseline order %d", int(order))
	}
	return nil
}

func minMax(values []float64) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
