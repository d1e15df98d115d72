package steps

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/datachef/datachef/internal/dataset"
)

// BasicCharacteristics extracts simple characteristics from a dataset:
// min, max, amplitude, or area. Without a kind, all of them are
// returned as a mapping.
type BasicCharacteristics struct {
	Base
}

// NewBasicCharacteristics creates the step; no kind means all.
func NewBasicCharacteristics() *BasicCharacteristics {
	return &BasicCharacteristics{NewBase("BasicCharacteristics", map[string]any{
		"parameters": map[string]any{"kind": ""},
	})}
}

// Analyze computes the requested characteristic(s).
func (a *BasicCharacteristics) Analyze(d *dataset.Dataset) (any, error) {
	if len(d.Data.Values) == 0 {
		return nil, errors.New("dataset has no data")
	}
	min, max := minMax(d.Data.Values)
	var area float64
	for _, v := range d.Data.Values {
		area += v
	}
	all := map[string]any{
		"min":       min,
		"max":       max,
		"amplitude": max - min,
		"area":      area,
	}
	kind, _ := a.parameters()["kind"].(string)
	if kind == "" {
		return all, nil
	}
	value, ok := all[kind]
	if !ok {
		return nil, fmt.Errorf("unknown characteristic %q", kind)
	}
	return value, nil
}

// BasicStatistics computes mean, median, and standard deviation of a
// dataset's values.
type BasicStatistics struct {
	Base
}

// NewBasicStatistics creates the step; no kind means all.
func NewBasicStatistics() *BasicStatistics {
	return &BasicStatistics{NewBase("BasicStatistics", map[string]any{
		"parameters": map[string]any{"kind": ""},
	})}
}

// Analyze computes the requested statistic(s).
func (a *BasicStatistics) Analyze(d *dataset.Dataset) (any, error) {
	if len(d.Data.Values) == 0 {
		return nil, errors.New("dataset has no data")
	}
	all := map[string]any{
		"mean":   mean(d.Data.Values),
		"median": median(d.Data.Values),
		"std":    std(d.Data.Values),
	}
	kind, _ := a.parameters()["kind"].(string)
	if kind == "" {
		return all, nil
	}
	value, ok := all[kind]
	if !ok {
		return nil, fmt.Errorf("unknown statistic %q", kind)
	}
	return value, nil
}

// AggregateStatistics analyses a list of datasets at once, yielding
// per-dataset means and the overall mean.
type AggregateStatistics struct {
	Base
}

// NewAggregateStatistics creates the multi-dataset statistics step.
func NewAggregateStatistics() *AggregateStatistics {
	return &AggregateStatistics{NewBase("AggregateStatistics", map[string]any{
		"parameters": map[string]any{},
	})}
}

// AnalyzeAll computes statistics over all datasets together.
func (a *AggregateStatistics) AnalyzeAll(ds []*dataset.Dataset) (any, error) {
	if len(ds) == 0 {
		return nil, errors.New("no datasets to analyse")
	}
	means := make([]any, len(ds))
	var combined []float64
	for i, d := range ds {
		if len(d.Data.Values) == 0 {
			return nil, fmt.Errorf("dataset %s has no data", d.ID)
		}
		means[i] = mean(d.Data.Values)
		combined = append(combined, d.Data.Values...)
	}
	return map[string]any{
		"mean":  mean(combined),
		"std":   std(combined),
		"means": means,
	}, nil
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func std(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
