// Package dataset provides the unit of data all recipe tasks operate on:
// numerical values with axes, plus the complete history of every
// operation performed on them.
package dataset

import (
	"fmt"
	"time"
)

// Axis describes one axis of a dataset's data.
type Axis struct {
	Values   []float64 `yaml:"values,omitempty" json:"values,omitempty"`
	Quantity string    `yaml:"quantity,omitempty" json:"quantity,omitempty"`
	Unit     string    `yaml:"unit,omitempty" json:"unit,omitempty"`
	Label    string    `yaml:"label,omitempty" json:"label,omitempty"`
}

// Data holds numerical values together with their axes. Axes[0] carries
// the independent variable; the last axis describes the values themselves.
type Data struct {
	Values []float64 `yaml:"values,omitempty" json:"values,omitempty"`
	Axes   []Axis    `yaml:"axes,omitempty" json:"axes,omitempty"`
}

// Annotation is a piece of metadata attached to a dataset by an
// annotation task, e.g. a comment.
type Annotation struct {
	Type    string         `yaml:"type" json:"type"`
	Content map[string]any `yaml:"content,omitempty" json:"content,omitempty"`
}

// Dataset is the central unit of data: values, axes, and the full
// provenance of every operation applied to it.
type Dataset struct {
	ID          string          `yaml:"id" json:"id"`
	Label       string          `yaml:"label,omitempty" json:"label,omitempty"`
	Source      string          `yaml:"source,omitempty" json:"source,omitempty"`
	Calculated  bool            `yaml:"calculated,omitempty" json:"calculated,omitempty"`
	Data        Data            `yaml:"data,omitempty" json:"data,omitempty"`
	History     []HistoryRecord `yaml:"history,omitempty" json:"history,omitempty"`
	Annotations []Annotation    `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// New creates an empty dataset with the given id.
func New(id string) *Dataset {
	return &Dataset{ID: id}
}

// Operation is the minimal contract of anything a dataset records in
// its history: a named step with an enumerable set of properties.
type Operation interface {
	Name() string
	Properties() map[string]any
}

// Processor mutates a dataset's data in place.
type Processor interface {
	Operation
	Process(d *Dataset) error
}

// Analyzer derives a value from a dataset without mutating it.
type Analyzer interface {
	Operation
	Analyze(d *Dataset) (any, error)
}

// Annotator attaches an annotation to a dataset.
type Annotator interface {
	Operation
	Annotate(d *Dataset) error
}

// Plotter produces a graphical representation of a dataset.
type Plotter interface {
	Operation
	Plot(d *Dataset) error
}

// Process applies a processing step to the dataset and appends a
// history record on success.
func (d *Dataset) Process(p Processor) error {
	rec := newHistoryRecord("processing", p)
	if err := p.Process(d); err != nil {
		return fmt.Errorf("processing %s: %w", p.Name(), err)
	}
	rec.End = time.Now().Format(time.RFC3339)
	d.History = append(d.History, rec)
	return nil
}

// Analyze applies an analysis step to the dataset, appends a history
// record, and returns the computed value.
func (d *Dataset) Analyze(a Analyzer) (any, error) {
	rec := newHistoryRecord("analysis", a)
	result, err := a.Analyze(d)
	if err != nil {
		return nil, fmt.Errorf("analysis %s: %w", a.Name(), err)
	}
	rec.End = time.Now().Format(time.RFC3339)
	d.History = append(d.History, rec)
	return result, nil
}

// Annotate attaches an annotation to the dataset and records it.
func (d *Dataset) Annotate(a Annotator) error {
	rec := newHistoryRecord("annotation", a)
	if err := a.Annotate(d); err != nil {
		return fmt.Errorf("annotation %s: %w", a.Name(), err)
	}
	rec.End = time.Now().Format(time.RFC3339)
	d.History = append(d.History, rec)
	return nil
}

// Plot hands the dataset to a plotter and records the plot in the
// dataset's history.
func (d *Dataset) Plot(p Plotter) error {
	rec := newHistoryRecord("plot", p)
	if err := p.Plot(d); err != nil {
		return fmt.Errorf("plot %s: %w", p.Name(), err)
	}
	rec.End = time.Now().Format(time.RFC3339)
	d.History = append(d.History, rec)
	return nil
}

// Copy returns a deep copy of the dataset, used when a processing task
// stores its outcome as a named result without touching the original.
func (d *Dataset) Copy() *Dataset {
	c := &Dataset{
		ID:         d.ID,
		Label:      d.Label,
		Source:     d.Source,
		Calculated: d.Calculated,
	}
	c.Data.Values = append([]float64(nil), d.Data.Values...)
	c.Data.Axes = make([]Axis, len(d.Data.Axes))
	for i, ax := range d.Data.Axes {
		c.Data.Axes[i] = ax
		c.Data.Axes[i].Values = append([]float64(nil), ax.Values...)
	}
	c.History = make([]HistoryRecord, len(d.History))
	for i, rec := range d.History {
		c.History[i] = rec.copy()
	}
	c.Annotations = make([]Annotation, len(d.Annotations))
	for i, ann := range d.Annotations {
		c.Annotations[i] = Annotation{Type: ann.Type, Content: copyMap(ann.Content)}
	}
	return c
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			out[k] = copyMap(nested)
			continue
		}
		out[k] = v
	}
	return out
}
