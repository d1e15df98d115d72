package steps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/datachef/datachef/internal/dataset"
	"github.com/datachef/datachef/internal/recipe"
	"gopkg.in/yaml.v3"
)

// plotter carries the state shared by all plotting steps: filename,
// caption, and free-form plot parameters. Actual rendering backends
// are out of scope; the built-in plotters persist a plot description.
type plotter struct {
	Base
}

func newPlotter(name string) plotter {
	return plotter{NewBase(name, map[string]any{
		"filename": "",
		"caption": map[string]any{
			"title":      "",
			"text":       "",
			"parameters": []any{},
		},
		"parameters": map[string]any{},
	})}
}

// Filename returns the output filename.
func (p *plotter) Filename() string { return p.stringProp("filename") }

// SetFilename overrides the output filename.
func (p *plotter) SetFilename(filename string) { p.props["filename"] = filename }

// CaptionInfo returns the plot caption in its persisted form.
func (p *plotter) CaptionInfo() recipe.Caption {
	caption := recipe.Caption{}
	m, ok := p.props["caption"].(map[string]any)
	if !ok {
		return caption
	}
	caption.Title, _ = m["title"].(string)
	caption.Text, _ = m["text"].(string)
	if params, ok := m["parameters"].([]any); ok {
		for _, param := range params {
			if s, ok := param.(string); ok {
				caption.Parameters = append(caption.Parameters, s)
			}
		}
	}
	return caption
}

// PlotParameters returns the plot's free-form parameters.
func (p *plotter) PlotParameters() map[string]any {
	params, _ := p.props["parameters"].(map[string]any)
	return params
}

// plotDescription is what the built-in plotters write to disk in place
// of a rendered graphic.
type plotDescription struct {
	Plotter  string   `yaml:"plotter"`
	Datasets []string `yaml:"datasets"`
	Points   []int    `yaml:"points"`
	Title    string   `yaml:"title,omitempty"`
}

func (p *plotter) writeDescription(ds []*dataset.Dataset) error {
	filename := p.Filename()
	if filename == "" {
		return nil
	}
	description := plotDescription{
		Plotter: p.Name(),
		Title:   p.CaptionInfo().Title,
	}
	for _, d := range ds {
		description.Datasets = append(description.Datasets, d.ID)
		description.Points = append(description.Points, len(d.Data.Values))
	}
	data, err := yaml.Marshal(description)
	if err != nil {
		return fmt.Errorf("failed to render plot description: %w", err)
	}
	if dir := filepath.Dir(filename); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create plot directory: %w", err)
		}
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write plot to %s: %w", filename, err)
	}
	return nil
}

// SinglePlotter plots one dataset per invocation.
type SinglePlotter struct {
	plotter
}

// NewSinglePlotter creates a single-dataset plotter.
func NewSinglePlotter() *SinglePlotter {
	return &SinglePlotter{newPlotter("SinglePlotter")}
}

// Plot writes the plot for one dataset.
func (p *SinglePlotter) Plot(d *dataset.Dataset) error {
	return p.writeDescription([]*dataset.Dataset{d})
}

// MultiPlotter plots a list of datasets into one figure.
type MultiPlotter struct {
	plotter
}

// NewMultiPlotter creates a multi-dataset plotter.
func NewMultiPlotter() *MultiPlotter {
	return &MultiPlotter{newPlotter("MultiPlotter")}
}

// PlotAll writes one plot covering all datasets.
func (p *MultiPlotter) PlotAll(ds []*dataset.Dataset) error {
	return p.writeDescription(ds)
}
