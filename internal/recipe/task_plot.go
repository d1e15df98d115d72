package recipe

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SinglePlotTask plots each targeted dataset separately. A filename
// list parallel to the targets writes one file per dataset; with a
// label, a figure record built from the finished plotter is stored
// into the recipe's figures.
type SinglePlotTask struct {
	baseTask
}

// Perform plots the targeted datasets, one fresh plotter per dataset.
func (t *SinglePlotTask) Perform() error {
	if t.recipe == nil {
		return ErrMissingRecipe
	}
	ids := t.targets()
	filenames, hasList := t.filenameList()
	if hasList && len(filenames) != len(ids) {
		return fmt.Errorf("filenames (%d) do not match targeted datasets (%d)", len(filenames), len(ids))
	}

	var last PlotStep
	for i, id := range ids {
		d, err := t.datasetFor(id)
		if err != nil {
			return err
		}
		props := t.properties
		if hasList {
			props = t.propertiesWithout("filename")
		}
		step, err := t.buildStepWith(props)
		if err != nil {
			return err
		}
		plotter, ok := step.(PlotStep)
		if !ok {
			return fmt.Errorf("step %s.%s.%s is not a plotter", t.pkg, t.category(), t.typeName)
		}
		if hasList {
			plotter.SetFilename(filenames[i])
		}
		t.resolvePlotFilename(plotter, id)
		if err := d.Plot(plotter); err != nil {
			return err
		}
		last = plotter
	}

	return t.recordFigure(last)
}

// MultiPlotTask plots the whole list of targeted datasets into one
// figure.
type MultiPlotTask struct {
	baseTask
}

// Perform invokes the plotter once over the targeted dataset list.
func (t *MultiPlotTask) Perform() error {
	if t.recipe == nil {
		return ErrMissingRecipe
	}
	datasets, err := t.recipe.GetDatasets(t.targets())
	if err != nil {
		return err
	}
	step, err := t.buildStep()
	if err != nil {
		return err
	}
	plotter, ok := step.(MultiPlotStep)
	if !ok {
		return fmt.Errorf("step %s.%s.%s is not a multi-dataset plotter", t.pkg, t.category(), t.typeName)
	}
	t.resolvePlotFilename(plotter, t.label)
	if err := plotter.PlotAll(datasets); err != nil {
		return err
	}
	return t.recordFigure(plotter)
}

// filenameList extracts a list-valued filename property, handled by
// the task itself rather than assigned onto the plotter.
func (t *baseTask) filenameList() ([]string, bool) {
	raw, ok := t.properties["filename"]
	if !ok {
		return nil, false
	}
	switch raw.(type) {
	case []any, []string:
		return toStringList(raw), true
	default:
		return nil, false
	}
}

// resolvePlotFilename places relative plot filenames into the output
// directory and derives one from the fallback name when autosaving.
func (t *baseTask) resolvePlotFilename(plotter PlotterStep, fallback string) {
	filename := plotter.Filename()
	if filename == "" {
		if !t.recipe.AutosavePlots() || fallback == "" {
			return
		}
		filename = sanitizeFilename(fallback) + ".pdf"
	}
	if !filepath.IsAbs(filename) && t.recipe.Directories.Output != "" {
		filename = filepath.Join(t.recipe.Directories.Output, filename)
	}
	plotter.SetFilename(filename)
}

// recordFigure stores a figure record under the task's label, if any.
func (t *baseTask) recordFigure(plotter PlotterStep) error {
	if t.label == "" {
		return nil
	}
	record, err := NewFigureRecord(plotter)
	if err != nil {
		return err
	}
	record.Label = t.label
	t.recipe.Figures[t.label] = record
	return nil
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", " ", "_", ":", "_")
	return replacer.Replace(name)
}
