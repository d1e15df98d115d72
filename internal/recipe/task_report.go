package recipe

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrCompilerUnavailable signals that a report's secondary build tool
// is not installed. Report tasks treat it as non-fatal: the uncompiled
// artifact is still produced.
var ErrCompilerUnavailable = errors.New("report compiler unavailable")

// ReportTask renders a report per targeted dataset. The rendering
// context carries dereferenced dataset and figure objects at arbitrary
// nesting depth; filename and template support parallel lists for
// batch reporting.
type ReportTask struct {
	baseTask
}

// Perform renders one report per targeted dataset.
func (t *ReportTask) Perform() error {
	if t.recipe == nil {
		return ErrMissingRecipe
	}
	ids := t.targets()
	filenames, filenamesListed := t.listProperty("filename")
	templates, templatesListed := t.listProperty("template")
	if filenamesListed && len(filenames) != len(ids) {
		return fmt.Errorf("filenames (%d) do not match targeted datasets (%d)", len(filenames), len(ids))
	}
	if templatesListed && len(templates) != len(ids) {
		return fmt.Errorf("templates (%d) do not match targeted datasets (%d)", len(templates), len(ids))
	}

	var stripped []string
	if filenamesListed {
		stripped = append(stripped, "filename")
	}
	if templatesListed {
		stripped = append(stripped, "template")
	}

	for i, id := range ids {
		d, err := t.datasetFor(id)
		if err != nil {
			return err
		}
		step, err := t.buildStepWith(t.propertiesWithout(stripped...))
		if err != nil {
			return err
		}
		report, ok := step.(ReportStep)
		if !ok {
			return fmt.Errorf("step %s.%s.%s is not a report step", t.pkg, t.category(), t.typeName)
		}
		if filenamesListed {
			report.SetProperty("filename", filenames[i])
		}
		if templatesListed {
			report.SetProperty("template", templates[i])
		}
		t.resolveReportFilename(report)

		// the current dataset is always available to the template
		context, _ := report.Properties()["context"].(map[string]any)
		if context == nil {
			context = make(map[string]any)
		}
		context = mergeValue(map[string]any{"dataset": d}, context).(map[string]any)
		report.SetProperty("context", context)

		if err := report.Render(); err != nil {
			return err
		}
		if !t.compile {
			continue
		}
		if err := report.Compile(); err != nil {
			if errors.Is(err, ErrCompilerUnavailable) {
				t.recipe.Logger().Warn("report not compiled",
					zap.String("type", t.typeName),
					zap.Error(err))
				continue
			}
			return err
		}
	}
	return nil
}

// listProperty extracts a list-valued property the task distributes
// over its targets itself.
func (t *ReportTask) listProperty(key string) ([]string, bool) {
	raw, ok := t.properties[key]
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

func (t *ReportTask) resolveReportFilename(report ReportStep) {
	filename, _ := report.Properties()["filename"].(string)
	if filename == "" || filepath.IsAbs(filename) || t.recipe.Directories.Output == "" {
		return
	}
	report.SetProperty("filename", filepath.Join(t.recipe.Directories.Output, filename))
}
