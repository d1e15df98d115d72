package recipe

import (
	"fmt"
	"sort"
	"sync"

	"github.com/datachef/datachef/internal/dataset"
)

// Step is the common contract of every operation object a task can
// construct: a named step with an enumerable set of properties.
// SetProperty reports whether the step knows the property; unknown
// names are ignored by the caller (forward-compatibility policy).
type Step interface {
	Name() string
	Properties() map[string]any
	SetProperty(name string, value any) bool
}

// ProcessingStep mutates a single dataset in place.
type ProcessingStep interface {
	Step
	Process(d *dataset.Dataset) error
}

// AnalysisStep derives a value from a single dataset.
type AnalysisStep interface {
	Step
	Analyze(d *dataset.Dataset) (any, error)
}

// MultiAnalysisStep derives a value from a list of datasets at once.
type MultiAnalysisStep interface {
	Step
	AnalyzeAll(ds []*dataset.Dataset) (any, error)
}

// AnnotationStep attaches an annotation to a dataset.
type AnnotationStep interface {
	Step
	Annotate(d *dataset.Dataset) error
}

// PlotterStep is the part of a plotting step the recipe needs to build
// a figure record from its finished state.
type PlotterStep interface {
	Step
	Filename() string
	SetFilename(filename string)
	CaptionInfo() Caption
	PlotParameters() map[string]any
}

// PlotStep plots a single dataset.
type PlotStep interface {
	PlotterStep
	Plot(d *dataset.Dataset) error
}

// MultiPlotStep plots a list of datasets into one figure.
type MultiPlotStep interface {
	PlotterStep
	PlotAll(ds []*dataset.Dataset) error
}

// ModelStep evaluates a mathematical model over variables, yielding a
// calculated dataset.
type ModelStep interface {
	Step
	SetVariables(variables [][]float64)
	Evaluate() (*dataset.Dataset, error)
}

// ReportStep renders a report from a template and a context. Compile
// runs an optional secondary build step over the rendered artifact.
type ReportStep interface {
	Step
	Render() error
	Compile() error
}

// StepFactory constructs a fresh step instance.
type StepFactory func() Step

var (
	stepMu       sync.RWMutex
	stepRegistry = make(map[string]StepFactory)
)

func stepKey(pkg, category, typeName string) string {
	return pkg + "." + category + "." + typeName
}

// RegisterStep makes a step type constructible by tasks. Registration
// happens at startup; a duplicate registration replaces the previous
// factory.
func RegisterStep(pkg, category, typeName string, factory StepFactory) {
	stepMu.Lock()
	defer stepMu.Unlock()
	stepRegistry[stepKey(pkg, category, typeName)] = factory
}

// NewStep constructs the step registered under (pkg, category, type).
// Construction fails loudly before any property is applied, so a bad
// recipe never partially mutates state.
func NewStep(pkg, category, typeName string) (Step, error) {
	stepMu.RLock()
	factory, ok := stepRegistry[stepKey(pkg, category, typeName)]
	stepMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s.%s", ErrUnknownStep, pkg, category, typeName)
	}
	return factory(), nil
}

// RegisteredSteps lists all registered step keys, sorted.
func RegisteredSteps() []string {
	stepMu.RLock()
	defer stepMu.RUnlock()
	keys := make([]string, 0, len(stepRegistry))
	for key := range stepRegistry {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
