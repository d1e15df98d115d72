package recipe

import (
	"errors"
	"fmt"
	"sync"

	"github.com/datachef/datachef/internal/dataset"
)

// stub steps registered under the "stub" package, recording their
// construction and invocations for assertions.

type stubBase struct {
	name  string
	props map[string]any
}

func (s *stubBase) Name() string               { return s.name }
func (s *stubBase) Properties() map[string]any { return s.props }
func (s *stubBase) SetProperty(name string, value any) bool {
	if _, ok := s.props[name]; !ok {
		return false
	}
	s.props[name] = value
	return true
}

type stubProcessing struct {
	stubBase
	fail bool
}

func (s *stubProcessing) Process(d *dataset.Dataset) error {
	if s.fail {
		return errors.New("stub processing failed")
	}
	for i := range d.Data.Values {
		d.Data.Values[i] += 1
	}
	return nil
}

type stubAnalysis struct {
	stubBase
}

func (s *stubAnalysis) Analyze(d *dataset.Dataset) (any, error) {
	var sum float64
	for _, v := range d.Data.Values {
		sum += v
	}
	return sum, nil
}

type stubMultiAnalysis struct {
	stubBase
}

func (s *stubMultiAnalysis) AnalyzeAll(ds []*dataset.Dataset) (any, error) {
	out := make([]any, len(ds))
	for i, d := range ds {
		var sum float64
		for _, v := range d.Data.Values {
			sum += v
		}
		out[i] = sum
	}
	return out, nil
}

type stubAnnotation struct {
	stubBase
}

func (s *stubAnnotation) Annotate(d *dataset.Dataset) error {
	d.Annotations = append(d.Annotations, dataset.Annotation{Type: "stub"})
	return nil
}

type stubPlot struct {
	stubBase
	plotted []string
}

func (s *stubPlot) Filename() string { f, _ := s.props["filename"].(string); return f }
func (s *stubPlot) SetFilename(f string) { s.props["filename"] = f }
func (s *stubPlot) CaptionInfo() Caption {
	return Caption{Title: "stub figure"}
}
func (s *stubPlot) PlotParameters() map[string]any {
	p, _ := s.props["parameters"].(map[string]any)
	return p
}
func (s *stubPlot) Plot(d *dataset.Dataset) error {
	s.plotted = append(s.plotted, d.ID)
	return nil
}

type stubMultiPlot struct {
	stubBase
	plotted []string
}

func (s *stubMultiPlot) Filename() string { f, _ := s.props["filename"].(string); return f }
func (s *stubMultiPlot) SetFilename(f string) { s.props["filename"] = f }
func (s *stubMultiPlot) CaptionInfo() Caption {
	return Caption{Title: "stub multiplot"}
}
func (s *stubMultiPlot) PlotParameters() map[string]any {
	p, _ := s.props["parameters"].(map[string]any)
	return p
}
func (s *stubMultiPlot) PlotAll(ds []*dataset.Dataset) error {
	for _, d := range ds {
		s.plotted = append(s.plotted, d.ID)
	}
	return nil
}

type stubModel struct {
	stubBase
	variables [][]float64
}

func (s *stubModel) SetVariables(v [][]float64) { s.variables = v }
func (s *stubModel) Evaluate() (*dataset.Dataset, error) {
	if len(s.variables) == 0 {
		return nil, errors.New("no variables")
	}
	d := dataset.New("")
	d.Data.Values = make([]float64, len(s.variables[0]))
	d.Data.Axes = []dataset.Axis{{Values: s.variables[0]}}
	return d, nil
}

type stubReport struct {
	stubBase
	rendered []map[string]any
}

func (s *stubReport) Render() error {
	context, _ := s.props["context"].(map[string]any)
	s.rendered = append(s.rendered, map[string]any{
		"filename": s.props["filename"],
		"template": s.props["template"],
		"context":  context,
	})
	return nil
}

func (s *stubReport) Compile() error {
	if compiler, _ := s.props["compiler"].(string); compiler == "missing" {
		return fmt.Errorf("%w: %s", ErrCompilerUnavailable, compiler)
	}
	s.props["compiled"] = true
	return nil
}

// stepRecorder captures every step the registry hands out, so tests
// can inspect the state a task left it in.
type stepRecorder struct {
	mu    sync.Mutex
	steps []Step
}

func (r *stepRecorder) record(s Step) Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, s)
	return s
}

func (r *stepRecorder) last() Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.steps) == 0 {
		return nil
	}
	return r.steps[len(r.steps)-1]
}

var stubRecorder = &stepRecorder{}

func init() {
	RegisterStep("stub", "processing", "Add", func() Step {
		return stubRecorder.record(&stubProcessing{stubBase: stubBase{
			name: "Add",
			props: map[string]any{
				"parameters": map[string]any{"nested": map[string]any{"value": ""}},
			},
		}})
	})
	RegisterStep("stub", "processing", "Fail", func() Step {
		return &stubProcessing{fail: true, stubBase: stubBase{
			name:  "Fail",
			props: map[string]any{"parameters": map[string]any{}},
		}}
	})
	RegisterStep("stub", "singleanalysis", "Sum", func() Step {
		return stubRecorder.record(&stubAnalysis{stubBase{
			name:  "Sum",
			props: map[string]any{"parameters": map[string]any{}},
		}})
	})
	RegisterStep("stub", "multianalysis", "Sums", func() Step {
		return &stubMultiAnalysis{stubBase{
			name:  "Sums",
			props: map[string]any{"parameters": map[string]any{}},
		}}
	})
	RegisterStep("stub", "annotation", "Note", func() Step {
		return &stubAnnotation{stubBase{
			name:  "Note",
			props: map[string]any{"comment": ""},
		}}
	})
	RegisterStep("stub", "singleplot", "Plot", func() Step {
		return stubRecorder.record(&stubPlot{stubBase: stubBase{
			name: "Plot",
			props: map[string]any{
				"filename":   "",
				"parameters": map[string]any{},
			},
		}})
	})
	RegisterStep("stub", "multiplot", "PlotAll", func() Step {
		return stubRecorder.record(&stubMultiPlot{stubBase: stubBase{
			name: "PlotAll",
			props: map[string]any{
				"filename":   "",
				"parameters": map[string]any{},
			},
		}})
	})
	RegisterStep("stub", "report", "Report", func() Step {
		return stubRecorder.record(&stubReport{stubBase: stubBase{
			name: "Report",
			props: map[string]any{
				"template": "",
				"filename": "",
				"context":  map[string]any{},
				"compiler": "",
			},
		}})
	})
	RegisterStep("stub", "model", "Line", func() Step {
		return &stubModel{stubBase: stubBase{
			name:  "Line",
			props: map[string]any{"parameters": map[string]any{}, "variables": []any{}},
		}}
	})
}
