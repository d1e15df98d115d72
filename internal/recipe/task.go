package recipe

import (
	"fmt"
	"strings"

	"github.com/datachef/datachef/internal/dataset"
)

// Task is one operation entry in a recipe, bound to one task variant.
// A task is constructed from its persisted mapping, performed exactly
// once against the owning recipe, and representable back to a mapping.
type Task interface {
	Perform() error
	FromMap(m map[string]any) error
	ToMap() map[string]any
	SetRecipe(r *Recipe)

	base() *baseTask
}

// baseTask carries the state common to all task variants.
type baseTask struct {
	kind        string
	typeName    string
	pkg         string
	explicitPkg bool
	properties  map[string]any
	applyTo     []string
	resultIDs   []string
	resultList  bool
	label       string
	compile     bool
	comment     string
	recipe      *Recipe
}

func (t *baseTask) base() *baseTask { return t }

// SetRecipe wires the owning recipe; required before Perform.
func (t *baseTask) SetRecipe(r *Recipe) { t.recipe = r }

// FromMap populates the task from its persisted mapping.
func (t *baseTask) FromMap(m map[string]any) error {
	if len(m) == 0 {
		return ErrMissingTaskDescription
	}
	kind, _ := m["kind"].(string)
	if kind == "" {
		return ErrMissingTaskDescription
	}
	t.kind = kind
	t.typeName, _ = m["type"].(string)
	if pkg, ok := m["package"].(string); ok && pkg != "" {
		t.pkg = pkg
		t.explicitPkg = true
	}
	if props, ok := m["properties"].(map[string]any); ok {
		t.properties = props
	}
	t.applyTo = toStringList(m["apply_to"])
	if result, ok := m["result"]; ok {
		switch res := result.(type) {
		case string:
			t.resultIDs = []string{res}
		case []any:
			t.resultIDs = toStringList(res)
			t.resultList = true
		case []string:
			t.resultIDs = append([]string(nil), res...)
			t.resultList = true
		}
	}
	t.label, _ = m["label"].(string)
	t.compile, _ = m["compile"].(bool)
	t.comment, _ = m["comment"].(string)
	return nil
}

// ToMap renders the task back to its persisted mapping. The package is
// included only when it was explicit in the origin, so a round trip
// reproduces the original shape.
func (t *baseTask) ToMap() map[string]any {
	m := map[string]any{
		"kind": t.kind,
		"type": t.typeName,
	}
	if t.explicitPkg {
		m["package"] = t.pkg
	}
	if len(t.properties) > 0 {
		m["properties"] = t.properties
	}
	if len(t.applyTo) > 0 {
		applyTo := make([]any, len(t.applyTo))
		for i, id := range t.applyTo {
			applyTo[i] = id
		}
		m["apply_to"] = applyTo
	}
	switch {
	case t.resultList:
		results := make([]any, len(t.resultIDs))
		for i, id := range t.resultIDs {
			results[i] = id
		}
		m["result"] = results
	case len(t.resultIDs) == 1:
		m["result"] = t.resultIDs[0]
	}
	if t.label != "" {
		m["label"] = t.label
	}
	if t.compile {
		m["compile"] = true
	}
	if t.comment != "" {
		m["comment"] = t.comment
	}
	return m
}

// category is the task's kind stripped of any package prefix.
func (t *baseTask) category() string {
	_, category := splitKind(t.kind)
	return category
}

// resolvePackage determines the step namespace: an explicit prefix on
// kind wins, then an explicit package field, then the recipe default.
func (t *baseTask) resolvePackage(defaultPackage string) {
	if prefix, _ := splitKind(t.kind); prefix != "" {
		t.pkg = prefix
		t.explicitPkg = false
		return
	}
	if t.explicitPkg {
		return
	}
	t.pkg = defaultPackage
}

// targets resolves the dataset identifiers the task applies to. An
// empty apply_to means all datasets currently in the recipe, evaluated
// at the moment the task runs.
func (t *baseTask) targets() []string {
	if len(t.applyTo) > 0 {
		return append([]string(nil), t.applyTo...)
	}
	return t.recipe.DatasetIDs()
}

// datasetFor resolves one identifier, treating an unknown one as fatal.
func (t *baseTask) datasetFor(id string) (*dataset.Dataset, error) {
	d, err := t.recipe.GetDataset(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingDataset, id)
	}
	return d, nil
}

// buildStep constructs the task's step and applies its properties.
func (t *baseTask) buildStep() (Step, error) {
	return t.buildStepWith(t.properties)
}

func (t *baseTask) buildStepWith(props map[string]any) (Step, error) {
	if t.recipe == nil {
		return nil, ErrMissingRecipe
	}
	step, err := NewStep(t.pkg, t.category(), t.typeName)
	if err != nil {
		return nil, err
	}
	t.recipe.applyProperties(step, props)
	return step, nil
}

// propertiesWithout returns a shallow copy of the task properties with
// the given keys removed, for keys the variant handles itself.
func (t *baseTask) propertiesWithout(keys ...string) map[string]any {
	props := make(map[string]any, len(t.properties))
	for k, v := range t.properties {
		props[k] = v
	}
	for _, key := range keys {
		delete(props, key)
	}
	return props
}

func splitKind(kind string) (pkg, category string) {
	if i := strings.LastIndex(kind, "."); i >= 0 {
		return kind[:i], kind[i+1:]
	}
	return "", kind
}

func toStringList(v any) []string {
	switch list := v.(type) {
	case nil:
		return nil
	case string:
		if list == "" {
			return nil
		}
		return []string{list}
	case []string:
		return append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// taskVariants maps operation categories to their task constructors.
var taskVariants = map[string]func() Task{
	"processing":     func() Task { return &ProcessingTask{} },
	"singleanalysis": func() Task { return &SingleAnalysisTask{} },
	"multianalysis":  func() Task { return &MultiAnalysisTask{} },
	"annotation":     func() Task { return &AnnotationTask{} },
	"singleplot":     func() Task { return &SinglePlotTask{} },
	"multiplot":      func() Task { return &MultiPlotTask{} },
	"model":          func() Task { return &ModelTask{} },
	"report":         func() Task { return &ReportTask{} },
}

// defaultTaskFactory builds task variants from persisted mappings.
type defaultTaskFactory struct{}

// NewTask constructs the task variant named by the mapping's kind and
// populates it. An unresolvable kind fails before anything else runs.
func (defaultTaskFactory) NewTask(m map[string]any, defaultPackage string) (Task, error) {
	kind, _ := m["kind"].(string)
	if kind == "" {
		return nil, ErrMissingTaskDescription
	}
	_, category := splitKind(kind)
	maker, ok := taskVariants[strings.ToLower(category)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTaskKind, kind)
	}
	task := maker()
	if err := task.FromMap(m); err != nil {
		return nil, err
	}
	task.base().resolvePackage(defaultPackage)
	return task, nil
}

// NewTaskFactory returns the built-in task factory.
func NewTaskFactory() TaskFactory { return defaultTaskFactory{} }
