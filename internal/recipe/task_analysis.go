package recipe

import "fmt"

// SingleAnalysisTask applies an analysis step to each targeted dataset
// separately and stores the computed values into the recipe's results.
type SingleAnalysisTask struct {
	baseTask
}

// Perform analyses each targeted dataset with a fresh step instance.
// A single result identifier with several targets collects the values
// into a list; a parallel identifier list stores one value each.
func (t *SingleAnalysisTask) Perform() error {
	if t.recipe == nil {
		return ErrMissingRecipe
	}
	ids := t.targets()
	if len(t.resultIDs) > 1 && len(t.resultIDs) != len(ids) {
		return fmt.Errorf("result identifiers (%d) do not match targeted datasets (%d)",
			len(t.resultIDs), len(ids))
	}
	values := make([]any, 0, len(ids))
	for i, id := range ids {
		d, err := t.datasetFor(id)
		if err != nil {
			return err
		}
		step, err := t.buildStep()
		if err != nil {
			return err
		}
		analysis, ok := step.(AnalysisStep)
		if !ok {
			return fmt.Errorf("step %s.%s.%s is not an analysis step", t.pkg, t.category(), t.typeName)
		}
		value, err := d.Analyze(analysis)
		if err != nil {
			return err
		}
		if len(t.resultIDs) == len(ids) && len(t.resultIDs) > 0 {
			t.recipe.Results[t.resultIDs[i]] = value
			continue
		}
		values = append(values, value)
	}
	if len(t.resultIDs) == 1 && len(ids) > 1 {
		t.recipe.Results[t.resultIDs[0]] = values
	}
	return nil
}

// MultiAnalysisTask applies an analysis step once over the whole list
// of targeted datasets.
type MultiAnalysisTask struct {
	baseTask
}

// Perform runs the multi-dataset analysis and stores its outcome:
// a single identifier receives the whole value, a list of identifiers
// is zipped with a list-valued outcome.
func (t *MultiAnalysisTask) Perform() error {
	if t.recipe == nil {
		return ErrMissingRecipe
	}
	ids := t.targets()
	datasets, err := t.recipe.GetDatasets(ids)
	if err != nil {
		return err
	}
	step, err := t.buildStep()
	if err != nil {
		return err
	}
	analysis, ok := step.(MultiAnalysisStep)
	if !ok {
		return fmt.Errorf("step %s.%s.%s is not a multi-analysis step", t.pkg, t.category(), t.typeName)
	}
	value, err := analysis.AnalyzeAll(datasets)
	if err != nil {
		return err
	}
	switch {
	case len(t.resultIDs) == 1 && !t.resultList:
		t.recipe.Results[t.resultIDs[0]] = value
	case len(t.resultIDs) > 0:
		values, ok := value.([]any)
		if !ok || len(values) < len(t.resultIDs) {
			return fmt.Errorf("analysis %s returned no value list for %d result identifiers",
				t.typeName, len(t.resultIDs))
		}
		for i, resultID := range t.resultIDs {
			t.recipe.Results[resultID] = values[i]
		}
	}
	return nil
}
