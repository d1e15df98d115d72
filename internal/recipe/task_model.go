package recipe

import "fmt"

// ModelTask evaluates a model over explicit variables or over the axis
// values of a named dataset, and always stores the outcome as a newly
// created calculated dataset in the recipe's results.
type ModelTask struct {
	baseTask
}

// Perform evaluates the model once.
func (t *ModelTask) Perform() error {
	if t.recipe == nil {
		return ErrMissingRecipe
	}
	if len(t.resultIDs) == 0 {
		return ErrMissingResultIdentifier
	}
	step, err := t.buildStepWith(t.propertiesWithout("from_dataset"))
	if err != nil {
		return err
	}
	model, ok := step.(ModelStep)
	if !ok {
		return fmt.Errorf("step %s.%s.%s is not a model", t.pkg, t.category(), t.typeName)
	}

	if from, ok := t.properties["from_dataset"].(string); ok && from != "" {
		d, err := t.datasetFor(from)
		if err != nil {
			return err
		}
		variables := make([][]float64, 0, len(d.Data.Axes))
		for _, axis := range d.Data.Axes {
			if len(axis.Values) > 0 {
				variables = append(variables, append([]float64(nil), axis.Values...))
			}
		}
		model.SetVariables(variables)
	}

	calculated, err := model.Evaluate()
	if err != nil {
		return err
	}
	resultID := t.resultIDs[0]
	calculated.ID = resultID
	calculated.Calculated = true
	t.recipe.Results[resultID] = calculated
	return nil
}
