package recipe

import "fmt"

// ProcessingTask applies a processing step to each targeted dataset,
// mutating the datasets in place. With a result identifier, a copy of
// the processed dataset is stored into the recipe's results.
type ProcessingTask struct {
	baseTask
}

// Perform runs the processing step over the targeted datasets, one
// fresh step instance per dataset.
func (t *ProcessingTask) Perform() error {
	if t.recipe == nil {
		return ErrMissingRecipe
	}
	ids := t.targets()
	if len(t.resultIDs) > 0 && len(t.resultIDs) != len(ids) {
		return fmt.Errorf("result identifiers (%d) do not match targeted datasets (%d)",
			len(t.resultIDs), len(ids))
	}
	for i, id := range ids {
		d, err := t.datasetFor(id)
		if err != nil {
			return err
		}
		step, err := t.buildStep()
		if err != nil {
			return err
		}
		proc, ok := step.(ProcessingStep)
		if !ok {
			return fmt.Errorf("step %s.%s.%s is not a processing step", t.pkg, t.category(), t.typeName)
		}
		if err := d.Process(proc); err != nil {
			return err
		}
		if len(t.resultIDs) > 0 {
			resultID := t.resultIDs[i]
			processed := d.Copy()
			processed.ID = resultID
			t.recipe.Results[resultID] = processed
		}
	}
	return nil
}

// AnnotationTask attaches an annotation to each targeted dataset. The
// annotation lives on the dataset; nothing is routed back.
type AnnotationTask struct {
	baseTask
}

// Perform annotates each targeted dataset.
func (t *AnnotationTask) Perform() error {
	if t.recipe == nil {
		return ErrMissingRecipe
	}
	for _, id := range t.targets() {
		d, err := t.datasetFor(id)
		if err != nil {
			return err
		}
		step, err := t.buildStep()
		if err != nil {
			return err
		}
		ann, ok := step.(AnnotationStep)
		if !ok {
			return fmt.Errorf("step %s.%s.%s is not an annotation step", t.pkg, t.category(), t.typeName)
		}
		if err := d.Annotate(ann); err != nil {
			return err
		}
	}
	return nil
}
