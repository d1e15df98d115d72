package steps

import (
	"testing"

	"github.com/datachef/datachef/internal/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinStepsResolve(t *testing.T) {
	cases := map[string][]string{
		"processing":     {"ProcessingStep", "Normalisation", "Scaling", "BaselineCorrection"},
		"singleanalysis": {"BasicCharacteristics", "BasicStatistics"},
		"multianalysis":  {"AggregateStatistics"},
		"annotation":     {"Comment"},
		"singleplot":     {"SinglePlotter"},
		"multiplot":      {"MultiPlotter"},
		"model":          {"Polynomial", "Zeros", "Ones"},
		"report":         {"Reporter"},
	}
	for category, types := range cases {
		for _, typeName := range types {
			step, err := recipe.NewStep(Package, category, typeName)
			require.NoError(t, err, "%s.%s", category, typeName)
			assert.Equal(t, typeName, step.Name())
			assert.NotNil(t, step.Properties())
		}
	}
}

func TestUnknownStepFailsResolution(t *testing.T) {
	_, err := recipe.NewStep(Package, "processing", "DoesNotExist")
	assert.ErrorIs(t, err, recipe.ErrUnknownStep)
}
