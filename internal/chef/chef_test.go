package chef

import (
	"testing"

	"github.com/datachef/datachef/internal/dataset"
	"github.com/datachef/datachef/internal/recipe"
	_ "github.com/datachef/datachef/internal/steps" // built-in step registrations
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCookableRecipe(t *testing.T, tasks []any) *recipe.Recipe {
	t.Helper()
	r := recipe.New()
	for _, id := range []string{"foo", "bar"} {
		d := dataset.New(id)
		d.Data.Values = []float64{1, 2, 3}
		d.Data.Axes = []dataset.Axis{{Values: []float64{0, 1, 2}, Quantity: "index"}}
		r.AddDataset(id, d)
	}
	require.NoError(t, r.FromMap(map[string]any{"tasks": tasks}))
	return r
}

func TestCookRunsTasksInOrder(t *testing.T) {
	r := newCookableRecipe(t, []any{
		map[string]any{
			"kind": "processing",
			"type": "Scaling",
			"properties": map[string]any{
				"parameters": map[string]any{"factor": 2.0},
			},
		},
		map[string]any{
			"kind":   "singleanalysis",
			"type":   "BasicStatistics",
			"result": []any{"stats-foo", "stats-bar"},
		},
	})
	c := New(nil)

	require.NoError(t, c.Cook(r))

	assert.Equal(t, Done, c.State())
	d, _ := r.Dataset("foo")
	assert.Equal(t, []float64{2, 4, 6}, d.Data.Values)
	stats, ok := r.Results["stats-foo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 4.0, stats["mean"])
}

func TestCookRecordsHistory(t *testing.T) {
	r := newCookableRecipe(t, []any{
		map[string]any{"kind": "processing", "type": "ProcessingStep"},
	})
	c := New(r)

	require.NoError(t, c.Cook(nil))

	assert.Equal(t, []string{"foo", "bar"}, c.History.Datasets)
	assert.Equal(t, "datachef", c.History.DefaultPackage)
	require.Len(t, c.History.Tasks, 1)
	assert.Equal(t, "processing", c.History.Tasks[0]["kind"])
	assert.Equal(t, "ProcessingStep", c.History.Tasks[0]["type"])
	assert.NotEmpty(t, c.History.Info.Start)
	assert.NotEmpty(t, c.History.Info.End)
	assert.NotEmpty(t, c.History.SystemInfo.Version)
}

func TestCookEvaluatesModelFromRecipeProperties(t *testing.T) {
	r := recipe.New()
	require.NoError(t, r.FromMap(map[string]any{
		"tasks": []any{
			map[string]any{
				"kind":   "model",
				"type":   "Polynomial",
				"result": "calc",
				"properties": map[string]any{
					"parameters": map[string]any{"coefficients": []any{1.0, 2.0}},
					"variables":  []any{0.0, 1.0, 2.0},
				},
			},
		},
	}))
	c := New(r)

	require.NoError(t, c.Cook(nil))

	calc, ok := r.Results["calc"].(*dataset.Dataset)
	require.True(t, ok)
	assert.True(t, calc.Calculated)
	assert.Equal(t, []float64{1, 3, 5}, calc.Data.Values)
}

func TestCookAppliesCaptionParameters(t *testing.T) {
	r := newCookableRecipe(t, []any{
		map[string]any{
			"kind":     "singleplot",
			"type":     "SinglePlotter",
			"apply_to": []any{"foo"},
			"label":    "overview",
			"properties": map[string]any{
				"caption": map[string]any{
					"title":      "scaled data",
					"parameters": []any{"factor", "offset"},
				},
			},
		},
	})
	c := New(r)

	require.NoError(t, c.Cook(nil))

	record, ok := r.Figures["overview"]
	require.True(t, ok)
	assert.Equal(t, "scaled data", record.Caption.Title)
	assert.Equal(t, []string{"factor", "offset"}, record.Caption.Parameters)
}

func TestCookFailureTruncatesHistory(t *testing.T) {
	r := newCookableRecipe(t, []any{
		map[string]any{"kind": "processing", "type": "ProcessingStep"},
		map[string]any{"kind": "processing", "type": "Unknown"},
		map[string]any{"kind": "processing", "type": "ProcessingStep"},
	})
	c := New(r)

	err := c.Cook(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, recipe.ErrUnknownStep)

	assert.Equal(t, Cooking, c.State())
	require.Len(t, c.History.Tasks, 1)
	assert.Empty(t, c.History.Info.End)
}

func TestCookWithoutRecipe(t *testing.T) {
	c := New(nil)
	assert.ErrorIs(t, c.Cook(nil), recipe.ErrMissingRecipe)
	assert.Equal(t, Idle, c.State())
}

func TestCookTwiceFails(t *testing.T) {
	r := newCookableRecipe(t, nil)
	c := New(r)

	require.NoError(t, c.Cook(nil))
	assert.Error(t, c.Cook(r))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "cooking", Cooking.String())
	assert.Equal(t, "done", Done.String())
}
