package steps

import (
	"testing"

	"github.com/datachef/datachef/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicCharacteristicsAll(t *testing.T) {
	step := NewBasicCharacteristics()
	value, err := step.Analyze(testDataset(1, -2, 4))
	require.NoError(t, err)

	m, ok := value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, -2.0, m["min"])
	assert.Equal(t, 4.0, m["max"])
	assert.Equal(t, 6.0, m["amplitude"])
	assert.Equal(t, 3.0, m["area"])
}

func TestBasicCharacteristicsSingleKind(t *testing.T) {
	step := NewBasicCharacteristics()
	step.parameters()["kind"] = "max"

	value, err := step.Analyze(testDataset(1, -2, 4))
	require.NoError(t, err)
	assert.Equal(t, 4.0, value)
}

func TestBasicCharacteristicsUnknownKind(t *testing.T) {
	step := NewBasicCharacteristics()
	step.parameters()["kind"] = "nope"

	_, err := step.Analyze(testDataset(1))
	assert.Error(t, err)
}

func TestBasicStatistics(t *testing.T) {
	step := NewBasicStatistics()
	value, err := step.Analyze(testDataset(1, 2, 3, 4))
	require.NoError(t, err)

	m, ok := value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2.5, m["mean"])
	assert.Equal(t, 2.5, m["median"])
	assert.InDelta(t, 1.2909944, m["std"].(float64), 1e-6)
}

func TestBasicStatisticsOddMedian(t *testing.T) {
	step := NewBasicStatistics()
	step.parameters()["kind"] = "median"

	value, err := step.Analyze(testDataset(5, 1, 3))
	require.NoError(t, err)
	assert.Equal(t, 3.0, value)
}

func TestBasicStatisticsEmptyData(t *testing.T) {
	_, err := NewBasicStatistics().Analyze(testDataset())
	assert.Error(t, err)
}

func TestAggregateStatistics(t *testing.T) {
	step := NewAggregateStatistics()
	a := testDataset(1, 2, 3)
	b := testDataset(4, 5, 6)
	b.ID = "b"

	value, err := step.AnalyzeAll([]*dataset.Dataset{a, b})
	require.NoError(t, err)

	m, ok := value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 3.5, m["mean"])
	assert.Equal(t, []any{2.0, 5.0}, m["means"])
}

func TestAggregateStatisticsRejectsEmptyDataset(t *testing.T) {
	step := NewAggregateStatistics()
	_, err := step.AnalyzeAll([]*dataset.Dataset{testDataset()})
	assert.Error(t, err)
}

func TestCommentAnnotates(t *testing.T) {
	step := NewComment()
	step.SetProperty("comment", "looks fine")
	d := testDataset(1)

	require.NoError(t, step.Annotate(d))
	require.Len(t, d.Annotations, 1)
	assert.Equal(t, "comment", d.Annotations[0].Type)
	assert.Equal(t, "looks fine", d.Annotations[0].Content["comment"])
}

func TestCommentRejectsEmptyComment(t *testing.T) {
	assert.Error(t, NewComment().Annotate(testDataset(1)))
}
