package steps

import (
	"testing"

	"github.com/datachef/datachef/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset(values ...float64) *dataset.Dataset {
	d := dataset.New("test")
	d.Data.Values = values
	return d
}

func TestNormalisationMaximum(t *testing.T) {
	step := NewNormalisation()
	d := testDataset(1, -4, 2)

	require.NoError(t, step.Process(d))
	assert.Equal(t, []float64{0.25, -1, 0.5}, d.Data.Values)
}

func TestNormalisationAmplitude(t *testing.T) {
	step := NewNormalisation()
	step.parameters()["kind"] = "amplitude"
	d := testDataset(0, 2, 4)

	require.NoError(t, step.Process(d))
	assert.Equal(t, []float64{0, 0.5, 1}, d.Data.Values)
}

func TestNormalisationArea(t *testing.T) {
	step := NewNormalisation()
	step.parameters()["kind"] = "area"
	d := testDataset(1, 1, 2)

	require.NoError(t, step.Process(d))
	assert.Equal(t, []float64{0.25, 0.25, 0.5}, d.Data.Values)
}

func TestNormalisationRejectsUnknownKind(t *testing.T) {
	step := NewNormalisation()
	step.parameters()["kind"] = "nope"

	assert.Error(t, step.Process(testDataset(1)))
}

func TestNormalisationRejectsEmptyData(t *testing.T) {
	assert.Error(t, NewNormalisation().Process(testDataset()))
}

func TestNormalisationRejectsAllZeroData(t *testing.T) {
	assert.Error(t, NewNormalisation().Process(testDataset(0, 0)))
}

func TestScaling(t *testing.T) {
	step := NewScaling()
	step.parameters()["factor"] = 2.5
	d := testDataset(2, 4)

	require.NoError(t, step.Process(d))
	assert.Equal(t, []float64{5, 10}, d.Data.Values)
}

func TestScalingAcceptsIntFactor(t *testing.T) {
	step := NewScaling()
	step.parameters()["factor"] = 3
	d := testDataset(1)

	require.NoError(t, step.Process(d))
	assert.Equal(t, []float64{3}, d.Data.Values)
}

func TestBaselineCorrectionOrderZero(t *testing.T) {
	step := NewBaselineCorrection()
	step.parameters()["fraction"] = 0.25
	d := testDataset(1, 5, 9, 1)

	require.NoError(t, step.Process(d))
	// offset (1+1)/2 = 1
	assert.Equal(t, []float64{0, 4, 8, 0}, d.Data.Values)
}

func TestBaselineCorrectionOrderOne(t *testing.T) {
	step := NewBaselineCorrection()
	step.parameters()["order"] = 1
	step.parameters()["fraction"] = 0.25
	d := testDataset(0, 1, 2, 3)

	require.NoError(t, step.Process(d))
	for _, v := range d.Data.Values {
		assert.InDelta(t, 0, v, 1e-12)
	}
}

func TestBaselineCorrectionRejectsHigherOrders(t *testing.T) {
	step := NewBaselineCorrection()
	step.parameters()["order"] = 2

	assert.Error(t, step.Process(testDataset(1, 2)))
}

func TestProcessingLeavesDataUntouched(t *testing.T) {
	d := testDataset(1, 2, 3)
	require.NoError(t, NewProcessing().Process(d))
	assert.Equal(t, []float64{1, 2, 3}, d.Data.Values)
}
