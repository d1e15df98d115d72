package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolynomialEvaluates(t *testing.T) {
	step := NewPolynomial()
	step.parameters()["coefficients"] = []any{1.0, 0.0, 2.0} // 1 + 2x^2
	require.True(t, step.SetProperty("variables", []any{0.0, 1.0, 2.0}))

	d, err := step.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 9}, d.Data.Values)
	assert.True(t, d.Calculated)
	require.Len(t, d.Data.Axes, 2)
	assert.Equal(t, []float64{0, 1, 2}, d.Data.Axes[0].Values)
}

func TestPolynomialPrefersSetVariables(t *testing.T) {
	step := NewPolynomial()
	step.parameters()["coefficients"] = []any{0.0, 1.0} // identity
	step.SetProperty("variables", []any{9.0})
	step.SetVariables([][]float64{{1, 2}})

	d, err := step.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, d.Data.Values)
}

func TestPolynomialRequiresCoefficients(t *testing.T) {
	step := NewPolynomial()
	step.SetVariables([][]float64{{1}})

	_, err := step.Evaluate()
	assert.Error(t, err)
}

func TestModelRequiresVariables(t *testing.T) {
	_, err := NewZeros().Evaluate()
	assert.Error(t, err)
}

func TestModelParsesNestedVariableLists(t *testing.T) {
	step := NewOnes()
	step.SetProperty("variables", []any{[]any{1.0, 2.0, 3.0}, []any{0.0}})

	d, err := step.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, d.Data.Values)
}

func TestZerosAndOnes(t *testing.T) {
	zeros := NewZeros()
	zeros.SetVariables([][]float64{{1, 2}})
	d, err := zeros.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, d.Data.Values)

	ones := NewOnes()
	ones.SetVariables([][]float64{{1, 2, 3}})
	d, err = ones.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, d.Data.Values)
}
