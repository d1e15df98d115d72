package steps

import (
	"errors"
	"fmt"

	"github.com/datachef/datachef/internal/dataset"
)

// model carries the state shared by all model steps: parameters plus
// the variables the model is evaluated over, either explicit or pulled
// from a dataset's axes by the task.
type model struct {
	Base
	variables [][]float64
}

func newModel(name string, parameters map[string]any) model {
	return model{Base: NewBase(name, map[string]any{
		"parameters": parameters,
		"variables":  []any{},
	})}
}

// SetVariables overrides the model's variables; used when a task pulls
// them from a dataset.
func (m *model) SetVariables(variables [][]float64) { m.variables = variables }

// vars resolves the evaluation variables: explicitly set ones win,
// otherwise the variables property is parsed.
func (m *model) vars() ([][]float64, error) {
	if len(m.variables) > 0 {
		return m.variables, nil
	}
	raw, ok := m.props["variables"].([]any)
	if !ok || len(raw) == 0 {
		return nil, errors.New("no variables to evaluate model over")
	}
	// either one flat list of numbers or a list of lists
	if _, isNested := raw[0].([]any); !isNested {
		values, err := floatSliceOf(any(raw))
		if err != nil {
			return nil, err
		}
		return [][]float64{values}, nil
	}
	out := make([][]float64, len(raw))
	for i, item := range raw {
		values, err := floatSliceOf(item)
		if err != nil {
			return nil, err
		}
		out[i] = values
	}
	return out, nil
}

// newCalculated wraps computed values into a calculated dataset over
// the model's first variable.
func (m *model) newCalculated(x, values []float64) *dataset.Dataset {
	d := dataset.New("")
	d.Calculated = true
	d.Data.Values = values
	d.Data.Axes = []dataset.Axis{
		{Values: x, Quantity: "variable"},
		{Quantity: "value"},
	}
	return d
}

// Polynomial evaluates a polynomial with the given coefficients,
// constant term first.
type Polynomial struct {
	model
}

// NewPolynomial creates a polynomial model.
func NewPolynomial() *Polynomial {
	return &Polynomial{newModel("Polynomial", map[string]any{
		"coefficients": []any{},
	})}
}

// Evaluate computes the polynomial over the model variables.
func (p *Polynomial) Evaluate() (*dataset.Dataset, error) {
	coefficients, err := floatSliceOf(p.parameters()["coefficients"])
	if err != nil {
		return nil, fmt.Errorf("polynomial coefficients: %w", err)
	}
	if len(coefficients) == 0 {
		return nil, errors.New("polynomial without coefficients")
	}
	variables, err := p.vars()
	if err != nil {
		return nil, err
	}
	x := variables[0]
	values := make([]float64, len(x))
	for i, xv := range x {
		power := 1.0
		for _, c := range coefficients {
			values[i] += c * power
			power *= xv
		}
	}
	return p.newCalculated(x, values), nil
}

// Zeros yields a calculated dataset of zeros shaped like the variables.
type Zeros struct {
	model
}

// NewZeros creates a zeros model.
func NewZeros() *Zeros {
	return &Zeros{newModel("Zeros", map[string]any{})}
}

// Evaluate returns zeros over the model variables.
func (z *Zeros) Evaluate() (*dataset.Dataset, error) {
	variables, err := z.vars()
	if err != nil {
		return nil, err
	}
	x := variables[0]
	return z.newCalculated(x, make([]float64, len(x))), nil
}

// Ones yields a calculated dataset of ones shaped like the variables.
type Ones struct {
	model
}

// NewOnes creates a ones model.
func NewOnes() *Ones {
	return &Ones{newModel("Ones", map[string]any{})}
}

// Evaluate returns ones over the model variables.
func (o *Ones) Evaluate() (*dataset.Dataset, error) {
	variables, err := o.vars()
	if err != nil {
		return nil, err
	}
	x := variables[0]
	values := make([]float64, len(x))
	for i := range values {
		values[i] = 1
	}
	return o.newCalculated(x, values), nil
}
