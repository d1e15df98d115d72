// Package steps provides the built-in operation steps recipes can
// dispatch to: processing, analysis, annotation, plotting, models, and
// reports. Each step declares its properties up front; task property
// assignment only ever touches declared keys.
package steps

import "fmt"

// Base carries the name and property map common to all steps.
type Base struct {
	name  string
	props map[string]any
}

// NewBase creates a step base with the given declared properties.
func NewBase(name string, props map[string]any) Base {
	if props == nil {
		props = make(map[string]any)
	}
	return Base{name: name, props: props}
}

// Name returns the step's type name.
func (b *Base) Name() string { return b.name }

// Properties returns the step's live property map.
func (b *Base) Properties() map[string]any { return b.props }

// SetProperty overwrites a declared property and reports whether the
// step declares it.
func (b *Base) SetProperty(name string, value any) bool {
	if _, ok := b.props[name]; !ok {
		return false
	}
	b.props[name] = value
	return true
}

// parameters returns the step's parameters sub-map, never nil.
func (b *Base) parameters() map[string]any {
	if params, ok := b.props["parameters"].(map[string]any); ok {
		return params
	}
	return map[string]any{}
}

func (b *Base) stringProp(name string) string {
	s, _ := b.props[name].(string)
	return s
}

func floatOf(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func floatSliceOf(v any) ([]float64, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of numbers, got %T", v)
	}
	out := make([]float64, len(items))
	for i, item := range items {
		n, ok := floatOf(item)
		if !ok {
			return nil, fmt.Errorf("expected a number, got %T", item)
		}
		out[i] = n
	}
	return out, nil
}
