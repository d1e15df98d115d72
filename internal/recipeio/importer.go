// Package recipeio reads and writes recipes in their persisted YAML
// form, validating documents against the recipe schema on import.
package recipeio

import (
	"fmt"
	"os"

	"github.com/datachef/datachef/internal/recipe"
	"gopkg.in/yaml.v3"
)

// YAMLImporter populates a recipe from a YAML recipe file.
type YAMLImporter struct {
	Filename string
	// SkipValidation disables schema validation before populating.
	SkipValidation bool
}

// NewYAMLImporter creates an importer for the given recipe file.
func NewYAMLImporter(filename string) *YAMLImporter {
	return &YAMLImporter{Filename: filename}
}

// Source returns the imported file's name, recorded as the recipe's
// provenance.
func (i *YAMLImporter) Source() string { return i.Filename }

// ImportInto reads, validates, and populates the recipe.
func (i *YAMLImporter) ImportInto(r *recipe.Recipe) error {
	if i.Filename == "" {
		return recipe.ErrMissingImporter
	}
	data, err := os.ReadFile(i.Filename)
	if err != nil {
		return fmt.Errorf("failed to read recipe file: %w", err)
	}
	m, err := ParseRecipeMap(data)
	if err != nil {
		return err
	}
	if !i.SkipValidation {
		if err := ValidateRecipeMap(m); err != nil {
			return err
		}
	}
	return r.FromMap(m)
}

// ParseRecipeMap parses YAML into the plain nested mapping form the
// recipe core consumes, with all map keys normalised to strings.
func ParseRecipeMap(data []byte) (map[string]any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse recipe YAML: %w", err)
	}
	m, ok := normalizeTree(doc).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("recipe document is not a mapping")
	}
	return m, nil
}

// normalizeTree rewrites yaml-decoded trees so every mapping is a
// map[string]any, regardless of how the decoder typed its keys.
func normalizeTree(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = normalizeTree(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprintf("%v", k)] = normalizeTree(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalizeTree(item)
		}
		return out
	default:
		return v
	}
}
