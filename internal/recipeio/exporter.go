package recipeio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/datachef/datachef/internal/recipe"
	"gopkg.in/yaml.v3"
)

// YAMLExporter writes a recipe's persisted form to a YAML file.
type YAMLExporter struct {
	Filename string
}

// NewYAMLExporter creates an exporter for the given target file.
func NewYAMLExporter(filename string) *YAMLExporter {
	return &YAMLExporter{Filename: filename}
}

// ExportFrom writes the recipe to the exporter's target file.
func (e *YAMLExporter) ExportFrom(r *recipe.Recipe) error {
	if e.Filename == "" {
		return recipe.ErrMissingExporter
	}
	data, err := yaml.Marshal(r.ToMap())
	if err != nil {
		return fmt.Errorf("failed to render recipe: %w", err)
	}
	return writeFile(e.Filename, data)
}

func writeFile(filename string, data []byte) error {
	if dir := filepath.Dir(filename); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// WriteHistory serialises a cook history to a YAML file. The written
// file is itself a valid, re-importable recipe.
func WriteHistory(history any, filename string) error {
	data, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to render history: %w", err)
	}
	return writeFile(filename, data)
}
