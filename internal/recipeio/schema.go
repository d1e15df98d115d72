package recipeio

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// recipeSchema describes the persisted recipe form, including the
// deprecated v0.1 top-level keys that are still accepted and migrated.
const recipeSchema = `
$schema: http://json-schema.org/draft-07/schema#
type: object
properties:
  format:
    type: object
    properties:
      type:
        type: string
      version:
        type: string
  settings:
    type: object
  directories:
    type: object
    properties:
      output:
        type: string
      datasets_source:
        type: string
  default_package:
    type: string
  autosave_plots:
    type: boolean
  output_directory:
    type: string
  datasets_source_directory:
    type: string
  datasets:
    type: array
    items:
      oneOf:
        - type: string
        - type: object
          properties:
            source:
              type: string
            id:
              type: string
            label:
              type: string
            package:
              type: string
            importer:
              type: string
  tasks:
    type: array
    items:
      type: object
      required: [kind, type]
      properties:
        kind:
          type: string
        type:
          type: string
        package:
          type: string
        properties:
          type: object
        apply_to: {}
        result: {}
        label:
          type: string
        compile:
          type: boolean
  system_info:
    type: object
  info:
    type: object
`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	var schemaData any
	if err := yaml.Unmarshal([]byte(recipeSchema), &schemaData); err != nil {
		panic(fmt.Sprintf("invalid recipe schema: %v", err))
	}
	jsonData, err := json.Marshal(schemaData)
	if err != nil {
		panic(fmt.Sprintf("invalid recipe schema: %v", err))
	}
	schema, err := jsonschema.CompileString("recipe.schema.json", string(jsonData))
	if err != nil {
		panic(fmt.Sprintf("invalid recipe schema: %v", err))
	}
	return schema
}

// ValidateRecipeMap validates a parsed recipe document against the
// recipe schema. The document is normalised through JSON first so the
// validator sees plain JSON types.
func ValidateRecipeMap(m map[string]any) error {
	jsonData, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to normalise recipe document: %w", err)
	}
	var instance any
	if err := json.Unmarshal(jsonData, &instance); err != nil {
		return fmt.Errorf("failed to normalise recipe document: %w", err)
	}
	if err := compiledSchema.Validate(instance); err != nil {
		return fmt.Errorf("recipe failed schema validation: %w", err)
	}
	return nil
}
