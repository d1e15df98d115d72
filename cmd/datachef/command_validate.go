package main

import (
	"fmt"
	"os"

	"github.com/datachef/datachef/internal/recipeio"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a recipe file against the recipe schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateRecipe()
	},
}

func registerValidateCommand(root *cobra.Command) {
	root.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&recipeFile, "recipe", "r", "recipe.yaml", "Recipe file path")
}

func validateRecipe() error {
	fmt.Println("□ Validating recipe...")
	data, err := os.ReadFile(recipeFile)
	if err != nil {
		return fmt.Errorf("failed to read recipe file: %w", err)
	}
	m, err := recipeio.ParseRecipeMap(data)
	if err != nil {
		return err
	}
	if err := recipeio.ValidateRecipeMap(m); err != nil {
		return err
	}
	fmt.Println("✓ Recipe is valid")
	return nil
}
