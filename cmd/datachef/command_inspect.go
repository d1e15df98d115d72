package main

import (
	"fmt"

	"github.com/datachef/datachef/internal/recipe"
	"github.com/datachef/datachef/internal/recipeio"
	_ "github.com/datachef/datachef/internal/steps" // built-in step registrations
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect a recipe without cooking it",
	Long:  "Load a recipe file and print its datasets, tasks, and settings.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspectRecipe()
	},
}

func registerInspectCommand(root *cobra.Command) {
	root.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&recipeFile, "recipe", "r", "recipe.yaml", "Recipe file path")
}

func inspectRecipe() error {
	fmt.Println("□ Loading recipe...")
	r := recipe.New()
	if err := r.ImportFrom(recipeio.NewYAMLImporter(recipeFile)); err != nil {
		return err
	}

	fmt.Printf("\nRecipe: %s (format %s)\n", r.Filename, r.Version)
	fmt.Printf("Default package: %s\n", r.DefaultPackage())
	if r.Directories.Output != "" {
		fmt.Printf("Output directory: %s\n", r.Directories.Output)
	}
	if r.Directories.DatasetsSource != "" {
		fmt.Printf("Datasets source: %s\n", r.Directories.DatasetsSource)
	}

	ids := r.DatasetIDs()
	fmt.Printf("Datasets: %d\n", len(ids))
	for _, id := range ids {
		d, _ := r.Dataset(id)
		fmt.Printf("  - %s (label: %s, points: %d)\n", id, d.Label, len(d.Data.Values))
	}

	fmt.Printf("Tasks: %d\n", len(r.Tasks))
	for i, task := range r.Tasks {
		m := task.ToMap()
		fmt.Printf("  %d. %v: %v\n", i+1, m["kind"], m["type"])
	}
	return nil
}
