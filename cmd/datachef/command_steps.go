package main

import (
	"fmt"
	"strings"

	"github.com/datachef/datachef/internal/recipe"
	_ "github.com/datachef/datachef/internal/steps" // built-in step registrations
	"github.com/spf13/cobra"
)

var stepsCmd = &cobra.Command{
	Use:     "steps [category]",
	Aliases: []string{"step"},
	Short:   "List available step types",
	Long:    "List all registered step types, optionally filtered by category (processing, singleanalysis, ...).",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listSteps(args)
	},
}

func registerStepsCommand(root *cobra.Command) {
	root.AddCommand(stepsCmd)
}

func listSteps(args []string) error {
	var category string
	if len(args) > 0 {
		category = args[0]
	}

	fmt.Println("Available steps:")
	for _, key := range recipe.RegisteredSteps() {
		parts := strings.SplitN(key, ".", 3)
		if len(parts) != 3 {
			continue
		}
		if category != "" && parts[1] != category {
			continue
		}
		fmt.Printf("  %-16s %s (package %s)\n", parts[1], parts[2], parts[0])
	}
	return nil
}
