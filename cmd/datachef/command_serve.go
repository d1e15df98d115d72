package main

import (
	"fmt"

	"github.com/datachef/datachef/internal/service"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"cook"},
	Short:   "Cook a recipe and write its history",
	Long:    "Load a recipe file, execute its tasks in order, persist results, figures, and reports, and write the replayable history file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveRecipe()
	},
}

func registerServeCommand(root *cobra.Command) {
	root.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&recipeFile, "recipe", "r", "recipe.yaml", "Recipe file path")
}

func serveRecipe() error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	fmt.Println("□ Serving recipe...")
	s := service.New()
	s.SetLogger(logger)
	historyFile, err := s.Serve(recipeFile)
	if err != nil {
		return fmt.Errorf("failed to serve recipe: %w", err)
	}

	fmt.Printf("✓ Recipe served: %s\n", recipeFile)
	fmt.Printf("✓ History written to: %s\n", historyFile)
	return nil
}
