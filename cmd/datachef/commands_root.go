package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	recipeFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "datachef",
	Short: "Recipe-driven data processing: Recipe → Cook → History",
	Long:  "datachef executes declarative recipes over datasets and records a fully replayable history of every cook",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	registerServeCommand(rootCmd)
	registerValidateCommand(rootCmd)
	registerStepsCommand(rootCmd)
	registerInspectCommand(rootCmd)
}

// newLogger builds the process logger; verbose switches to debug level.
func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	return config.Build()
}
