// Package service provides the serving entry point: load a recipe
// file, cook it, persist the artifacts, and write the history file.
package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/datachef/datachef/internal/chef"
	"github.com/datachef/datachef/internal/recipe"
	"github.com/datachef/datachef/internal/recipeio"
	_ "github.com/datachef/datachef/internal/steps" // built-in step registrations
	"go.uber.org/zap"
)

// ChefDeService serves a recipe file end to end and returns the name
// of the written history file. Repeated serves of the same recipe get
// distinct history files.
type ChefDeService struct {
	// RecipeFilename is an optional preset used when Serve is called
	// without a filename.
	RecipeFilename string

	logger *zap.Logger
	chef   *chef.Chef
	recipe *recipe.Recipe
}

// New creates a service with a no-op logger.
func New() *ChefDeService {
	return &ChefDeService{logger: zap.NewNop()}
}

// SetLogger injects the logger handed down to the chef.
func (s *ChefDeService) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Recipe returns the recipe of the last serve, for inspection.
func (s *ChefDeService) Recipe() *recipe.Recipe { return s.recipe }

// Serve loads the recipe file, cooks it, writes the cook's history
// next to it under a collision-avoiding name, and returns that name.
func (s *ChefDeService) Serve(recipeFilename string) (string, error) {
	if recipeFilename == "" {
		recipeFilename = s.RecipeFilename
	}
	if recipeFilename == "" {
		return "", recipe.ErrMissingRecipe
	}
	s.RecipeFilename = recipeFilename

	r := recipe.New()
	r.SetLogger(s.logger)
	if err := r.ImportFrom(recipeio.NewYAMLImporter(recipeFilename)); err != nil {
		return "", err
	}
	if r.Directories.Output != "" {
		if err := os.MkdirAll(r.Directories.Output, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	s.recipe = r

	s.chef = chef.New(r)
	s.chef.SetLogger(s.logger)
	if err := s.chef.Cook(nil); err != nil {
		return "", err
	}

	historyFilename := s.historyFilename(recipeFilename)
	if err := recipeio.WriteHistory(s.chef.History, historyFilename); err != nil {
		return "", err
	}
	s.logger.Info("recipe served",
		zap.String("recipe", recipeFilename),
		zap.String("history", historyFilename),
		zap.Int("tasks", len(s.chef.History.Tasks)))
	return historyFilename, nil
}

// historyFilename derives the history file's name from the recipe
// filename, probing for the smallest free numeric suffix so repeated
// serves never overwrite each other.
func (s *ChefDeService) historyFilename(recipeFilename string) string {
	base := strings.TrimSuffix(recipeFilename, filepath.Ext(recipeFilename))
	for n := 0; ; n++ {
		candidate := fmt.Sprintf("%s-%d.yaml", base, n)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
