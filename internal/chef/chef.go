// Package chef executes a recipe's tasks strictly in order and records
// the complete, replayable history of one cook.
package chef

import (
	"fmt"
	"time"

	"github.com/datachef/datachef/internal/recipe"
	"go.uber.org/zap"
)

// State of a cook: idle until a recipe arrives, cooking while tasks
// run, done after the last task completed.
type State int

const (
	Idle State = iota
	Cooking
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Cooking:
		return "cooking"
	case Done:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Chef walks a recipe's task list in order, performs each task, and
// appends its record to the history immediately after it completes.
// A failure mid-recipe leaves the history truncated at the last
// completed task.
type Chef struct {
	Recipe  *recipe.Recipe
	History History

	state  State
	logger *zap.Logger
}

// New creates a chef, optionally preset with a recipe.
func New(r *recipe.Recipe) *Chef {
	return &Chef{Recipe: r, logger: zap.NewNop()}
}

// SetLogger injects the logger used during cooking.
func (c *Chef) SetLogger(logger *zap.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// State returns the chef's current state.
func (c *Chef) State() State { return c.state }

func (c *Chef) transition(from, to State) error {
	if c.state != from {
		return fmt.Errorf("invalid transition: expected %s, got %s", from, c.state)
	}
	c.state = to
	return nil
}

// Cook executes the recipe's tasks in order. Without a recipe argument
// a preset one is used; without either, cooking fails.
func (c *Chef) Cook(r *recipe.Recipe) error {
	if r == nil {
		r = c.Recipe
	}
	if r == nil {
		return recipe.ErrMissingRecipe
	}
	c.Recipe = r
	c.History = NewHistory()
	if err := c.transition(Idle, Cooking); err != nil {
		return err
	}
	c.History.Info.Start = time.Now().Format(time.RFC3339)
	r.SetLogger(c.logger)

	for i, task := range r.Tasks {
		description := task.ToMap()
		c.logger.Info("performing task",
			zap.Int("index", i),
			zap.Any("kind", description["kind"]),
			zap.Any("type", description["type"]))
		task.SetRecipe(r)
		if err := task.Perform(); err != nil {
			return fmt.Errorf("task %d (%v) failed: %w", i, description["kind"], err)
		}
		c.History.Tasks = append(c.History.Tasks, task.ToMap())
	}

	c.History.Info.End = time.Now().Format(time.RFC3339)
	c.History.DefaultPackage = r.DefaultPackage()
	c.History.Datasets = r.DatasetIDs()
	return c.transition(Cooking, Done)
}
