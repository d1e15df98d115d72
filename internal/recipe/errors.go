package recipe

import "errors"

// Missing-input errors. All of them surface immediately and are never
// recovered internally; callers match them with errors.Is.
var (
	ErrMissingRecipe            = errors.New("no recipe provided")
	ErrMissingDict              = errors.New("no dict to create recipe from")
	ErrMissingDataset           = errors.New("no dataset available")
	ErrMissingDatasetIdentifier = errors.New("no dataset identifier provided")
	ErrMissingDatasetFactory    = errors.New("no dataset factory available")
	ErrMissingTaskFactory       = errors.New("no task factory available")
	ErrMissingTaskDescription   = errors.New("no task description provided")
	ErrMissingImporter          = errors.New("no importer provided")
	ErrMissingExporter          = errors.New("no exporter provided")
	ErrMissingPlotter           = errors.New("no plotter provided")
	ErrMissingResultIdentifier  = errors.New("no result identifier provided")
)

// Resolution errors: a kind/type that cannot be resolved fails loudly,
// before any property is applied.
var (
	ErrUnknownStep     = errors.New("unknown step")
	ErrUnknownTaskKind = errors.New("unknown task kind")
)
