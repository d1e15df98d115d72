// Package recipe implements the recipe execution core: the recipe
// state container, the task hierarchy performing operations on
// datasets, and the registry resolving textual task descriptions into
// step objects.
package recipe

import (
	"fmt"
	"path/filepath"

	"github.com/datachef/datachef/internal/dataset"
	"go.uber.org/zap"
)

// CurrentVersion is the recipe file format version written by ToMap.
const CurrentVersion = "0.2"

// DefaultPackage is the step namespace used when neither the recipe
// settings nor a task's kind name one.
const DefaultPackage = "datachef"

// Directories holds the path roots a recipe resolves against.
type Directories struct {
	Output         string `yaml:"output,omitempty" json:"output,omitempty"`
	DatasetsSource string `yaml:"datasets_source,omitempty" json:"datasets_source,omitempty"`
}

// DatasetFactory creates datasets from persisted references.
type DatasetFactory interface {
	Create(ref dataset.Ref) (*dataset.Dataset, error)
}

// TaskFactory creates tasks from persisted task mappings.
type TaskFactory interface {
	NewTask(m map[string]any, defaultPackage string) (Task, error)
}

// Importer populates a recipe from an external representation.
type Importer interface {
	ImportInto(r *Recipe) error
	Source() string
}

// Exporter writes a recipe to an external representation.
type Exporter interface {
	ExportFrom(r *Recipe) error
}

// Recipe is the mutable state container a cook operates on: an ordered
// mapping of datasets, results and figures produced by tasks, the
// ordered task list, and global settings.
type Recipe struct {
	Results     map[string]any
	Figures     map[string]*FigureRecord
	Tasks       []Task
	Settings    map[string]any
	Directories Directories
	// Filename records the recipe's own origin.
	Filename string
	// Version is the schema version of the map the recipe was created
	// from, "0.1" for migrated legacy recipes.
	Version string

	DatasetFactory DatasetFactory
	TaskFactory    TaskFactory
	Importer       Importer
	Exporter       Exporter

	datasets     map[string]*dataset.Dataset
	datasetOrder []string
	logger       *zap.Logger
}

// New creates a recipe wired with the default dataset and task
// factories and a no-op logger.
func New() *Recipe {
	r := &Recipe{
		DatasetFactory: dataset.NewFactory(),
		TaskFactory:    defaultTaskFactory{},
	}
	r.ensureInit()
	return r
}

func (r *Recipe) ensureInit() {
	if r.Results == nil {
		r.Results = make(map[string]any)
	}
	if r.Figures == nil {
		r.Figures = make(map[string]*FigureRecord)
	}
	if r.Settings == nil {
		r.Settings = map[string]any{"default_package": DefaultPackage}
	}
	if r.datasets == nil {
		r.datasets = make(map[string]*dataset.Dataset)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.Version == "" {
		r.Version = CurrentVersion
	}
}

// SetLogger injects the logger used by tasks during perform.
func (r *Recipe) SetLogger(logger *zap.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// Logger returns the recipe's logger, never nil.
func (r *Recipe) Logger() *zap.Logger {
	r.ensureInit()
	return r.logger
}

// DefaultPackage returns the step namespace configured in the recipe
// settings, falling back to the built-in default.
func (r *Recipe) DefaultPackage() string {
	r.ensureInit()
	if pkg, ok := r.Settings["default_package"].(string); ok && pkg != "" {
		return pkg
	}
	return DefaultPackage
}

// AddDataset stores a dataset under the given identifier, preserving
// insertion order. Re-adding an identifier overwrites in place.
func (r *Recipe) AddDataset(id string, d *dataset.Dataset) {
	r.ensureInit()
	if _, exists := r.datasets[id]; !exists {
		r.datasetOrder = append(r.datasetOrder, id)
	}
	r.datasets[id] = d
}

// Dataset returns the dataset stored under id, if any.
func (r *Recipe) Dataset(id string) (*dataset.Dataset, bool) {
	return r.dataset(id)
}

func (r *Recipe) dataset(id string) (*dataset.Dataset, bool) {
	r.ensureInit()
	d, ok := r.datasets[id]
	return d, ok
}

// DatasetIDs lists dataset identifiers in insertion order.
func (r *Recipe) DatasetIDs() []string {
	return append([]string(nil), r.datasetOrder...)
}

// GetDataset looks an identifier up first in results (any dataset-typed
// result qualifies), then in datasets. A missing identifier is an
// error; an unknown one returns nil without error.
func (r *Recipe) GetDataset(id string) (*dataset.Dataset, error) {
	if id == "" {
		return nil, ErrMissingDatasetIdentifier
	}
	r.ensureInit()
	if result, ok := r.Results[id]; ok {
		if d, ok := result.(*dataset.Dataset); ok {
			return d, nil
		}
	}
	if d, ok := r.datasets[id]; ok {
		return d, nil
	}
	return nil, nil
}

// GetDatasets resolves a list of identifiers via GetDataset.
func (r *Recipe) GetDatasets(ids []string) ([]*dataset.Dataset, error) {
	if len(ids) == 0 {
		return nil, ErrMissingDatasetIdentifier
	}
	datasets := make([]*dataset.Dataset, 0, len(ids))
	for _, id := range ids {
		d, err := r.GetDataset(id)
		if err != nil {
			return nil, err
		}
		if d != nil {
			datasets = append(datasets, d)
		}
	}
	return datasets, nil
}

// deprecated v0.1 top-level keys, still accepted and migrated.
var deprecatedKeys = []string{
	"default_package",
	"autosave_plots",
	"output_directory",
	"datasets_source_directory",
}

func hasDeprecatedKeys(m map[string]any) bool {
	for _, key := range deprecatedKeys {
		if _, ok := m[key]; ok {
			return true
		}
	}
	return false
}

// migrateV01 moves the four deprecated top-level keys into settings and
// directories under their current names.
func migrateV01(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	settings, _ := out["settings"].(map[string]any)
	if settings == nil {
		settings = make(map[string]any)
	}
	directories, _ := out["directories"].(map[string]any)
	if directories == nil {
		directories = make(map[string]any)
	}
	if v, ok := out["default_package"]; ok {
		settings["default_package"] = v
		delete(out, "default_package")
	}
	if v, ok := out["autosave_plots"]; ok {
		settings["autosave_plots"] = v
		delete(out, "autosave_plots")
	}
	if v, ok := out["output_directory"]; ok {
		directories["output"] = v
		delete(out, "output_directory")
	}
	if v, ok := out["datasets_source_directory"]; ok {
		directories["datasets_source"] = v
		delete(out, "datasets_source_directory")
	}
	if len(settings) > 0 {
		out["settings"] = settings
	}
	if len(directories) > 0 {
		out["directories"] = directories
	}
	return out
}

// FromMap populates the recipe from a plain nested mapping as read
// from a recipe file, detecting the schema version and migrating
// legacy recipes first.
func (r *Recipe) FromMap(m map[string]any) error {
	if len(m) == 0 {
		return ErrMissingDict
	}
	r.ensureInit()

	version := CurrentVersion
	if format, ok := m["format"].(map[string]any); ok {
		if v, ok := format["version"].(string); ok && v != "" {
			version = v
		}
	} else if hasDeprecatedKeys(m) {
		version = "0.1"
	}
	r.Version = version
	if version == "0.1" {
		m = migrateV01(m)
	}

	if settings, ok := m["settings"].(map[string]any); ok {
		for k, v := range settings {
			r.Settings[k] = v
		}
	}
	if directories, ok := m["directories"].(map[string]any); ok {
		if v, ok := directories["output"].(string); ok {
			r.Directories.Output = v
		}
		if v, ok := directories["datasets_source"].(string); ok {
			r.Directories.DatasetsSource = v
		}
	}

	if entries, ok := m["datasets"].([]any); ok && len(entries) > 0 {
		if r.DatasetFactory == nil {
			return ErrMissingDatasetFactory
		}
		for _, entry := range entries {
			id, ref, err := r.datasetRef(entry)
			if err != nil {
				return err
			}
			d, err := r.DatasetFactory.Create(ref)
			if err != nil {
				return err
			}
			r.AddDataset(id, d)
		}
	}

	if entries, ok := m["tasks"].([]any); ok && len(entries) > 0 {
		if r.TaskFactory == nil {
			return ErrMissingTaskFactory
		}
		for _, entry := range entries {
			tm, ok := entry.(map[string]any)
			if !ok {
				return fmt.Errorf("%w: task entry %v", ErrMissingTaskDescription, entry)
			}
			task, err := r.TaskFactory.NewTask(tm, r.DefaultPackage())
			if err != nil {
				return err
			}
			r.Tasks = append(r.Tasks, task)
		}
	}
	return nil
}

// datasetRef turns a persisted dataset entry, either a bare identifier
// or the extended mapping form, into a factory reference. Relative
// sources are prefixed with the datasets_source directory.
func (r *Recipe) datasetRef(entry any) (string, dataset.Ref, error) {
	var ref dataset.Ref
	switch e := entry.(type) {
	case string:
		ref.Source = e
	case map[string]any:
		ref.Source, _ = e["source"].(string)
		ref.ID, _ = e["id"].(string)
		ref.Label, _ = e["label"].(string)
		ref.Package, _ = e["package"].(string)
		ref.Importer, _ = e["importer"].(string)
	default:
		return "", ref, fmt.Errorf("%w: dataset entry %v", ErrMissingDataset, entry)
	}

	id := ref.ID
	if id == "" {
		id = ref.Source
	}
	if id == "" {
		return "", ref, ErrMissingDatasetIdentifier
	}
	// the identifier derives from the bare source; the factory must not
	// re-derive it from the joined path
	ref.ID = id
	if ref.Source != "" && !filepath.IsAbs(ref.Source) && r.Directories.DatasetsSource != "" {
		ref.Source = filepath.Join(r.Directories.DatasetsSource, ref.Source)
	}
	return id, ref, nil
}

// ToMap renders the recipe back into its persisted form: datasets as
// the ordered identifier list, tasks as their own mappings.
func (r *Recipe) ToMap() map[string]any {
	r.ensureInit()
	datasets := make([]any, 0, len(r.datasetOrder))
	for _, id := range r.datasetOrder {
		datasets = append(datasets, id)
	}
	tasks := make([]any, 0, len(r.Tasks))
	for _, task := range r.Tasks {
		tasks = append(tasks, task.ToMap())
	}
	settings := make(map[string]any, len(r.Settings))
	for k, v := range r.Settings {
		settings[k] = v
	}
	return map[string]any{
		"format": map[string]any{
			"type":    "datachef-recipe",
			"version": CurrentVersion,
		},
		"settings": settings,
		"directories": map[string]any{
			"output":          r.Directories.Output,
			"datasets_source": r.Directories.DatasetsSource,
		},
		"datasets": datasets,
		"tasks":    tasks,
	}
}

// ImportFrom populates the recipe via the given importer, falling back
// to a preset one. The recipe's filename is set from the importer.
func (r *Recipe) ImportFrom(importer Importer) error {
	if importer == nil {
		importer = r.Importer
	}
	if importer == nil {
		return ErrMissingImporter
	}
	r.Importer = importer
	if err := importer.ImportInto(r); err != nil {
		return fmt.Errorf("failed to import recipe: %w", err)
	}
	r.Filename = importer.Source()
	return nil
}

// ExportTo writes the recipe via the given exporter, falling back to a
// preset one.
func (r *Recipe) ExportTo(exporter Exporter) error {
	if exporter == nil {
		exporter = r.Exporter
	}
	if exporter == nil {
		return ErrMissingExporter
	}
	r.Exporter = exporter
	if err := exporter.ExportFrom(r); err != nil {
		return fmt.Errorf("failed to export recipe: %w", err)
	}
	return nil
}

// AutosavePlots reports whether plot tasks without an explicit filename
// should derive one into the output directory.
func (r *Recipe) AutosavePlots() bool {
	r.ensureInit()
	v, ok := r.Settings["autosave_plots"].(bool)
	return ok && v
}
