package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Ref is the persisted description of a dataset in a recipe: either a
// bare source string or the extended mapping form with explicit id,
// label, package, and importer.
type Ref struct {
	Source   string
	ID       string
	Label    string
	Package  string
	Importer string
}

// Factory turns dataset references from a recipe into datasets,
// dispatching to an importer chosen by file extension or by the
// reference's explicit importer name.
type Factory struct {
	// SourceDirectory is prepended to relative sources.
	SourceDirectory string
	Importers       *ImporterRegistry
}

// NewFactory creates a factory with the built-in importer registry.
func NewFactory() *Factory {
	return &Factory{Importers: NewImporterRegistry()}
}

// Create builds a dataset from a reference. A missing source file is
// not an error: the dataset starts out empty and may be filled by
// tasks. Import failures of an existing file are fatal.
func (f *Factory) Create(ref Ref) (*Dataset, error) {
	source := ref.Source
	if source != "" && !filepath.IsAbs(source) && f.SourceDirectory != "" {
		source = filepath.Join(f.SourceDirectory, source)
	}

	d := New(ref.ID)
	d.Source = source
	d.Label = ref.Label
	if d.ID == "" {
		d.ID = ref.Source
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Label == "" {
		d.Label = d.ID
	}

	if source == "" {
		return d, nil
	}
	if _, err := os.Stat(source); err != nil {
		return d, nil
	}

	key := ref.Importer
	if key == "" {
		key = strings.TrimPrefix(filepath.Ext(source), ".")
	}
	imp, ok := f.Importers.Get(key)
	if !ok {
		return d, nil
	}
	if err := imp.Import(d, source); err != nil {
		return nil, fmt.Errorf("failed to import dataset %s: %w", ref.Source, err)
	}
	return d, nil
}
