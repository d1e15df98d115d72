package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Importer reads data from a source into a dataset.
type Importer interface {
	Import(d *Dataset, source string) error
}

// ImporterFunc adapts a function to the Importer interface.
type ImporterFunc func(d *Dataset, source string) error

// Import calls f.
func (f ImporterFunc) Import(d *Dataset, source string) error { return f(d, source) }

// ImporterRegistry maps file extensions (or explicit importer names) to
// importers. Extensions are stored without the leading dot.
type ImporterRegistry struct {
	importers map[string]Importer
}

// NewImporterRegistry creates a registry preloaded with the built-in
// plain-text importers.
func NewImporterRegistry() *ImporterRegistry {
	r := &ImporterRegistry{importers: make(map[string]Importer)}
	r.Register("txt", ImporterFunc(importText))
	r.Register("dat", ImporterFunc(importText))
	r.Register("csv", ImporterFunc(importText))
	return r
}

// Register adds an importer under the given key.
func (r *ImporterRegistry) Register(key string, imp Importer) {
	r.importers[strings.TrimPrefix(key, ".")] = imp
}

// Get returns the importer registered for key, if any.
func (r *ImporterRegistry) Get(key string) (Importer, bool) {
	imp, ok := r.importers[strings.TrimPrefix(key, ".")]
	return imp, ok
}

// importText reads whitespace- or comma-separated numeric columns. One
// column becomes values with an index axis; two columns become axis
// values plus data values. Lines starting with '#' are comments.
func importText(d *Dataset, source string) error {
	f, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	var xs, ys []float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == ';'
		})
		switch len(fields) {
		case 1:
			y, err := strconv.ParseFloat(fields[0], 64)
			if err != nil {
				return fmt.Errorf("failed to parse value %q: %w", fields[0], err)
			}
			ys = append(ys, y)
		default:
			x, err := strconv.ParseFloat(fields[0], 64)
			if err != nil {
				return fmt.Errorf("failed to parse value %q: %w", fields[0], err)
			}
			y, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return fmt.Errorf("failed to parse value %q: %w", fields[1], err)
			}
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read data file: %w", err)
	}

	if len(xs) == 0 {
		xs = make([]float64, len(ys))
		for i := range xs {
			xs[i] = float64(i)
		}
	}
	d.Data.Values = ys
	d.Data.Axes = []Axis{{Values: xs, Quantity: "index"}, {Quantity: "value"}}
	return nil
}
