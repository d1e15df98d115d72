package steps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/datachef/datachef/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSinglePlotterWritesDescription(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "plots", "foo.pdf")
	step := NewSinglePlotter()
	step.SetFilename(filename)
	step.SetProperty("caption", map[string]any{"title": "a plot"})

	d := testDataset(1, 2, 3)
	d.ID = "foo"
	require.NoError(t, step.Plot(d))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	var description plotDescription
	require.NoError(t, yaml.Unmarshal(data, &description))
	assert.Equal(t, "SinglePlotter", description.Plotter)
	assert.Equal(t, []string{"foo"}, description.Datasets)
	assert.Equal(t, []int{3}, description.Points)
	assert.Equal(t, "a plot", description.Title)
}

func TestSinglePlotterWithoutFilenameIsNoop(t *testing.T) {
	step := NewSinglePlotter()
	assert.NoError(t, step.Plot(testDataset(1)))
}

func TestMultiPlotterCoversAllDatasets(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "all.pdf")
	step := NewMultiPlotter()
	step.SetFilename(filename)

	a := testDataset(1, 2)
	a.ID = "a"
	b := testDataset(3)
	b.ID = "b"
	require.NoError(t, step.PlotAll([]*dataset.Dataset{a, b}))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	var description plotDescription
	require.NoError(t, yaml.Unmarshal(data, &description))
	assert.Equal(t, []string{"a", "b"}, description.Datasets)
	assert.Equal(t, []int{2, 1}, description.Points)
}

func TestPlotterCaptionInfo(t *testing.T) {
	step := NewSinglePlotter()
	step.SetProperty("caption", map[string]any{
		"title":      "title",
		"text":       "text",
		"parameters": []any{"factor"},
	})

	caption := step.CaptionInfo()
	assert.Equal(t, "title", caption.Title)
	assert.Equal(t, "text", caption.Text)
	assert.Equal(t, []string{"factor"}, caption.Parameters)
}
