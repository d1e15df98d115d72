package recipe

// Caption describes a figure: a short title, a longer text, and the
// parameter names worth mentioning alongside.
type Caption struct {
	Title      string   `yaml:"title,omitempty" json:"title,omitempty"`
	Text       string   `yaml:"text,omitempty" json:"text,omitempty"`
	Parameters []string `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// FigureRecord is the persisted description of a produced plot. It is
// created from the finished plotter's state and never mutated afterward.
type FigureRecord struct {
	Caption    Caption        `yaml:"caption" json:"caption"`
	Parameters map[string]any `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Filename   string         `yaml:"filename,omitempty" json:"filename,omitempty"`
	Label      string         `yaml:"label,omitempty" json:"label,omitempty"`
}

// NewFigureRecord builds a figure record from a finished plotter.
func NewFigureRecord(p PlotterStep) (*FigureRecord, error) {
	if p == nil {
		return nil, ErrMissingPlotter
	}
	return &FigureRecord{
		Caption:    p.CaptionInfo(),
		Parameters: p.PlotParameters(),
		Filename:   p.Filename(),
	}, nil
}
