package chef

import (
	"github.com/datachef/datachef/internal/sysinfo"
)

// TimeFrame records when a cook started and ended.
type TimeFrame struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// History is the write-once record of one cook. Serialised, it is a
// valid recipe again: its datasets and tasks re-import as they ran.
// Field order is the serialisation key order and is part of the format.
type History struct {
	SystemInfo     sysinfo.Info     `yaml:"system_info" json:"systemInfo"`
	DefaultPackage string           `yaml:"default_package" json:"defaultPackage"`
	Datasets       []string         `yaml:"datasets" json:"datasets"`
	Tasks          []map[string]any `yaml:"tasks" json:"tasks"`
	Info           TimeFrame        `yaml:"info" json:"info"`
}

// NewHistory creates a history stamped with the current system info.
func NewHistory() History {
	return History{
		SystemInfo: sysinfo.Collect(),
		Datasets:   []string{},
		Tasks:      []map[string]any{},
	}
}
