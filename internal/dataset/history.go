package dataset

import (
	"time"

	"github.com/datachef/datachef/internal/sysinfo"
)

// HistoryRecord captures one operation applied to a dataset: what ran,
// with which parameters, when, and on which system.
type HistoryRecord struct {
	Kind       string         `yaml:"kind" json:"kind"`
	Type       string         `yaml:"type" json:"type"`
	Parameters map[string]any `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Start      string         `yaml:"start" json:"start"`
	End        string         `yaml:"end,omitempty" json:"end,omitempty"`
	SystemInfo sysinfo.Info   `yaml:"system_info" json:"systemInfo"`
}

func newHistoryRecord(kind string, op Operation) HistoryRecord {
	return HistoryRecord{
		Kind:       kind,
		Type:       op.Name(),
		Parameters: copyMap(op.Properties()),
		Start:      time.Now().Format(time.RFC3339),
		SystemInfo: sysinfo.Collect(),
	}
}

func (r HistoryRecord) copy() HistoryRecord {
	c := r
	c.Parameters = copyMap(r.Parameters)
	return c
}
