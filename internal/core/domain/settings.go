package domain

import "slices"

// StorageFormat names an on-disk split format.
type StorageFormat string

// Supported storage formats.
const (
	// FormatArrow is the Arrow IPC directory layout written by save_to_disk.
	FormatArrow StorageFormat = "arrow"

	// FormatJSONL is one JSON object per line in data.jsonl.
	FormatJSONL StorageFormat = "jsonl"
)

// IsValid returns true if the format is recognised.
func (f StorageFormat) IsValid() bool {
	switch f {
	case FormatArrow, FormatJSONL:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f StorageFormat) String() string {
	return string(f)
}

// Settings is the resolved application configuration.
type Settings struct {
	// DatasetRoot is the directory holding train_set, dev_set and test_set.
	DatasetRoot string

	// Format is the on-disk split format.
	Format StorageFormat

	// Samples is the number of before/after pairs shown per split.
	Samples int

	// HistoryEnabled records run summaries in the history store.
	HistoryEnabled bool

	// Pipeline configures the record processors.
	Pipeline PipelineConfig
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		DatasetRoot:    "./dataset/",
		Format:         FormatArrow,
		Samples:        2,
		HistoryEnabled: true,
		Pipeline:       DefaultPipelineConfig(),
	}
}

// PipelineConfig configures the record processor pipeline.
type PipelineConfig struct {
	// Processors lists processor names in execution order.
	Processors []string

	// ProcessorConfigs holds per-processor settings keyed by name.
	ProcessorConfigs map[string]map[string]any
}

// DefaultPipelineConfig cleans text first, then derives the label.
// The label processor asserts one-hot annotations by default.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Processors: []string{ColumnTextClean, ColumnLabel},
		ProcessorConfigs: map[string]map[string]any{
			ColumnLabel: {"strict": true},
		},
	}
}

// HasProcessor reports whether the named processor is configured.
func (c PipelineConfig) HasProcessor(name string) bool {
	return slices.Contains(c.Processors, name)
}
