package driven

import (
	"context"

	"github.com/custodia-labs/figprep/internal/core/domain"
)

// RecordProcessor derives processed fields for a single record.
// RecordProcessors are chained in a pipeline (e.g., text cleaning, labelling).
type RecordProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Columns returns the columns this processor adds to the schema.
	Columns() []string

	// Process reads the source record and fills its fields on out.
	// It must not modify in.
	Process(ctx context.Context, in *domain.Record, out *domain.ProcessedRecord) error
}

// RecordPipeline chains multiple RecordProcessors.
type RecordPipeline interface {
	// Process runs the record through all processors in order and returns
	// a newly built processed record.
	Process(ctx context.Context, in *domain.Record) (domain.ProcessedRecord, error)

	// Columns returns the columns added by all processors, in order.
	Columns() []string
}
