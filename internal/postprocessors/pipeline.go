// Package postprocessors provides per-record processing implementations.
package postprocessors

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.RecordPipeline = (*Pipeline)(nil)

// Pipeline chains multiple RecordProcessors and runs them in order.
// It implements the RecordPipeline interface.
type Pipeline struct {
	processors []driven.RecordProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.RecordProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process builds a new processed record from in, copying the carried-through
// fields and letting every processor fill in its derived fields.
// The input record is never modified.
func (p *Pipeline) Process(ctx context.Context, in *domain.Record) (domain.ProcessedRecord, error) {
	if in == nil {
		return domain.ProcessedRecord{}, fmt.Errorf("record is nil")
	}

	out := domain.ProcessedRecord{
		Text:   copyText(in.Text),
		Lonely: slices.Clone(in.Lonely),
		Extra:  maps.Clone(in.Extra),
	}

	for _, processor := range p.processors {
		if err := processor.Process(ctx, in, &out); err != nil {
			return domain.ProcessedRecord{}, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}

	return out, nil
}

// Columns returns the columns added by all processors, in order.
func (p *Pipeline) Columns() []string {
	var cols []string
	for _, processor := range p.processors {
		cols = append(cols, processor.Columns()...)
	}
	return cols
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.RecordProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

func copyText(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
