// Package textclean provides the processor that fills text_clean.
package textclean

import (
	"context"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
)

// Name is the registry name of the processor.
const Name = "text_clean"

// Ensure Processor implements the interface.
var _ driven.RecordProcessor = (*Processor)(nil)

// Processor normalises the raw text of each record.
// Absent or non-string text becomes the empty string, never an error.
type Processor struct {
	normaliser driven.TextNormaliser
}

// New creates a text cleaning processor backed by normaliser.
func New(normaliser driven.TextNormaliser) *Processor {
	return &Processor{normaliser: normaliser}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Columns returns the column this processor adds.
func (p *Processor) Columns() []string {
	return []string{domain.ColumnTextClean}
}

// Process sets out.TextClean from in.Text.
func (p *Processor) Process(_ context.Context, in *domain.Record, out *domain.ProcessedRecord) error {
	out.TextClean = p.normaliser.Normalise(in.Text)
	return nil
}
