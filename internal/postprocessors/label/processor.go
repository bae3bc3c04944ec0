package label

import (
	"context"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
)

// Name is the registry name of the processor.
const Name = "label"

// Ensure Processor implements the interface.
var _ driven.RecordProcessor = (*Processor)(nil)

// Processor fills the scalar label from the lonely annotation.
type Processor struct {
	strict bool
}

// Option configures the label processor.
type Option func(*Processor)

// WithStrict toggles the one-hot assertion. Disabling it keeps the
// permissive behaviour of copying lonely[1] whatever its value.
func WithStrict(strict bool) Option {
	return func(p *Processor) {
		p.strict = strict
	}
}

// New creates a new label processor. Strict mode is on by default.
func New(opts ...Option) *Processor {
	p := &Processor{strict: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Columns returns the column this processor adds.
func (p *Processor) Columns() []string {
	return []string{domain.ColumnLabel}
}

// Strict reports whether the one-hot assertion is enabled.
func (p *Processor) Strict() bool {
	return p.strict
}

// Process sets out.Label from in.Lonely.
func (p *Processor) Process(_ context.Context, in *domain.Record, out *domain.ProcessedRecord) error {
	scalarize := Scalarize
	if p.strict {
		scalarize = ScalarizeStrict
	}

	v, err := scalarize(in.Lonely)
	if err != nil {
		return err
	}
	out.Label = v
	return nil
}
