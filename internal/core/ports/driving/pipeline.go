package driving

import (
	"context"

	"github.com/custodia-labs/figprep/internal/core/domain"
)

// PipelineService runs the preprocessing and validation pipeline.
type PipelineService interface {
	// Load reads the three stored splits under root.
	Load(ctx context.Context, root string) (*domain.Dataset, error)

	// Inspect loads the dataset and reports its layout without processing.
	Inspect(ctx context.Context, root string) ([]domain.SplitSummary, error)

	// Run loads, processes and validates the dataset under opts.Root,
	// writing summaries and reports as it goes.
	Run(ctx context.Context, opts RunOptions) (*domain.RunResult, error)
}

// RunOptions configures a single pipeline run.
type RunOptions struct {
	// Root is the dataset root directory.
	Root string

	// Samples is the number of before/after text pairs to show per split.
	Samples int

	// Record persists the run summary when a history store is configured.
	Record bool
}
