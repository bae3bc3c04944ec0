package driving

import (
	"context"

	"github.com/custodia-labs/figprep/internal/core/domain"
)

// RunHandler receives the outcome of every pipeline run made while watching.
type RunHandler func(result *domain.RunResult, err error)

// WatchService reruns the pipeline whenever the stored dataset changes.
type WatchService interface {
	// Watch runs the pipeline once, then again after every change, until ctx
	// is cancelled. Failed runs are reported to handle and do not stop watching.
	Watch(ctx context.Context, opts RunOptions, handle RunHandler) error
}
