package driving

import (
	"context"

	"github.com/custodia-labs/figprep/internal/core/domain"
)

// HistoryService exposes summaries of past pipeline runs.
type HistoryService interface {
	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]domain.RunSummary, error)

	// Get retrieves a single run by ID.
	Get(ctx context.Context, runID string) (*domain.RunSummary, error)
}
