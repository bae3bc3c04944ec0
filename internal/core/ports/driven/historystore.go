package driven

import (
	"context"

	"github.com/custodia-labs/figprep/internal/core/domain"
)

// RunHistoryStore persists validation outcomes of past runs.
// Only counts are stored, never record text.
type RunHistoryStore interface {
	// SaveRun persists a run summary.
	SaveRun(ctx context.Context, run *domain.RunSummary) error

	// GetRun retrieves a run by ID.
	// Returns domain.ErrNotFound if the run does not exist.
	GetRun(ctx context.Context, id string) (*domain.RunSummary, error)

	// ListRuns returns the most recent runs, newest first.
	// A limit of zero or less returns all runs.
	ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)
}
