package services

import (
	"context"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
	"github.com/custodia-labs/figprep/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads past run summaries.
type HistoryService struct {
	store driven.RunHistoryStore
}

// NewHistoryService creates a history service. store may be nil.
func NewHistoryService(store driven.RunHistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// List returns the most recent runs, newest first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if s.store == nil {
		return nil, domain.ErrHistoryUnavailable
	}
	return s.store.ListRuns(ctx, limit)
}

// Get retrieves a single run by ID.
func (s *HistoryService) Get(ctx context.Context, runID string) (*domain.RunSummary, error) {
	if s.store == nil {
		return nil, domain.ErrHistoryUnavailable
	}
	if runID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.GetRun(ctx, runID)
}
