package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.RunHistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.RunHistoryStore.
type HistoryStore struct {
	mu   sync.RWMutex
	runs map[string]domain.RunSummary
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{runs: make(map[string]domain.RunSummary)}
}

// SaveRun stores a run summary. Sample texts are not kept.
func (s *HistoryStore) SaveRun(_ context.Context, run *domain.RunSummary) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = countsOnly(run)
	return nil
}

// GetRun retrieves a run by ID.
func (s *HistoryStore) GetRun(_ context.Context, id string) (*domain.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := countsOnly(&run)
	return &out, nil
}

// ListRuns returns runs newest first.
func (s *HistoryStore) ListRuns(_ context.Context, limit int) ([]domain.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]domain.RunSummary, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, countsOnly(&run))
	}
	slices.SortFunc(runs, func(a, b domain.RunSummary) int {
		if c := b.StartedAt.Compare(a.StartedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// countsOnly copies a run, dropping samples and sharing no maps.
func countsOnly(run *domain.RunSummary) domain.RunSummary {
	out := *run
	out.Splits = make([]domain.SplitReport, len(run.Splits))
	for i, r := range run.Splits {
		out.Splits[i] = domain.SplitReport{
			Split:     r.Split,
			Records:   r.Records,
			EmptyText: r.EmptyText,
			Labels:    maps.Clone(r.Labels),
		}
	}
	return out
}
