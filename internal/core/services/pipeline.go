package services

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
	"github.com/custodia-labs/figprep/internal/core/ports/driving"
	"github.com/custodia-labs/figprep/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.PipelineService = (*PipelineService)(nil)

// PipelineService runs load, preprocess and validate end to end.
type PipelineService struct {
	loader       *DatasetLoader
	preprocessor *Preprocessor
	validator    *Validator
	writer       driven.ReportWriter
	history      driven.RunHistoryStore
	now          func() time.Time
}

// NewPipelineService creates a pipeline service.
// history may be nil, in which case runs are never recorded.
func NewPipelineService(
	loader *DatasetLoader,
	preprocessor *Preprocessor,
	validator *Validator,
	writer driven.ReportWriter,
	history driven.RunHistoryStore,
) *PipelineService {
	return &PipelineService{
		loader:       loader,
		preprocessor: preprocessor,
		validator:    validator,
		writer:       writer,
		history:      history,
		now:          time.Now,
	}
}

// Load reads the three stored splits under root.
func (s *PipelineService) Load(ctx context.Context, root string) (*domain.Dataset, error) {
	return s.loader.Load(ctx, root)
}

// Inspect loads the dataset and writes its layout without processing it.
func (s *PipelineService) Inspect(ctx context.Context, root string) ([]domain.SplitSummary, error) {
	ds, err := s.loader.Load(ctx, root)
	if err != nil {
		return nil, err
	}
	summaries := summarise(ds)
	s.writer.WriteSummary(summaries)
	return summaries, nil
}

// Run loads, processes and validates the dataset, writing the summary and
// every split report. Report and history failures never abort the run.
func (s *PipelineService) Run(ctx context.Context, opts driving.RunOptions) (*domain.RunResult, error) {
	started := s.now()

	ds, err := s.loader.Load(ctx, opts.Root)
	if err != nil {
		return nil, err
	}
	loaded := summarise(ds)
	s.writer.WriteSummary(loaded)

	processed, err := s.preprocessor.Process(ctx, ds)
	if err != nil {
		return nil, err
	}

	done := logger.Stage("Validate")
	reports := s.validator.Validate(processed, opts.Samples)
	for _, report := range reports {
		s.writer.WriteReport(report)
	}
	done()

	summary := domain.RunSummary{
		ID:        uuid.NewString(),
		Root:      opts.Root,
		Format:    s.loader.Format(),
		StartedAt: started,
		Duration:  s.now().Sub(started),
		Splits:    reports,
	}

	if opts.Record && s.history != nil {
		if err := s.history.SaveRun(ctx, &summary); err != nil {
			logger.Warn("recording run %s: %v", summary.ID, err)
		} else {
			logger.Debug("Recorded run %s", summary.ID)
		}
	}

	return &domain.RunResult{
		Summary:   summary,
		Loaded:    loaded,
		Processed: processed,
	}, nil
}

func summarise(ds *domain.Dataset) []domain.SplitSummary {
	summaries := make([]domain.SplitSummary, 0, len(ds.Splits))
	for i := range ds.Splits {
		summaries = append(summaries, domain.SplitSummary{
			Name:    ds.Splits[i].Name,
			Rows:    ds.Splits[i].Len(),
			Columns: slices.Clone(ds.Splits[i].Columns),
		})
	}
	return summaries
}
