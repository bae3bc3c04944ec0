package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/figprep/internal/core/ports/driven"
	"github.com/custodia-labs/figprep/internal/core/ports/driving"
	"github.com/custodia-labs/figprep/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// DefaultMinRunInterval is the shortest gap allowed between watch reruns.
const DefaultMinRunInterval = 2 * time.Second

// WatchService reruns the pipeline when the dataset changes.
// Runs are serialised: a change arriving mid-run waits for the next one.
type WatchService struct {
	pipeline driving.PipelineService
	watcher  driven.ChangeWatcher
	limiter  *rate.Limiter
}

// NewWatchService creates a watch service. Reruns happen at most once per
// minInterval; a non-positive interval uses DefaultMinRunInterval.
func NewWatchService(pipeline driving.PipelineService, watcher driven.ChangeWatcher, minInterval time.Duration) *WatchService {
	if minInterval <= 0 {
		minInterval = DefaultMinRunInterval
	}
	return &WatchService{
		pipeline: pipeline,
		watcher:  watcher,
		limiter:  rate.NewLimiter(rate.Every(minInterval), 1),
	}
}

// Watch runs the pipeline now and after every dataset change until ctx ends.
// Cancellation is a normal exit and returns nil.
func (s *WatchService) Watch(ctx context.Context, opts driving.RunOptions, handle driving.RunHandler) error {
	changes, err := s.watcher.Watch(ctx, opts.Root)
	if err != nil {
		return err
	}

	s.runOnce(ctx, opts, handle)

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Info("Dataset changed (%d path(s)), rerunning", len(change.Paths))
			s.runOnce(ctx, opts, handle)
		}
	}
}

func (s *WatchService) runOnce(ctx context.Context, opts driving.RunOptions, handle driving.RunHandler) {
	if err := s.limiter.Wait(ctx); err != nil {
		return
	}
	result, err := s.pipeline.Run(ctx, opts)
	if err != nil && ctx.Err() != nil {
		return
	}
	handle(result, err)
}
