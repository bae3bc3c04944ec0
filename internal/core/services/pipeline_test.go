package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/figprep/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
	"github.com/custodia-labs/figprep/internal/core/ports/driving"
)

func newTestPipelineService(history driven.RunHistoryStore) (*PipelineService, *recordingWriter) {
	reader := fixtureReader(
		storedSplit(rec("Check this out: http://x.co NOW", 0, 1), rec("fine", 1, 0), rec("  ", 1, 0)),
		storedSplit(rec("Alone", 0, 1)),
		storedSplit(),
	)
	writer := &recordingWriter{}
	svc := NewPipelineService(
		NewDatasetLoader(reader),
		NewPreprocessor(defaultPipeline(true)),
		NewValidator(),
		writer,
		history,
	)
	return svc, writer
}

func TestPipelineService_Run(t *testing.T) {
	history := memory.NewHistoryStore()
	svc, writer := newTestPipelineService(history)

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	svc.now = func() time.Time {
		calls++
		return start.Add(time.Duration(calls-1) * time.Second)
	}

	result, err := svc.Run(context.Background(), driving.RunOptions{Root: testRoot, Samples: 2, Record: true})
	require.NoError(t, err)

	require.Len(t, writer.summaries, 1)
	assert.Equal(t, result.Loaded, writer.summaries[0])
	require.Len(t, writer.reports, 3)

	train := writer.reports[0]
	assert.Equal(t, domain.SplitTrain, train.Split)
	assert.Equal(t, 3, train.Records)
	assert.Equal(t, 1, train.EmptyText)
	assert.Equal(t, domain.LabelDistribution{0: 2, 1: 1}, train.Labels)
	require.Len(t, train.Samples, 2)
	assert.Equal(t, "check this out: <URL> now", train.Samples[0].Cleaned)

	assert.Len(t, writer.reports[1].Samples, 1)
	assert.Empty(t, writer.reports[2].Samples)

	summary := result.Summary
	assert.NotEmpty(t, summary.ID)
	assert.Equal(t, testRoot, summary.Root)
	assert.Equal(t, "memory", summary.Format)
	assert.Equal(t, start, summary.StartedAt)
	assert.Equal(t, time.Second, summary.Duration)
	assert.Equal(t, 4, summary.TotalRecords())

	saved, err := history.GetRun(context.Background(), summary.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, saved.TotalRecords())

	require.NotNil(t, result.Processed)
	assert.Len(t, result.Processed.Splits, 3)
}

func TestPipelineService_RunWithoutRecording(t *testing.T) {
	history := memory.NewHistoryStore()
	svc, _ := newTestPipelineService(history)

	_, err := svc.Run(context.Background(), driving.RunOptions{Root: testRoot, Samples: 2})
	require.NoError(t, err)

	runs, err := history.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestPipelineService_RunNilHistory(t *testing.T) {
	svc, _ := newTestPipelineService(nil)

	_, err := svc.Run(context.Background(), driving.RunOptions{Root: testRoot, Samples: 1, Record: true})
	assert.NoError(t, err)
}

func TestPipelineService_HistoryFailureDoesNotAbort(t *testing.T) {
	svc, writer := newTestPipelineService(nil)
	svc.history = &failingHistory{err: errors.New("disk full")}

	result, err := svc.Run(context.Background(), driving.RunOptions{Root: testRoot, Samples: 1, Record: true})
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Len(t, writer.reports, 3)
}

func TestPipelineService_RunLoadError(t *testing.T) {
	svc, writer := newTestPipelineService(nil)

	_, err := svc.Run(context.Background(), driving.RunOptions{Root: "/elsewhere", Samples: 2})
	assert.ErrorIs(t, err, domain.ErrLoad)
	assert.Empty(t, writer.summaries)
	assert.Empty(t, writer.reports)
}

func TestPipelineService_RunSchemaErrorWritesNoReports(t *testing.T) {
	reader := fixtureReader(
		storedSplit(rec("a", 1, 1)),
		storedSplit(),
		storedSplit(),
	)
	writer := &recordingWriter{}
	svc := NewPipelineService(NewDatasetLoader(reader), NewPreprocessor(defaultPipeline(true)), NewValidator(), writer, nil)

	result, err := svc.Run(context.Background(), driving.RunOptions{Root: testRoot, Samples: 2})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrSchema)
	assert.Len(t, writer.summaries, 1)
	assert.Empty(t, writer.reports)
}

func TestPipelineService_Inspect(t *testing.T) {
	svc, writer := newTestPipelineService(nil)

	summaries, err := svc.Inspect(context.Background(), testRoot)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, domain.SplitSummary{Name: domain.SplitTrain, Rows: 3, Columns: storedColumns}, summaries[0])
	assert.Equal(t, 1, summaries[1].Rows)
	assert.Equal(t, 0, summaries[2].Rows)
	assert.Len(t, writer.summaries, 1)
	assert.Empty(t, writer.reports)
}

func TestPipelineService_Load(t *testing.T) {
	svc, _ := newTestPipelineService(nil)

	ds, err := svc.Load(context.Background(), testRoot)
	require.NoError(t, err)
	assert.Len(t, ds.Splits, 3)
}
