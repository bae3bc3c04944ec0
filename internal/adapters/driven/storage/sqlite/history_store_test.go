package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/figprep/internal/core/domain"
)

func sampleRun(id string, started time.Time) *domain.RunSummary {
	return &domain.RunSummary{
		ID:        id,
		Root:      "./dataset/",
		Format:    "arrow",
		StartedAt: started,
		Duration:  1500 * time.Millisecond,
		Splits: []domain.SplitReport{
			{
				Split:     domain.SplitTrain,
				Records:   5,
				EmptyText: 1,
				Labels:    domain.LabelDistribution{0: 2, 1: 3},
				Samples:   []domain.SamplePair{{Index: 0, Original: "Hi", Cleaned: "hi"}},
			},
			{Split: domain.SplitValidation, Records: 1, Labels: domain.LabelDistribution{1: 1}},
			{Split: domain.SplitTest, Records: 0},
		},
	}
}

func TestHistoryStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t).HistoryStore()
	ctx := context.Background()
	started := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

	require.NoError(t, store.SaveRun(ctx, sampleRun("run-1", started)))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, "./dataset/", got.Root)
	assert.Equal(t, "arrow", got.Format)
	assert.True(t, started.Equal(got.StartedAt), "started_at %v", got.StartedAt)
	assert.Equal(t, 1500*time.Millisecond, got.Duration)

	require.Len(t, got.Splits, 3)
	assert.Equal(t, domain.SplitTrain, got.Splits[0].Split)
	assert.Equal(t, 5, got.Splits[0].Records)
	assert.Equal(t, 1, got.Splits[0].EmptyText)
	assert.Equal(t, domain.LabelDistribution{0: 2, 1: 3}, got.Splits[0].Labels)
	assert.Empty(t, got.Splits[0].Samples)
	assert.Equal(t, domain.SplitTest, got.Splits[2].Split)
	assert.Empty(t, got.Splits[2].Labels)
	assert.Equal(t, 6, got.TotalRecords())
}

func TestHistoryStore_SaveOverwrites(t *testing.T) {
	store := setupTestStore(t).HistoryStore()
	ctx := context.Background()
	run := sampleRun("run-1", time.Now().UTC())
	require.NoError(t, store.SaveRun(ctx, run))

	run.Format = "jsonl"
	run.Splits = run.Splits[:1]
	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "jsonl", got.Format)
	assert.Len(t, got.Splits, 1)
}

func TestHistoryStore_SaveInvalid(t *testing.T) {
	store := setupTestStore(t).HistoryStore()

	assert.ErrorIs(t, store.SaveRun(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.SaveRun(context.Background(), &domain.RunSummary{}), domain.ErrInvalidInput)
}

func TestHistoryStore_GetNotFound(t *testing.T) {
	store := setupTestStore(t).HistoryStore()

	_, err := store.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryStore_ListRuns(t *testing.T) {
	store := setupTestStore(t).HistoryStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveRun(ctx, sampleRun("old", base)))
	require.NoError(t, store.SaveRun(ctx, sampleRun("new", base.Add(2*time.Hour))))
	require.NoError(t, store.SaveRun(ctx, sampleRun("mid", base.Add(time.Hour))))

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "mid", runs[1].ID)
	assert.Equal(t, "old", runs[2].ID)
	assert.Len(t, runs[0].Splits, 3)

	limited, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "new", limited[0].ID)
}

func TestHistoryStore_ListEmpty(t *testing.T) {
	runs, err := setupTestStore(t).HistoryStore().ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
