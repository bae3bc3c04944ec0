package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/figprep/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/normalisers/text"
	"github.com/custodia-labs/figprep/internal/postprocessors"
	"github.com/custodia-labs/figprep/internal/postprocessors/label"
	"github.com/custodia-labs/figprep/internal/postprocessors/textclean"
)

const testRoot = "/data/fig"

var storedColumns = []string{domain.ColumnText, domain.ColumnLonely, domain.ColumnIdx, domain.ColumnUniqueID}

// rec builds a stored record with identifiers filled in.
func rec(text string, lonely ...int64) domain.Record {
	return domain.Record{
		Text:     domain.StringPtr(text),
		Lonely:   lonely,
		Idx:      int64(0),
		UniqueID: "uid",
	}
}

func storedSplit(records ...domain.Record) domain.Split {
	return domain.Split{Columns: storedColumns, Records: records}
}

// fixtureReader stores train, dev and test splits under testRoot.
func fixtureReader(train, dev, test domain.Split) *memory.SplitReader {
	r := memory.NewSplitReader()
	r.Add(filepath.Join(testRoot, "train_set"), train)
	r.Add(filepath.Join(testRoot, "dev_set"), dev)
	r.Add(filepath.Join(testRoot, "test_set"), test)
	return r
}

// fixtureDataset builds an in-memory dataset with the stored schema.
func fixtureDataset(t *testing.T, train, validation, test []domain.Record) *domain.Dataset {
	t.Helper()
	ds, err := domain.NewDataset(
		domain.Split{Name: domain.SplitTrain, Columns: storedColumns, Records: train},
		domain.Split{Name: domain.SplitValidation, Columns: storedColumns, Records: validation},
		domain.Split{Name: domain.SplitTest, Columns: storedColumns, Records: test},
	)
	require.NoError(t, err)
	return ds
}

func defaultPipeline(strict bool) *postprocessors.Pipeline {
	return postprocessors.NewPipeline(
		textclean.New(text.New()),
		label.New(label.WithStrict(strict)),
	)
}

// recordingWriter captures everything written to it.
type recordingWriter struct {
	mu        sync.Mutex
	summaries [][]domain.SplitSummary
	reports   []domain.SplitReport
}

func (w *recordingWriter) WriteSummary(s []domain.SplitSummary) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.summaries = append(w.summaries, s)
}

func (w *recordingWriter) WriteReport(r domain.SplitReport) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reports = append(w.reports, r)
}

// failingHistory rejects every save.
type failingHistory struct {
	memory.HistoryStore
	err error
}

func (f *failingHistory) SaveRun(context.Context, *domain.RunSummary) error {
	return f.err
}
