package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
	"github.com/custodia-labs/figprep/internal/logger"
)

// Preprocessor applies the record pipeline to every split and prunes
// identifier columns. It never modifies its input.
type Preprocessor struct {
	pipeline driven.RecordPipeline
}

// NewPreprocessor creates a preprocessor running pipeline on every record.
func NewPreprocessor(pipeline driven.RecordPipeline) *Preprocessor {
	return &Preprocessor{pipeline: pipeline}
}

// Process returns a new dataset with text_clean and label added and idx and
// unique_id removed. Processing is all-or-nothing: on any error no partial
// dataset is returned.
func (p *Preprocessor) Process(ctx context.Context, ds *domain.Dataset) (*domain.ProcessedDataset, error) {
	done := logger.Stage("Preprocess")
	defer done()

	if err := ds.Validate(); err != nil {
		return nil, err
	}

	added := p.pipeline.Columns()
	if dup, ok := firstDuplicate(added); ok {
		return nil, fmt.Errorf("%w: pipeline produces column %q more than once", domain.ErrInvalidInput, dup)
	}
	for _, col := range []string{domain.ColumnTextClean, domain.ColumnLabel} {
		if !slices.Contains(added, col) {
			return nil, fmt.Errorf("%w: pipeline does not produce column %q", domain.ErrInvalidInput, col)
		}
	}

	if err := checkUniformSchema(ds); err != nil {
		return nil, err
	}

	processed := make([]domain.ProcessedSplit, 0, len(ds.Splits))
	for i := range ds.Splits {
		out, err := p.processSplit(ctx, &ds.Splits[i], added)
		if err != nil {
			return nil, err
		}
		processed = append(processed, *out)
	}

	return domain.NewProcessedDataset(processed...)
}

func (p *Preprocessor) processSplit(ctx context.Context, split *domain.Split, added []string) (*domain.ProcessedSplit, error) {
	for _, col := range []string{domain.ColumnText, domain.ColumnLonely} {
		if !split.HasColumn(col) {
			return nil, &domain.SchemaError{Split: split.Name, Index: -1, Field: col, Reason: "column missing"}
		}
	}

	records := make([]domain.ProcessedRecord, len(split.Records))
	absent := 0
	for i := range split.Records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if split.Records[i].Text == nil {
			absent++
		}

		rec, err := p.pipeline.Process(ctx, &split.Records[i])
		if err != nil {
			return nil, recordError(err, split.Name, i)
		}
		records[i] = rec
	}

	if absent > 0 {
		logger.Info("Split %s: %d record(s) without text, cleaned to empty", split.Name, absent)
	}
	logger.Debug("Split %s: processed %d records", split.Name, len(records))

	return &domain.ProcessedSplit{
		Name:    split.Name,
		Columns: processedColumns(split.Columns, added),
		Records: records,
	}, nil
}

// processedColumns drops the pruned columns and appends the added ones.
func processedColumns(columns, added []string) []string {
	out := make([]string, 0, len(columns)+len(added))
	for _, col := range columns {
		if slices.Contains(domain.PrunedColumns, col) || slices.Contains(added, col) {
			continue
		}
		out = append(out, col)
	}
	return append(out, added...)
}

// firstDuplicate returns the first name that appears twice in names.
func firstDuplicate(names []string) (string, bool) {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			return name, true
		}
		seen[name] = struct{}{}
	}
	return "", false
}

// checkUniformSchema requires every split to share the train column set.
func checkUniformSchema(ds *domain.Dataset) error {
	reference := ds.Splits[0]
	for _, split := range ds.Splits[1:] {
		for _, col := range reference.Columns {
			if !split.HasColumn(col) {
				return &domain.SchemaError{Split: split.Name, Index: -1, Field: col, Reason: "not present in every split"}
			}
		}
		for _, col := range split.Columns {
			if !reference.HasColumn(col) {
				return &domain.SchemaError{Split: reference.Name, Index: -1, Field: col, Reason: "not present in every split"}
			}
		}
	}
	return nil
}

// recordError attaches the split and record position to a schema error.
func recordError(err error, name domain.SplitName, index int) error {
	var schemaErr *domain.SchemaError
	if errors.As(err, &schemaErr) {
		located := *schemaErr
		located.Split = name
		located.Index = index
		return &located
	}
	return fmt.Errorf("split %s record %d: %w", name, index, err)
}
