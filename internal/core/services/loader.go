package services

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
	"github.com/custodia-labs/figprep/internal/logger"
)

// splitLayout maps stored split directories to logical split names.
// The validation partition is stored as dev_set but exposed as
// "validation". No other renames are inferred.
var splitLayout = []struct {
	Dir  string
	Name domain.SplitName
}{
	{Dir: "train_set", Name: domain.SplitTrain},
	{Dir: "dev_set", Name: domain.SplitValidation},
	{Dir: "test_set", Name: domain.SplitTest},
}

// SplitLocations returns the stored location of every split under root,
// in canonical split order.
func SplitLocations(root string) []string {
	locations := make([]string, 0, len(splitLayout))
	for _, l := range splitLayout {
		locations = append(locations, filepath.Join(root, l.Dir))
	}
	return locations
}

// DatasetLoader composes the three stored splits into a Dataset.
type DatasetLoader struct {
	reader driven.SplitReader
}

// NewDatasetLoader creates a loader reading splits through reader.
func NewDatasetLoader(reader driven.SplitReader) *DatasetLoader {
	return &DatasetLoader{reader: reader}
}

// Format returns the storage format of the underlying reader.
func (l *DatasetLoader) Format() string {
	return l.reader.Format()
}

// Load reads train_set, dev_set and test_set under root.
// Every failure is a *domain.LoadError naming the split and location.
func (l *DatasetLoader) Load(ctx context.Context, root string) (*domain.Dataset, error) {
	done := logger.Stage("Load")
	defer done()
	logger.Debug("Root: %s (format %s)", root, l.reader.Format())

	splits := make([]domain.Split, 0, len(splitLayout))
	for _, layout := range splitLayout {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		location := filepath.Join(root, layout.Dir)
		split, err := l.reader.ReadSplit(ctx, location)
		if err != nil {
			return nil, asLoadError(err, layout.Name, location)
		}

		for _, col := range domain.RequiredColumns {
			if !split.HasColumn(col) {
				return nil, &domain.LoadError{
					Split:    layout.Name,
					Location: location,
					Field:    col,
					Err:      errors.New("required column missing"),
				}
			}
		}

		split.Name = layout.Name
		logger.Debug("Split %s: %d records, columns %v", split.Name, split.Len(), split.Columns)
		splits = append(splits, *split)
	}

	return domain.NewDataset(splits...)
}

// asLoadError makes sure err is a LoadError carrying the split name.
func asLoadError(err error, name domain.SplitName, location string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var loadErr *domain.LoadError
	if errors.As(err, &loadErr) {
		named := *loadErr
		named.Split = name
		if named.Location == "" {
			named.Location = location
		}
		return &named
	}
	return &domain.LoadError{Split: name, Location: location, Err: err}
}
