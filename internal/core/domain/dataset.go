package domain

import (
	"fmt"
	"slices"
)

// SplitName identifies one partition of the dataset.
type SplitName string

const (
	// SplitTrain is the training partition.
	SplitTrain SplitName = "train"

	// SplitValidation is the validation partition. Stored on disk as dev_set.
	SplitValidation SplitName = "validation"

	// SplitTest is the held-out test partition.
	SplitTest SplitName = "test"
)

// SplitNames lists the canonical splits in iteration order.
var SplitNames = []SplitName{SplitTrain, SplitValidation, SplitTest}

// Split is a named, ordered collection of records sharing one schema.
type Split struct {
	Name    SplitName
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (s *Split) Len() int {
	return len(s.Records)
}

// HasColumn reports whether the split schema contains the column.
func (s *Split) HasColumn(name string) bool {
	return slices.Contains(s.Columns, name)
}

// Clone returns a deep copy of the split.
func (s *Split) Clone() Split {
	out := Split{
		Name:    s.Name,
		Columns: slices.Clone(s.Columns),
		Records: make([]Record, len(s.Records)),
	}
	for i := range s.Records {
		out.Records[i] = s.Records[i].Clone()
	}
	return out
}

// ProcessedSplit is a Split after preprocessing.
type ProcessedSplit struct {
	Name    SplitName
	Columns []string
	Records []ProcessedRecord
}

// Len returns the number of records.
func (s *ProcessedSplit) Len() int {
	return len(s.Records)
}

// HasColumn reports whether the split schema contains the column.
func (s *ProcessedSplit) HasColumn(name string) bool {
	return slices.Contains(s.Columns, name)
}

// Dataset maps split names to splits. Splits are kept in canonical order.
type Dataset struct {
	Splits []Split
}

// NewDataset builds a dataset from splits, ordering them canonically.
// Returns ErrInvalidInput if a canonical split is missing or duplicated.
func NewDataset(splits ...Split) (*Dataset, error) {
	ordered, err := orderSplits(splits, func(s Split) SplitName { return s.Name })
	if err != nil {
		return nil, err
	}
	return &Dataset{Splits: ordered}, nil
}

// Split returns the split with the given name.
func (d *Dataset) Split(name SplitName) (*Split, bool) {
	for i := range d.Splits {
		if d.Splits[i].Name == name {
			return &d.Splits[i], true
		}
	}
	return nil, false
}

// Validate checks that all canonical splits are present.
func (d *Dataset) Validate() error {
	if d == nil {
		return ErrInvalidInput
	}
	_, err := orderSplits(d.Splits, func(s Split) SplitName { return s.Name })
	return err
}

// ProcessedDataset maps split names to processed splits.
type ProcessedDataset struct {
	Splits []ProcessedSplit
}

// NewProcessedDataset builds a processed dataset, ordering splits canonically.
func NewProcessedDataset(splits ...ProcessedSplit) (*ProcessedDataset, error) {
	ordered, err := orderSplits(splits, func(s ProcessedSplit) SplitName { return s.Name })
	if err != nil {
		return nil, err
	}
	return &ProcessedDataset{Splits: ordered}, nil
}

// Split returns the processed split with the given name.
func (d *ProcessedDataset) Split(name SplitName) (*ProcessedSplit, bool) {
	for i := range d.Splits {
		if d.Splits[i].Name == name {
			return &d.Splits[i], true
		}
	}
	return nil, false
}

func orderSplits[S any](splits []S, name func(S) SplitName) ([]S, error) {
	byName := make(map[SplitName]S, len(splits))
	for _, s := range splits {
		n := name(s)
		if !slices.Contains(SplitNames, n) {
			return nil, fmt.Errorf("%w: unknown split %q", ErrInvalidInput, n)
		}
		if _, dup := byName[n]; dup {
			return nil, fmt.Errorf("%w: duplicate split %q", ErrInvalidInput, n)
		}
		byName[n] = s
	}

	ordered := make([]S, 0, len(SplitNames))
	for _, n := range SplitNames {
		s, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("%w: missing split %q", ErrInvalidInput, n)
		}
		ordered = append(ordered, s)
	}
	return ordered, nil
}
