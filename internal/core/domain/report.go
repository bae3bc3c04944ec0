package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// SampleDisplayLimit is the maximum number of characters shown per sample text.
const SampleDisplayLimit = 200

// LabelDistribution counts occurrences of each label value in a split.
type LabelDistribution map[int64]int

// Total returns the sum of all counts.
func (d LabelDistribution) Total() int {
	total := 0
	for _, n := range d {
		total += n
	}
	return total
}

// Labels returns the distinct labels in ascending order.
func (d LabelDistribution) Labels() []int64 {
	labels := make([]int64, 0, len(d))
	for l := range d {
		labels = append(labels, l)
	}
	slices.Sort(labels)
	return labels
}

// String renders the distribution as {0: 2, 1: 3}.
func (d LabelDistribution) String() string {
	parts := make([]string, 0, len(d))
	for _, l := range d.Labels() {
		parts = append(parts, fmt.Sprintf("%d: %d", l, d[l]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// SamplePair is one before/after text pair shown for manual inspection.
type SamplePair struct {
	// Index is the record position within the split.
	Index int

	// Original is the raw text, truncated for display.
	Original string

	// Cleaned is the normalised text, truncated for display.
	Cleaned string
}

// SplitReport is the integrity report for one processed split.
type SplitReport struct {
	Split     SplitName
	Records   int
	EmptyText int
	Labels    LabelDistribution
	Samples   []SamplePair
}

// SplitSummary describes a loaded split for display.
type SplitSummary struct {
	Name    SplitName
	Rows    int
	Columns []string
}

// RunSummary is the outcome of one pipeline run. In memory its split
// reports still hold sample texts; history stores persist counts and
// label distributions only.
type RunSummary struct {
	ID        string
	Root      string
	Format    string
	StartedAt time.Time
	Duration  time.Duration
	Splits    []SplitReport
}

// TotalRecords returns the number of records across all splits.
func (r *RunSummary) TotalRecords() int {
	total := 0
	for i := range r.Splits {
		total += r.Splits[i].Records
	}
	return total
}

// RunResult is everything a pipeline run produced.
type RunResult struct {
	Summary   RunSummary
	Loaded    []SplitSummary
	Processed *ProcessedDataset
}
