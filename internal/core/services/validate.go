package services

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/normalisers/text"
)

// Validator computes read-only integrity reports over processed splits.
// It never fails on data content and never modifies the dataset, so it can
// be run any number of times with identical results.
type Validator struct{}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns one report per split, in dataset order.
func (v *Validator) Validate(ds *domain.ProcessedDataset, sampleCount int) []domain.SplitReport {
	if ds == nil {
		return nil
	}
	reports := make([]domain.SplitReport, 0, len(ds.Splits))
	for i := range ds.Splits {
		reports = append(reports, v.ValidateSplit(&ds.Splits[i], sampleCount))
	}
	return reports
}

// ValidateSplit computes the empty-text count, label distribution and the
// first min(sampleCount, len) before/after samples of one split.
func (v *Validator) ValidateSplit(split *domain.ProcessedSplit, sampleCount int) domain.SplitReport {
	report := domain.SplitReport{
		Split:   split.Name,
		Records: split.Len(),
		Labels:  make(domain.LabelDistribution),
	}

	for i := range split.Records {
		rec := &split.Records[i]
		// text_clean is trimmed already; re-check in case it came from elsewhere.
		if strings.TrimFunc(rec.TextClean, text.IsSpace) == "" {
			report.EmptyText++
		}
		report.Labels[rec.Label]++
	}

	n := min(max(sampleCount, 0), split.Len())
	report.Samples = make([]domain.SamplePair, 0, n)
	for i := 0; i < n; i++ {
		rec := &split.Records[i]
		report.Samples = append(report.Samples, domain.SamplePair{
			Index:    i,
			Original: Truncate(rec.RawText(), domain.SampleDisplayLimit),
			Cleaned:  Truncate(rec.TextClean, domain.SampleDisplayLimit),
		})
	}

	return report
}

// Truncate returns at most limit characters of s.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
