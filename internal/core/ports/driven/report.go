package driven

import "github.com/custodia-labs/figprep/internal/core/domain"

// ReportWriter presents pipeline output to the operator.
// Reports are advisory; write failures never abort a run.
type ReportWriter interface {
	// WriteSummary presents the loaded dataset layout.
	WriteSummary(splits []domain.SplitSummary)

	// WriteReport presents the integrity report of one split.
	WriteReport(report domain.SplitReport)
}
