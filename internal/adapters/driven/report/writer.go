// Package report renders dataset summaries and split integrity reports
// for the operator.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
)

// ruler frames each split header.
var ruler = strings.Repeat("=", 30)

// Verify interface compliance.
var _ driven.ReportWriter = (*Writer)(nil)

// Writer prints reports as plain text, optionally with a summary table.
type Writer struct {
	out    io.Writer
	styles *Styles
	table  bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithTable renders the dataset summary as a table.
func WithTable(enabled bool) Option {
	return func(w *Writer) {
		w.table = enabled
	}
}

// WithStyles overrides terminal detection.
func WithStyles(styles *Styles) Option {
	return func(w *Writer) {
		w.styles = styles
	}
}

// New creates a writer printing to out. Output is styled only when out is
// a terminal.
func New(out io.Writer, opts ...Option) *Writer {
	w := &Writer{out: out}
	for _, opt := range opts {
		opt(w)
	}
	if w.styles == nil {
		if isTerminal(out) {
			w.styles = NewStyles(nil)
		} else {
			w.styles = PlainStyles()
		}
	}
	return w
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// WriteSummary prints the loaded dataset layout and the train columns.
func (w *Writer) WriteSummary(splits []domain.SplitSummary) {
	s := w.styles
	fmt.Fprintf(w.out, "\n%s\n", s.render(s.Success, "Dataset successfully loaded."))

	if w.table {
		w.writeSummaryTable(splits)
	} else {
		w.writeSummaryTree(splits)
	}

	for _, split := range splits {
		if split.Name == domain.SplitTrain {
			fmt.Fprintf(w.out, "\nColumns in train split:\n%s\n", quoteList(split.Columns))
		}
	}
}

func (w *Writer) writeSummaryTree(splits []domain.SplitSummary) {
	fmt.Fprintln(w.out, "DatasetDict({")
	for _, split := range splits {
		fmt.Fprintf(w.out, "    %s: Dataset({\n", split.Name)
		fmt.Fprintf(w.out, "        features: %s,\n", quoteList(split.Columns))
		fmt.Fprintf(w.out, "        num_rows: %d\n", split.Rows)
		fmt.Fprintln(w.out, "    })")
	}
	fmt.Fprintln(w.out, "})")
}

func (w *Writer) writeSummaryTable(splits []domain.SplitSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(w.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Split", "Rows", "Columns"})
	total := 0
	for _, split := range splits {
		t.AppendRow(table.Row{string(split.Name), split.Rows, strings.Join(split.Columns, ", ")})
		total += split.Rows
	}
	t.AppendFooter(table.Row{"Total", total, ""})
	t.Render()
}

// WriteReport prints one split's integrity report.
func (w *Writer) WriteReport(r domain.SplitReport) {
	s := w.styles
	fmt.Fprintf(w.out, "\n%s\n", s.render(s.Muted, ruler))
	fmt.Fprintf(w.out, "%s\n", s.render(s.Title, "Validating split: "+string(r.Split)))
	fmt.Fprintf(w.out, "%s\n", s.render(s.Muted, ruler))

	empty := strconv.Itoa(r.EmptyText)
	if r.EmptyText > 0 {
		empty = s.render(s.Warning, empty)
	}
	fmt.Fprintf(w.out, "Empty cleaned texts: %s\n", empty)
	fmt.Fprintf(w.out, "Label distribution: %s\n", r.Labels)

	fmt.Fprintln(w.out, "\nSample cleaned texts:")
	for i, sample := range r.Samples {
		fmt.Fprintf(w.out, "\nExample %d:\n", i+1)
		fmt.Fprintf(w.out, "%s %s %s\n", s.render(s.Label, "Original:"), sample.Original, s.render(s.Muted, "..."))
		fmt.Fprintf(w.out, "%s %s %s\n", s.render(s.Label, "Cleaned :"), sample.Cleaned, s.render(s.Muted, "..."))
	}
}

// quoteList renders names as ['a', 'b'].
func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "'" + name + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// WriteHistory prints past runs as a table, newest first.
func (w *Writer) WriteHistory(runs []domain.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(w.out, "No runs recorded.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run", "Started", "Format", "Records", "Empty", "Root"})
	for _, run := range runs {
		empty := 0
		for _, r := range run.Splits {
			empty += r.EmptyText
		}
		t.AppendRow(table.Row{
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Format,
			run.TotalRecords(),
			empty,
			run.Root,
		})
	}
	t.Render()
}

// WriteRun prints one recorded run with its per-split counts.
func (w *Writer) WriteRun(run *domain.RunSummary) {
	s := w.styles
	fmt.Fprintf(w.out, "%s %s\n", s.render(s.Label, "Run:     "), run.ID)
	fmt.Fprintf(w.out, "%s %s\n", s.render(s.Label, "Started: "), run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w.out, "%s %s\n", s.render(s.Label, "Duration:"), run.Duration.Round(time.Millisecond))
	fmt.Fprintf(w.out, "%s %s (%s)\n", s.render(s.Label, "Root:    "), run.Root, run.Format)

	t := table.NewWriter()
	t.SetOutputMirror(w.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Split", "Records", "Empty", "Labels"})
	for _, r := range run.Splits {
		t.AppendRow(table.Row{string(r.Split), r.Records, r.EmptyText, r.Labels.String()})
	}
	t.AppendFooter(table.Row{"Total", run.TotalRecords(), "", ""})
	t.Render()
}
