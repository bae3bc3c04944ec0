package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
)

// historyStore implements driven.RunHistoryStore.
// Only counts and label distributions are written; sample texts never are.
type historyStore struct {
	store *Store
}

var _ driven.RunHistoryStore = (*historyStore)(nil)

// SaveRun stores a run and its split reports in one transaction.
func (s *historyStore) SaveRun(ctx context.Context, run *domain.RunSummary) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, root, format, started_at, duration_ns)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			root = excluded.root,
			format = excluded.format,
			started_at = excluded.started_at,
			duration_ns = excluded.duration_ns
	`, run.ID, run.Root, run.Format, run.StartedAt.UTC(), int64(run.Duration))
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM split_reports WHERE run_id = ?", run.ID); err != nil {
		return fmt.Errorf("clearing split reports: %w", err)
	}

	for i, report := range run.Splits {
		labels := report.Labels
		if labels == nil {
			labels = domain.LabelDistribution{}
		}
		labelsJSON, err := json.Marshal(labels)
		if err != nil {
			return fmt.Errorf("marshalling labels: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO split_reports (run_id, position, split, records, empty_text, labels)
			VALUES (?, ?, ?, ?, ?, ?)
		`, run.ID, i, string(report.Split), report.Records, report.EmptyText, string(labelsJSON))
		if err != nil {
			return fmt.Errorf("saving split report %s: %w", report.Split, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *historyStore) GetRun(ctx context.Context, id string) (*domain.RunSummary, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, root, format, started_at, duration_ns
		FROM runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err != nil {
		return nil, err
	}

	run.Splits, err = s.splitReports(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *historyStore) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, root, format, started_at, duration_ns
		FROM runs ORDER BY started_at DESC, id ASC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}

	var runs []domain.RunSummary //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	rows.Close()

	for i := range runs {
		runs[i].Splits, err = s.splitReports(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (s *historyStore) splitReports(ctx context.Context, runID string) ([]domain.SplitReport, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT split, records, empty_text, labels
		FROM split_reports WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying split reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.SplitReport //nolint:prealloc // size unknown from query
	for rows.Next() {
		var report domain.SplitReport
		var split, labelsJSON string
		if err := rows.Scan(&split, &report.Records, &report.EmptyText, &labelsJSON); err != nil {
			return nil, fmt.Errorf("scanning split report: %w", err)
		}
		report.Split = domain.SplitName(split)
		if err := json.Unmarshal([]byte(labelsJSON), &report.Labels); err != nil {
			return nil, fmt.Errorf("unmarshaling labels: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating split reports: %w", err)
	}
	return reports, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.RunSummary, error) {
	var run domain.RunSummary
	var startedAt sql.NullTime
	var durationNS int64
	if err := row.Scan(&run.ID, &run.Root, &run.Format, &startedAt, &durationNS); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	if startedAt.Valid {
		run.StartedAt = startedAt.Time
	}
	run.Duration = time.Duration(durationNS)
	return &run, nil
}
