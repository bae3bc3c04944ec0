// Package jsonl reads splits stored as JSON Lines: a directory holding
// data.jsonl (or several *.jsonl files read in name order), one JSON object
// per line. It is the export format for users without Arrow tooling.
package jsonl

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
	"github.com/custodia-labs/figprep/internal/logger"
)

// Format is the storage format name.
const Format = "jsonl"

// maxLineSize bounds a single record line.
const maxLineSize = 16 << 20

// Verify interface compliance.
var _ driven.SplitReader = (*Reader)(nil)

// Reader loads splits stored as JSON Lines.
type Reader struct{}

// New creates a JSON Lines reader.
func New() *Reader {
	return &Reader{}
}

// Format returns the storage format name.
func (r *Reader) Format() string {
	return Format
}

// ReadSplit reads every line of every data file in dir. The column set is
// the union of keys seen; a key missing from a line is an absent value.
func (r *Reader) ReadSplit(ctx context.Context, dir string) (*domain.Split, error) {
	files, err := dataFiles(dir)
	if err != nil {
		return nil, &domain.LoadError{Location: dir, Err: err}
	}

	seen := make(map[string]struct{})
	split := &domain.Split{}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := readFile(file, split, seen); err != nil {
			var loadErr *domain.LoadError
			if errors.As(err, &loadErr) {
				return nil, err
			}
			return nil, &domain.LoadError{Location: file, Err: err}
		}
	}

	split.Columns = columnOrder(seen)
	if split.Len() == 0 {
		// An empty split has no keys to learn from.
		split.Columns = slices.Clone(domain.RequiredColumns)
	}
	logger.Debug("Read %d rows from %d jsonl file(s) in %s", split.Len(), len(files), dir)
	return split, nil
}

func dataFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory", domain.ErrInvalidInput)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.jsonl"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no jsonl data files: %w", os.ErrNotExist)
	}
	slices.Sort(files)
	return files, nil
}

func readFile(path string, split *domain.Split, seen map[string]struct{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var obj map[string]any
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&obj); err != nil {
			return &domain.LoadError{Location: fmt.Sprintf("%s:%d", path, line), Err: err}
		}

		rec, err := toRecord(obj)
		if err != nil {
			var loadErr *domain.LoadError
			if errors.As(err, &loadErr) {
				loadErr.Location = fmt.Sprintf("%s:%d", path, line)
				return loadErr
			}
			return &domain.LoadError{Location: fmt.Sprintf("%s:%d", path, line), Err: err}
		}
		for key := range obj {
			seen[key] = struct{}{}
		}
		split.Records = append(split.Records, rec)
	}
	return scanner.Err()
}

func toRecord(obj map[string]any) (domain.Record, error) {
	var rec domain.Record
	for key, val := range obj {
		switch key {
		case domain.ColumnText:
			if s, ok := val.(string); ok {
				rec.Text = domain.StringPtr(s)
			}
		case domain.ColumnLonely:
			lonely, err := intList(val)
			if err != nil {
				return rec, &domain.LoadError{Field: key, Err: err}
			}
			rec.Lonely = lonely
		case domain.ColumnIdx:
			rec.Idx = plain(val)
		case domain.ColumnUniqueID:
			rec.UniqueID = plain(val)
		default:
			if rec.Extra == nil {
				rec.Extra = make(map[string]any)
			}
			rec.Extra[key] = plain(val)
		}
	}
	return rec, nil
}

// intList converts a JSON array of integers. null is an absent annotation.
func intList(val any) ([]int64, error) {
	if val == nil {
		return nil, nil
	}
	items, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a list", domain.ErrUnsupportedType, val)
	}
	out := make([]int64, 0, len(items))
	for _, item := range items {
		num, ok := item.(json.Number)
		if !ok {
			return nil, fmt.Errorf("%w: list element %v is not a number", domain.ErrUnsupportedType, item)
		}
		n, err := num.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: list element %s is not an integer", domain.ErrUnsupportedType, num)
		}
		out = append(out, n)
	}
	return out, nil
}

// plain turns decoder numbers into int64 or float64, recursively.
func plain(val any) any {
	switch v := val.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		f, _ := v.Float64()
		return f
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plain(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = plain(item)
		}
		return out
	default:
		return v
	}
}

// columnOrder lists known columns in schema order, then the rest sorted.
func columnOrder(seen map[string]struct{}) []string {
	known := []string{domain.ColumnText, domain.ColumnLonely, domain.ColumnIdx, domain.ColumnUniqueID}
	cols := make([]string, 0, len(seen))
	for _, col := range known {
		if _, ok := seen[col]; ok {
			cols = append(cols, col)
		}
	}
	rest := slices.Sorted(maps.Keys(seen))
	for _, col := range rest {
		if !slices.Contains(known, col) {
			cols = append(cols, col)
		}
	}
	return cols
}
