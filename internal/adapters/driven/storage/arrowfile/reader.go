package arrowfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
	"github.com/custodia-labs/figprep/internal/logger"
)

// Format is the storage format name.
const Format = "arrow"

// stateFile is the manifest written next to the data files.
const stateFile = "state.json"

// Verify interface compliance.
var _ driven.SplitReader = (*Reader)(nil)

// Reader loads splits stored as Arrow IPC files.
type Reader struct {
	mem memory.Allocator
}

// New creates a reader using the default Go allocator.
func New() *Reader {
	return &Reader{mem: memory.NewGoAllocator()}
}

// Format returns the storage format name.
func (r *Reader) Format() string {
	return Format
}

// ReadSplit reads every data file of the split stored in dir.
func (r *Reader) ReadSplit(ctx context.Context, dir string) (*domain.Split, error) {
	files, err := dataFiles(dir)
	if err != nil {
		return nil, &domain.LoadError{Location: dir, Err: err}
	}

	split := &domain.Split{}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.readFile(file, split); err != nil {
			var loadErr *domain.LoadError
			if errors.As(err, &loadErr) {
				return nil, err
			}
			return nil, &domain.LoadError{Location: file, Err: err}
		}
	}

	logger.Debug("Read %d rows from %d arrow file(s) in %s", split.Len(), len(files), dir)
	return split, nil
}

// dataFiles lists the split's data files in order. state.json wins when
// present; otherwise every *.arrow file is read in name order.
func dataFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory", domain.ErrInvalidInput)
	}

	raw, err := os.ReadFile(filepath.Join(dir, stateFile))
	switch {
	case err == nil:
		var state struct {
			DataFiles []struct {
				Filename string `json:"filename"`
			} `json:"_data_files"`
		}
		if err := json.Unmarshal(raw, &state); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", stateFile, err)
		}
		files := make([]string, 0, len(state.DataFiles))
		for _, f := range state.DataFiles {
			files = append(files, filepath.Join(dir, f.Filename))
		}
		if len(files) > 0 {
			return files, nil
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("reading %s: %w", stateFile, err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.arrow"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no arrow data files: %w", os.ErrNotExist)
	}
	slices.Sort(files)
	return files, nil
}

// readFile appends the rows of one IPC file to split.
func (r *Reader) readFile(path string, split *domain.Split) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if stream, err := ipc.NewReader(f, ipc.WithAllocator(r.mem)); err == nil {
		defer stream.Release()
		if err := useSchema(stream.Schema(), path, split); err != nil {
			return err
		}
		for stream.Next() {
			if err := appendRecord(stream.Record(), path, split); err != nil {
				return err
			}
		}
		return stream.Err()
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	file, err := ipc.NewFileReader(f, ipc.WithAllocator(r.mem))
	if err != nil {
		return fmt.Errorf("not an arrow stream or file: %w", err)
	}
	defer file.Close()

	if err := useSchema(file.Schema(), path, split); err != nil {
		return err
	}
	for i := 0; i < file.NumRecords(); i++ {
		rec, err := file.Record(i)
		if err != nil {
			return err
		}
		if err := appendRecord(rec, path, split); err != nil {
			return err
		}
	}
	return nil
}

// useSchema records the file's columns on split. Every data file of a
// split must carry the column set of the first.
func useSchema(schema *arrow.Schema, path string, split *domain.Split) error {
	fields := schema.Fields()
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name
	}

	if split.Columns == nil {
		split.Columns = names
		return nil
	}
	if !slices.Equal(split.Columns, names) {
		return &domain.LoadError{
			Location: path,
			Err:      fmt.Errorf("columns %v differ from %v", names, split.Columns),
		}
	}
	return nil
}

// appendRecord converts one record batch and appends its rows.
func appendRecord(rec arrow.Record, path string, split *domain.Split) error {
	names := split.Columns
	rows := int(rec.NumRows())
	records := make([]domain.Record, rows)

	for c, name := range names {
		col := rec.Column(c)
		for i := 0; i < rows; i++ {
			switch name {
			case domain.ColumnText:
				records[i].Text = stringAt(col, i)
			case domain.ColumnLonely:
				lonely, err := intListAt(col, i)
				if err != nil {
					return &domain.LoadError{Location: path, Field: name, Err: err}
				}
				records[i].Lonely = lonely
			case domain.ColumnIdx:
				records[i].Idx = valueAt(col, i)
			case domain.ColumnUniqueID:
				records[i].UniqueID = valueAt(col, i)
			default:
				if records[i].Extra == nil {
					records[i].Extra = make(map[string]any)
				}
				records[i].Extra[name] = valueAt(col, i)
			}
		}
	}

	split.Records = append(split.Records, records...)
	return nil
}

// stringAt returns the string at row i, or nil for nulls and non-string columns.
func stringAt(col arrow.Array, i int) *string {
	if col.IsNull(i) {
		return nil
	}
	switch a := col.(type) {
	case *array.String:
		return domain.StringPtr(a.Value(i))
	case *array.LargeString:
		return domain.StringPtr(a.Value(i))
	case *array.StringView:
		return domain.StringPtr(a.Value(i))
	default:
		return nil
	}
}

// intListAt returns the integer list at row i, or nil for a null row.
func intListAt(col arrow.Array, i int) ([]int64, error) {
	list, ok := col.(array.ListLike)
	if !ok {
		return nil, fmt.Errorf("%w: column type %s is not a list", domain.ErrUnsupportedType, col.DataType())
	}
	if list.IsNull(i) {
		return nil, nil
	}

	values := list.ListValues()
	start, end := list.ValueOffsets(i)
	out := make([]int64, 0, end-start)
	for j := int(start); j < int(end); j++ {
		v, err := intAt(values, j)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func intAt(values arrow.Array, j int) (int64, error) {
	if values.IsNull(j) {
		return 0, fmt.Errorf("%w: null list element", domain.ErrInvalidInput)
	}
	switch a := values.(type) {
	case *array.Int8:
		return int64(a.Value(j)), nil
	case *array.Int16:
		return int64(a.Value(j)), nil
	case *array.Int32:
		return int64(a.Value(j)), nil
	case *array.Int64:
		return a.Value(j), nil
	case *array.Uint8:
		return int64(a.Value(j)), nil
	case *array.Uint16:
		return int64(a.Value(j)), nil
	case *array.Uint32:
		return int64(a.Value(j)), nil
	case *array.Uint64:
		return int64(a.Value(j)), nil
	default:
		return 0, fmt.Errorf("%w: list element type %s", domain.ErrUnsupportedType, values.DataType())
	}
}

// valueAt returns the plain Go value at row i. Nulls are nil.
func valueAt(col arrow.Array, i int) any {
	if col.IsNull(i) {
		return nil
	}
	return col.GetOneForMarshal(i)
}
