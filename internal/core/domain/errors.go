package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent pipeline failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown storage format or processor.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrHistoryUnavailable indicates no run history store is configured.
	ErrHistoryUnavailable = errors.New("run history unavailable")

	// ErrLoad is the kind shared by every LoadError.
	ErrLoad = errors.New("load failed")

	// ErrSchema is the kind shared by every SchemaError.
	ErrSchema = errors.New("schema violation")
)

// LoadError reports a split location that is missing, unreadable, or not a
// valid record collection. It is fatal and never retried.
type LoadError struct {
	// Split is the logical split name, when known.
	Split SplitName

	// Location is the on-disk location that failed.
	Location string

	// Field is the missing or malformed column, if the failure is structural.
	Field string

	// Err is the underlying cause.
	Err error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("loading split")
	if e.Split != "" {
		fmt.Fprintf(&b, " %s", e.Split)
	}
	if e.Location != "" {
		fmt.Fprintf(&b, " from %s", e.Location)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": column %q", e.Field)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is matches ErrLoad.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// SchemaError reports a record or split whose shape does not match the
// expected schema. Processing is all-or-nothing, so it aborts the run.
type SchemaError struct {
	// Split is the split containing the offending record.
	Split SplitName

	// Index is the record position, or -1 for split-level problems.
	Index int

	// Field is the offending column.
	Field string

	// Reason describes the violation.
	Reason string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("schema error")
	if e.Split != "" {
		fmt.Fprintf(&b, " in split %s", e.Split)
	}
	if e.Index >= 0 {
		fmt.Fprintf(&b, " at record %d", e.Index)
	}
	fmt.Fprintf(&b, ": field %q", e.Field)
	if e.Reason != "" {
		fmt.Fprintf(&b, " %s", e.Reason)
	}
	return b.String()
}

// Is matches ErrSchema.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}
