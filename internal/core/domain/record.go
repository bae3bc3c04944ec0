package domain

import (
	"maps"
	"slices"
)

// Column names of the dataset schema.
const (
	ColumnText      = "text"
	ColumnLonely    = "lonely"
	ColumnIdx       = "idx"
	ColumnUniqueID  = "unique_id"
	ColumnTextClean = "text_clean"
	ColumnLabel     = "label"
)

// RequiredColumns are the columns every stored split must provide.
var RequiredColumns = []string{ColumnText, ColumnLonely, ColumnIdx, ColumnUniqueID}

// PrunedColumns are dropped from every split after processing.
var PrunedColumns = []string{ColumnIdx, ColumnUniqueID}

// Record is one example as loaded from storage.
type Record struct {
	// Text is the raw text. Nil when the value is absent or not a string.
	Text *string

	// Lonely is the annotation pair [non_lonely, lonely].
	// Nil when the value is absent.
	Lonely []int64

	// Idx is an opaque identifier kept for traceability before processing.
	Idx any

	// UniqueID is an opaque identifier kept for traceability before processing.
	UniqueID any

	// Extra holds any other column, carried through processing untouched.
	Extra map[string]any
}

// ProcessedRecord is a Record after normalisation and label scalarisation.
// Identifier fields are intentionally absent.
type ProcessedRecord struct {
	// Text is the original raw text.
	Text *string

	// TextClean is the normalised text.
	TextClean string

	// Label is the scalar binary label, a copy of Lonely[1].
	Label int64

	// Lonely is the original annotation pair, retained for analysis.
	Lonely []int64

	// Extra holds the non-pruned extra columns.
	Extra map[string]any
}

// RawText returns the original text, or the empty string when absent.
func (r ProcessedRecord) RawText() string {
	if r.Text == nil {
		return ""
	}
	return *r.Text
}

// StringPtr returns a pointer to s. Convenient for building records.
func StringPtr(s string) *string {
	return &s
}

// Clone returns a deep copy of the record. Opaque values in Extra,
// Idx and UniqueID are copied shallowly.
func (r Record) Clone() Record {
	out := Record{
		Lonely:   slices.Clone(r.Lonely),
		Idx:      r.Idx,
		UniqueID: r.UniqueID,
		Extra:    maps.Clone(r.Extra),
	}
	if r.Text != nil {
		out.Text = StringPtr(*r.Text)
	}
	return out
}
