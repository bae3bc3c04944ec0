// Package label converts the one-hot loneliness annotation into a scalar label.
package label

import (
	"fmt"

	"github.com/custodia-labs/figprep/internal/core/domain"
)

// Scalarize returns lonely[1], the lonely indicator of the
// [non_lonely, lonely] pair, copied verbatim.
// It does not check that the pair is one-hot; see ScalarizeStrict.
func Scalarize(lonely []int64) (int64, error) {
	if lonely == nil {
		return 0, lonelyError("is missing")
	}
	if len(lonely) < 2 {
		return 0, lonelyError(fmt.Sprintf("has %d element(s), want 2", len(lonely)))
	}
	return lonely[1], nil
}

// ScalarizeStrict is Scalarize plus an assertion that lonely is exactly two
// binary, mutually exclusive indicators.
func ScalarizeStrict(lonely []int64) (int64, error) {
	v, err := Scalarize(lonely)
	if err != nil {
		return 0, err
	}
	if len(lonely) != 2 {
		return 0, lonelyError(fmt.Sprintf("has %d elements, want 2", len(lonely)))
	}
	for _, x := range lonely {
		if x != 0 && x != 1 {
			return 0, lonelyError(fmt.Sprintf("%v is not binary", lonely))
		}
	}
	if lonely[0]+lonely[1] != 1 {
		return 0, lonelyError(fmt.Sprintf("%v is not one-hot", lonely))
	}
	return v, nil
}

// lonelyError builds a record-level schema error. The orchestrator fills in
// the split and record index.
func lonelyError(reason string) *domain.SchemaError {
	return &domain.SchemaError{Index: -1, Field: domain.ColumnLonely, Reason: reason}
}
