package memory

import (
	"context"
	"fmt"
	"io/fs"
	"sync"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.SplitReader = (*SplitReader)(nil)

// SplitReader serves splits held in memory, keyed by location.
// Reads return deep copies so callers cannot alter the stored splits.
type SplitReader struct {
	mu     sync.RWMutex
	splits map[string]domain.Split
}

// NewSplitReader creates an empty in-memory split reader.
func NewSplitReader() *SplitReader {
	return &SplitReader{splits: make(map[string]domain.Split)}
}

// Add stores a copy of split at location, replacing any previous one.
func (r *SplitReader) Add(location string, split domain.Split) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.splits[location] = split.Clone()
}

// Format returns the storage format name.
func (r *SplitReader) Format() string {
	return "memory"
}

// ReadSplit returns a copy of the split stored at location.
func (r *SplitReader) ReadSplit(ctx context.Context, location string) (*domain.Split, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	split, ok := r.splits[location]
	r.mu.RUnlock()
	if !ok {
		return nil, &domain.LoadError{
			Location: location,
			Err:      fmt.Errorf("no split stored: %w", fs.ErrNotExist),
		}
	}

	out := split.Clone()
	out.Name = ""
	return &out, nil
}
