package driven

import (
	"context"

	"github.com/custodia-labs/figprep/internal/core/domain"
)

// SplitReader reads one stored split into memory.
// Each storage backend (Arrow, JSON Lines, in-memory) implements it.
type SplitReader interface {
	// Format returns the storage format name (e.g., "arrow").
	Format() string

	// ReadSplit loads every record stored at location.
	// The returned split carries the stored column schema; its Name is left
	// for the caller to assign. Missing or unreadable locations, and
	// collections that are not valid record sets, return a *domain.LoadError.
	ReadSplit(ctx context.Context, location string) (*domain.Split, error)
}
