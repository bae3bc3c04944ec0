package driven

import (
	"context"

	"github.com/custodia-labs/figprep/internal/core/domain"
)

// ChangeWatcher reports changes to a stored dataset.
type ChangeWatcher interface {
	// Watch starts watching the dataset under root.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, root string) (<-chan domain.DatasetChange, error)
}
