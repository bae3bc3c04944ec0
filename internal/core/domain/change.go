package domain

import "time"

// DatasetChange reports that stored split files changed on disk.
// Bursts of filesystem events are coalesced into one change.
type DatasetChange struct {
	// Paths lists the changed files, sorted and deduplicated.
	Paths []string

	// At is when the burst settled.
	At time.Time
}
