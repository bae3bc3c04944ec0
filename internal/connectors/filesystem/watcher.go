// Package filesystem watches a dataset directory tree for changes.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/figprep/internal/core/domain"
	"github.com/custodia-labs/figprep/internal/core/ports/driven"
	"github.com/custodia-labs/figprep/internal/logger"
)

// DefaultDebounce is how long the tree must stay quiet before a change is
// reported. Writing an Arrow split touches several files in quick succession.
const DefaultDebounce = 500 * time.Millisecond

// Verify interface compliance.
var _ driven.ChangeWatcher = (*Watcher)(nil)

// Watcher reports changes below a dataset root. It watches the root and
// every split directory directly beneath it; fsnotify is not recursive.
type Watcher struct {
	debounce time.Duration
}

// New creates a watcher. A non-positive debounce uses DefaultDebounce.
func New(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce}
}

// Watch starts watching root. The returned channel is closed when ctx is done.
func (w *Watcher) Watch(ctx context.Context, root string) (<-chan domain.DatasetChange, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watching %s: %w: not a directory", root, domain.ErrInvalidInput)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := addTree(fsw, root); err != nil {
		fsw.Close()
		return nil, err
	}

	changes := make(chan domain.DatasetChange)
	go w.loop(ctx, fsw, root, changes)
	return changes, nil
}

// addTree watches root and its non-hidden immediate subdirectories.
func addTree(fsw *fsnotify.Watcher, root string) error {
	if err := fsw.Add(root); err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("reading %s: %w", root, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, root string, changes chan<- domain.DatasetChange) {
	defer close(changes)
	defer fsw.Close()

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !handleFsEvent(fsw, root, event) {
				continue
			}
			logger.Debug("fs event: %s %s", event.Op, event.Name)
			pending[event.Name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			change := domain.DatasetChange{At: time.Now()}
			for p := range pending {
				change.Paths = append(change.Paths, p)
			}
			slices.Sort(change.Paths)
			clear(pending)

			select {
			case changes <- change:
			case <-ctx.Done():
				return
			}
		}
	}
}

// handleFsEvent reports whether event is a dataset change. New split
// directories created directly under root are added to the watch.
func handleFsEvent(fsw *fsnotify.Watcher, root string, event fsnotify.Event) bool {
	if isHidden(filepath.Base(event.Name)) {
		return false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	if event.Has(fsnotify.Create) && filepath.Dir(event.Name) == filepath.Clean(root) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := fsw.Add(event.Name); err != nil {
				logger.Warn("watching %s: %v", event.Name, err)
			}
		}
	}
	return true
}

// isHidden reports whether a file or directory name is hidden.
// Editors and the datasets library write temporary dot files.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
