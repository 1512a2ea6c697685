// Package watcher reports changed source files below a directory tree.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultInterval is the quiet period before a batch of changes is emitted.
const DefaultInterval = 200 * time.Millisecond

// Filter decides which directories are watched and which files are reported.
type Filter interface {
	ShouldIgnoreDir(absolutePath string) bool
	IsEligible(absolutePath string) bool
}

// Options configures a Watcher.
type Options struct {
	Dir        string        // Tree to watch recursively.
	ExtraFiles []string      // Single files outside Dir that are reported too.
	Interval   time.Duration // DefaultInterval if zero.
	Filter     Filter
	Logger     *slog.Logger
}

// Watcher watches a directory tree and emits debounced batches of changed
// eligible files. Removals are not reported.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	debouncer  *Debouncer
	filter     Filter
	dir        string
	extraFiles []string
	logger     *slog.Logger
}

// New creates a watcher and registers every non-ignored directory below
// options.Dir.
func New(options Options) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	interval := options.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		debouncer: NewDebouncer(interval),
		filter:    options.Filter,
		dir:       filepath.Clean(options.Dir),
		logger:    options.Logger,
	}
	for _, file := range options.ExtraFiles {
		w.extraFiles = append(w.extraFiles, filepath.Clean(file))
	}

	if err := w.addTree(w.dir); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	// Extra files are watched through their directory, so they are
	// seen even when created later.
	for _, file := range w.extraFiles {
		if err := fsWatcher.Add(filepath.Dir(file)); err != nil {
			w.logger.Warn("failed to watch directory", "path", filepath.Dir(file), "error", err)
		}
	}
	return w, nil
}

// Batches returns the channel that receives sorted batches of changed paths.
func (w *Watcher) Batches() <-chan []string {
	return w.debouncer.Output()
}

// Run forwards file system events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// Close stops the watcher and drops pending changes.
func (w *Watcher) Close() error {
	w.debouncer.Stop()
	return w.fsWatcher.Close()
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	path := filepath.Clean(event.Name)

	if slices.Contains(w.extraFiles, path) {
		w.debouncer.Add(path)
		return
	}
	if !w.inTree(path) {
		return
	}

	if event.Has(fsnotify.Create) {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			if !w.filter.ShouldIgnoreDir(path) {
				if err := w.addTree(path); err != nil {
					w.logger.Warn("failed to watch new directory", "path", path, "error", err)
				}
			}
			return
		}
	}

	if w.filter.IsEligible(path) {
		w.debouncer.Add(path)
	}
}

// addTree watches root and every non-ignored directory below it. Files that
// already exist in a newly created directory are reported as changed.
func (w *Watcher) addTree(root string) error {
	isNew := root != w.dir
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			if isNew && w.filter.IsEligible(path) {
				w.debouncer.Add(path)
			}
			return nil
		}
		if path != root && w.filter.ShouldIgnoreDir(path) {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

func (w *Watcher) inTree(path string) bool {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
