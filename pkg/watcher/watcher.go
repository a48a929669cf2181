// Package watcher reports changes to a set of files, debounced so that an
// editor saving several files at once produces a single notification.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches files for changes and triggers a callback
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	files   map[string]bool
	pending []string
	timer   *time.Timer
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		debounce: debounce,
		files:    make(map[string]bool),
	}, nil
}

// Add starts watching the given files. Directories are watched rather than
// the files themselves so that editors replacing a file on save are seen.
func (fw *FileWatcher) Add(files ...string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		if fw.files[absPath] {
			continue
		}
		if err := fw.watcher.Add(filepath.Dir(absPath)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", absPath, err)
		}
		fw.files[absPath] = true
	}
	return nil
}

// Files returns the watched files
func (fw *FileWatcher) Files() []string {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	files := make([]string, 0, len(fw.files))
	for f := range fw.files {
		files = append(files, f)
	}
	return files
}

// Run delivers changes until ctx is done. onChange receives the distinct
// files changed during one debounce window. Errors reported by the
// underlying watcher go to onError, which may be nil.
func (fw *FileWatcher) Run(ctx context.Context, onChange func([]string), onError func(error)) error {
	fired := make(chan []string)
	done := make(chan struct{})
	defer close(done)
	defer fw.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				fw.record(filepath.Clean(event.Name), fired, done)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}

		case files := <-fired:
			onChange(files)
		}
	}
}

// record queues a change and (re)arms the debounce timer.
func (fw *FileWatcher) record(path string, fired chan<- []string, done <-chan struct{}) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.files[path] {
		return
	}
	if !slices.Contains(fw.pending, path) {
		fw.pending = append(fw.pending, path)
	}

	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, func() {
		fw.mu.Lock()
		files := fw.pending
		fw.pending = nil
		fw.mu.Unlock()

		if len(files) == 0 {
			return
		}
		select {
		case fired <- files:
		case <-done:
		}
	})
}

func (fw *FileWatcher) stopTimer() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
