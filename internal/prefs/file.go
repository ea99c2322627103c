package prefs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// FileBackend stores each key as one JSON file in a directory. Writes go
// through a temp file and rename so a crash mid-save never corrupts the
// previous record.
//
// Watch surfaces external edits of a key's file, the desktop analog of the
// storage events browsers fire when another tab changes the same slot.
type FileBackend struct {
	dir string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
	closed  bool
}

// NewFileBackend creates a backend rooted at dir, creating it if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create preference directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (f *FileBackend) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get reads the value for key, or ErrNotFound.
func (f *FileBackend) Get(_ context.Context, key string) (string, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("unable to read preference file: %w", err)
	}
	return string(data), nil
}

// Set atomically replaces the value for key.
func (f *FileBackend) Set(_ context.Context, key, value string) error {
	target := f.path(key)
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("unable to create temp file: %w", err)
	}
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("unable to write preference file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("unable to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("unable to replace preference file: %w", err)
	}
	return nil
}

// Watch invokes fn whenever the file backing key changes on disk. At most
// one watch per backend; calling it again replaces the callback target.
func (f *FileBackend) Watch(key string, fn func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	if f.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create watcher: %w", err)
	}
	if err := watcher.Add(f.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("unable to watch preference directory: %w", err)
	}

	f.watcher = watcher
	f.done = make(chan struct{})
	target := f.path(key)

	go func() {
		for {
			select {
			case <-f.done:
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					fn()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("preference watch error", "error", err)
			}
		}
	}()

	return nil
}

// Close stops any watch. The backing files are left in place.
func (f *FileBackend) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	if f.watcher != nil {
		close(f.done)
		err := f.watcher.Close()
		f.watcher = nil
		return err
	}
	return nil
}
