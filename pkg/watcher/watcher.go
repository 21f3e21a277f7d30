package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher reports debounced changes to a set of model files. It watches
// the parent directories so editors that save by replacing the file are
// still noticed.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger

	mu        sync.Mutex
	callbacks map[string]func(string)
	dirs      map[string]int
	timers    map[string]*time.Timer
	onError   func(error)
}

// NewFileWatcher creates a watcher that waits debounce after the last event
// for a file before reporting it
func NewFileWatcher(debounce time.Duration, logger *slog.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileWatcher{
		watcher:   w,
		debounce:  debounce,
		logger:    logger,
		callbacks: make(map[string]func(string)),
		dirs:      make(map[string]int),
		timers:    make(map[string]*time.Timer),
	}, nil
}

// OnError sets the handler for watcher errors. Errors are logged either way.
func (fw *FileWatcher) OnError(fn func(error)) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.onError = fn
}

// Watch registers files. callback receives the absolute path that changed and
// runs on a timer goroutine.
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		if _, ok := fw.callbacks[absPath]; !ok {
			dir := filepath.Dir(absPath)
			if fw.dirs[dir] == 0 {
				if err := fw.watcher.Add(dir); err != nil {
					return fmt.Errorf("failed to watch %s: %w", dir, err)
				}
			}
			fw.dirs[dir]++
		}
		fw.callbacks[absPath] = callback
		fw.logger.Debug("watching file", "path", absPath)
	}
	return nil
}

// Start processes events until ctx is done or the watcher is closed
func (fw *FileWatcher) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					fw.handleFileChange(filepath.Clean(event.Name))
				}
			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				fw.logger.Warn("watcher error", "err", err)
				fw.mu.Lock()
				onError := fw.onError
				fw.mu.Unlock()
				if onError != nil {
					onError(err)
				}
			}
		}
	}()
}

func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	callback, exists := fw.callbacks[filePath]
	if !exists {
		return
	}
	if timer, exists := fw.timers[filePath]; exists {
		timer.Stop()
	}
	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		fw.logger.Info("file changed", "path", filePath)
		callback(filePath)
	})
}

// Close stops pending timers and the underlying watcher
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	for _, t := range fw.timers {
		t.Stop()
	}
	fw.timers = make(map[string]*time.Timer)
	fw.mu.Unlock()
	return fw.watcher.Close()
}

// RemoveAll forgets every watched file
func (fw *FileWatcher) RemoveAll() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for dir := range fw.dirs {
		if err := fw.watcher.Remove(dir); err != nil {
			return fmt.Errorf("failed to unwatch %s: %w", dir, err)
		}
	}
	for _, t := range fw.timers {
		t.Stop()
	}
	fw.callbacks = make(map[string]func(string))
	fw.dirs = make(map[string]int)
	fw.timers = make(map[string]*time.Timer)
	return nil
}
