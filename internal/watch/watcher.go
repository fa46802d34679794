// Package watch reconverts a dashboard file when it changes and pushes
// the results to connected preview clients.
package watch

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher monitors one dashboard file and triggers a callback after
// changes settle. The parent directory is watched so editors that replace
// the file on save are still seen.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	path      string
	logger    *zap.Logger
	onChange  func([]string) error
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// NewFileWatcher creates a watcher for the file at path.
func NewFileWatcher(path string, debounce time.Duration, logger *zap.Logger, onChange func([]string) error) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	fw := &FileWatcher{
		watcher:   watcher,
		debouncer: NewDebouncer(debounce),
		path:      abs,
		logger:    logger,
		onChange:  onChange,
		stopChan:  make(chan struct{}),
	}

	fw.debouncer.SetCallback(func(files []string) {
		if err := fw.onChange(files); err != nil {
			fw.logger.Error("change handler failed", zap.Error(err))
		}
	})

	return fw, nil
}

// Start begins watching the file's directory
func (fw *FileWatcher) Start() error {
	dir := filepath.Dir(fw.path)
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	fw.logger.Info("watching", zap.String("file", fw.path))

	fw.wg.Add(1)
	go fw.watch()

	return nil
}

// Stop stops the file watcher
func (fw *FileWatcher) Stop() error {
	select {
	case <-fw.stopChan:
		// Already stopped
		return nil
	default:
		close(fw.stopChan)
	}

	fw.wg.Wait()
	fw.debouncer.Stop()
	return fw.watcher.Close()
}

// watch is the main event loop
func (fw *FileWatcher) watch() {
	defer fw.wg.Done()

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if !fw.isTarget(event.Name) {
				continue
			}

			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				fw.logger.Debug("file changed",
					zap.String("file", event.Name),
					zap.String("op", event.Op.String()))
				fw.debouncer.Add(event.Name)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("watch error", zap.Error(err))

		case <-fw.stopChan:
			return
		}
	}
}

// isTarget reports whether the event path refers to the watched file.
func (fw *FileWatcher) isTarget(name string) bool {
	abs, err := filepath.Abs(name)
	return err == nil && abs == fw.path
}

// Debouncer collects file changes and triggers a callback once they stop
// arriving for the configured duration.
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	files    map[string]struct{}
	mutex    sync.Mutex
	callback func([]string)
}

// NewDebouncer creates a new debouncer instance
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
		files:    make(map[string]struct{}),
	}
}

// SetCallback sets the callback function
func (d *Debouncer) SetCallback(callback func([]string)) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.callback = callback
}

// Add records a changed file and restarts the settle timer.
func (d *Debouncer) Add(file string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.files[file] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, d.flush)
}

// Stop cancels any pending flush.
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// flush triggers the callback with the accumulated files. The callback
// runs outside the lock so a slow handler cannot block Add.
func (d *Debouncer) flush() {
	d.mutex.Lock()
	if len(d.files) == 0 {
		d.mutex.Unlock()
		return
	}

	files := make([]string, 0, len(d.files))
	for file := range d.files {
		files = append(files, file)
	}
	d.files = make(map[string]struct{})
	callback := d.callback
	d.mutex.Unlock()

	sort.Strings(files)
	if callback != nil {
		callback(files)
	}
}
