package schedule

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads schedule files when they change on disk. Changes are
// debounced because editors commonly emit several write events per
// save.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]time.Time
	onChange func(string)
	mu       sync.RWMutex
	done     chan struct{}
	closed   sync.Once
}

// NewWatcher starts watching; onChange receives the path of each
// changed schedule file.
func NewWatcher(onChange func(string)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  watcher,
		files:    make(map[string]time.Time),
		onChange: onChange,
		done:     make(chan struct{}),
	}

	go w.watch()
	return w, nil
}

// AddFile registers a schedule file. Adding a file twice is a no-op.
func (w *Watcher) AddFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.files[absPath]; exists {
		return nil
	}

	if err := w.watcher.Add(absPath); err != nil {
		return err
	}

	w.files[absPath] = time.Now()
	return nil
}

func (w *Watcher) watch() {
	debounce := make(map[string]*time.Timer)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if timer, exists := debounce[event.Name]; exists {
					timer.Stop()
				}

				debounce[event.Name] = time.AfterFunc(100*time.Millisecond, func() {
					w.mu.RLock()
					_, watching := w.files[event.Name]
					w.mu.RUnlock()
					if watching && w.onChange != nil {
						w.onChange(event.Name)
					}
				})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Keep watching; a transient error on one file should not
			// stop reloads for the others.
			_ = err

		case <-w.done:
			return
		}
	}
}

// Close stops watching. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closed.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}
