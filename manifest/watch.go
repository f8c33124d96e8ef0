package manifest

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/go-theft-auto/glshader"
)

// Watcher reports programs whose source files change on disk.
// It only reports; recompiling must happen on the graphics thread.
type Watcher struct {
	m       *Manifest
	watch   *fsnotify.Watcher
	changes chan string
	done    chan struct{}
	once    sync.Once
	logger  *slog.Logger
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithLogger sets the logger for dropped changes and watch errors.
// The default is glshader.Logger.
func WithLogger(l *slog.Logger) WatchOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWatcher starts watching the directories of every source file in m.
func NewWatcher(m *Manifest, opts ...WatchOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}
	dirs := make(map[string]bool)
	for _, f := range m.Files() {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	w := &Watcher{
		m:       m,
		watch:   fw,
		changes: make(chan string, 16),
		done:    make(chan struct{}),
		logger:  glshader.Logger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.run()
	return w, nil
}

// Changes delivers the name of each program with a modified source.
// Names are dropped rather than blocking when the consumer falls behind.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

func (w *Watcher) run() {
	defer close(w.changes)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watch.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			for _, name := range w.m.ProgramsUsing(event.Name) {
				select {
				case w.changes <- name:
				default:
					w.logger.Warn("dropping shader change", "program", name)
				}
			}
		case err, ok := <-w.watch.Errors:
			if !ok {
				return
			}
			w.logger.Warn("shader watch error", "error", err)
		}
	}
}

// Close stops watching. Changes is closed once the watcher exits.
// Calling Close more than once is a no-op.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watch.Close()
	})
	return err
}
