package shader

import (
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports changes to shader files. Events arrive on a background
// goroutine; the frame loop polls Changed.
type Watcher struct {
	fs      *fsnotify.Watcher
	files   atomic.Pointer[map[string]bool]
	dirs    map[string]bool
	changed atomic.Bool
	done    chan struct{}
	log     *zap.Logger
}

// NewWatcher starts a watcher with an empty watch set.
func NewWatcher(log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:   fw,
		dirs: make(map[string]bool),
		done: make(chan struct{}),
		log:  log,
	}
	empty := map[string]bool{}
	w.files.Store(&empty)
	go w.run()
	return w, nil
}

// Watch replaces the watch set with paths. Directories are watched rather
// than files so editors that replace files on save are still seen.
func (w *Watcher) Watch(paths []string) {
	files, dirs := watchSet(paths)
	w.files.Store(&files)

	for dir := range w.dirs {
		if !dirs[dir] {
			_ = w.fs.Remove(dir)
		}
	}
	for dir := range dirs {
		if w.dirs[dir] {
			continue
		}
		if err := w.fs.Add(dir); err != nil {
			w.log.Warn("cannot watch shader directory", zap.String("dir", dir), zap.Error(err))
			delete(dirs, dir)
		}
	}
	w.dirs = dirs
}

// Changed reports whether a watched file changed since the last call.
func (w *Watcher) Changed() bool {
	return w.changed.Swap(false)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if (*w.files.Load())[filepath.Clean(ev.Name)] {
				w.log.Debug("shader file changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
				w.changed.Store(true)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("shader watcher error", zap.Error(err))
		}
	}
}

// watchSet returns the cleaned absolute file set and their directories.
func watchSet(paths []string) (files, dirs map[string]bool) {
	files = make(map[string]bool, len(paths))
	dirs = make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	return files, dirs
}
